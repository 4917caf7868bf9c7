package domain

// Cart is a golf cart in the rental fleet.
type Cart struct {
	ID           int     `json:"carritoID"`
	Model        string  `json:"modelo"`
	Brand        string  `json:"marca"`
	PricePerHour float64 `json:"precioHora"`
	ImageURL     string  `json:"imgurl"`
	InRental     bool    `json:"enrenta"`
}

type Client struct {
	ID    int    `json:"clienteID"`
	Name  string `json:"nombre"`
	Email string `json:"email"`
	Phone string `json:"telefono"`
}

type Vendor struct {
	ID   int    `json:"vendedorID"`
	Name string `json:"nombre"`
}
