package config

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecurityAccess                      // Valid session token required
)

// RouteSecurityConfig maps named HTTP routes to their required security level.
// Routes missing from the map require a session token.
var RouteSecurityConfig = map[string]SecurityLevel{
	"health": SecurityPublic,

	"calendar.month":  SecurityAccess,
	"calendar.day":    SecurityAccess,
	"calendar.export": SecurityAccess,
	"dashboard":       SecurityAccess,

	"rentals.remaining": SecurityAccess,
	"rentals.pending":   SecurityAccess,
	"rentals.stream":    SecurityAccess,
	"rentals.create":    SecurityAccess,
	"rentals.delete":    SecurityAccess,

	"carts.list":   SecurityAccess,
	"carts.update": SecurityAccess,
	"carts.delete": SecurityAccess,

	"clients.list":   SecurityAccess,
	"clients.create": SecurityAccess,
	"vendors.list":   SecurityAccess,

	"refresh": SecurityAccess,
}

// GetSecurityLevel returns the security level for a route name
func GetSecurityLevel(route string) SecurityLevel {
	if level, ok := RouteSecurityConfig[route]; ok {
		return level
	}
	return SecurityAccess
}
