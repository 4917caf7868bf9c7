package calendar

import (
	"strings"
	"time"

	"golfcart-dashboard/internal/domain"
)

// DefaultColor is used for statuses outside the known vocabulary.
const DefaultColor = "#e2e8f0"

// Classification is the display bucket, canonical label and color for a rental.
type Classification struct {
	Tag   domain.DisplayStatus `json:"tag"`
	Label string               `json:"label"`
	Color string               `json:"color"`
}

var statusTags = map[string]domain.DisplayStatus{
	domain.StatusInProgress:    domain.DisplayInProgress,
	domain.StatusUpcoming:      domain.DisplayUpcoming,
	domain.StatusUpcomingAlias: domain.DisplayUpcoming,
	domain.StatusCancelled:     domain.DisplayCancelled,
	domain.StatusDelayed:       domain.DisplayDelayed,
	domain.StatusCompleted:     domain.DisplayCompleted,
}

var tagLabels = map[domain.DisplayStatus]string{
	domain.DisplayInProgress: domain.StatusInProgress,
	domain.DisplayUpcoming:   domain.StatusUpcoming,
	domain.DisplayCancelled:  domain.StatusCancelled,
	domain.DisplayDelayed:    domain.StatusDelayed,
	domain.DisplayCompleted:  domain.StatusCompleted,
}

var tagColors = map[domain.DisplayStatus]string{
	domain.DisplayInProgress: "#32CD32",
	domain.DisplayUpcoming:   "#FFD700",
	domain.DisplayCancelled:  "#FF4500",
	domain.DisplayDelayed:    "#FF8C00",
	domain.DisplayCompleted:  "#1E90FF",
	domain.DisplayUnknown:    DefaultColor,
}

// Classify maps a stored status string to its bucket. Matching is exact after
// trimming surrounding whitespace; anything unrecognized is unknown.
func Classify(status string) Classification {
	trimmed := strings.TrimSpace(status)
	tag, ok := statusTags[trimmed]
	if !ok {
		return Classification{Tag: domain.DisplayUnknown, Label: trimmed, Color: DefaultColor}
	}
	return Classification{Tag: tag, Label: tagLabels[tag], Color: ColorFor(tag)}
}

// ColorFor returns the color for a bucket, falling back to DefaultColor.
func ColorFor(tag domain.DisplayStatus) string {
	if c, ok := tagColors[tag]; ok {
		return c
	}
	return DefaultColor
}

// IsCanonicalStatus reports whether s is one of the labels the store accepts.
func IsCanonicalStatus(s string) bool {
	tag, ok := statusTags[s]
	return ok && tagLabels[tag] == s
}

// Progress returns how much of the rental window has elapsed at now, as a
// percentage clamped to [0, 100]. Windows that failed to parse or have no
// length report 0.
func Progress(r domain.Rental, now time.Time) float64 {
	if !r.HasValidWindow() {
		return 0
	}
	total := r.End.Sub(r.Start)
	if total <= 0 {
		return 0
	}
	elapsed := now.Sub(r.Start)
	pct := float64(elapsed) / float64(total) * 100
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	default:
		return pct
	}
}
