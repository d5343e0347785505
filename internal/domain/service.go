package domain

// Service represents a bookable service (e.g. a haircut)
type Service struct {
	ID              string
	Name            string
	Description     string
	DurationMinutes int
	Price           float64
	Category        string
	Color           string
	Icon            *string
	LocationID      *string
	Active          bool
}
