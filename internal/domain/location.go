package domain

// Location represents a physical business location
type Location struct {
	ID      string
	Name    string
	Address string
	Phone   *string
	Active  bool
}
