package domain

// Person is a record owned by the registry service; this service only reads it.
type Person struct {
	ID         string
	NationalID string
	Name       string
	Email      string
	Phone      string
	Active     bool
}

// Vehicle is a record owned by the registry service.
type Vehicle struct {
	ID      string
	Plate   string
	Make    string
	Model   string
	Color   string
	Year    int
	OwnerID string
	Active  bool
}
