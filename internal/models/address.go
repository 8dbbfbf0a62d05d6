package models

// NotProvided marks an address attribute the resolver did not return for a coordinate.
// Storage never sees an empty or NULL attribute, only a value or this sentinel.
const NotProvided = "no content returned"

// Address is a structured street address resolved for a pair of coordinates.
type Address struct {
	Latitude    string // Latitude of the resolved coordinate.
	Longitude   string // Longitude of the resolved coordinate.
	Road        string // Road or street name.
	HouseNumber string // House number on the road.
	Suburb      string // Suburb, neighbourhood or sublocality.
	City        string // City or municipality.
	Postcode    string // Postal code.
	State       string // State or first-level administrative area.
	Country     string // Country name.
}

// NewAddress returns an Address for coords with every other attribute set to NotProvided.
func NewAddress(coords Coordinates) *Address {
	return &Address{
		Latitude:    coords.Latitude,
		Longitude:   coords.Longitude,
		Road:        NotProvided,
		HouseNumber: NotProvided,
		Suburb:      NotProvided,
		City:        NotProvided,
		Postcode:    NotProvided,
		State:       NotProvided,
		Country:     NotProvided,
	}
}

// Normalize replaces every empty attribute with NotProvided.
func (a *Address) Normalize() {
	for _, field := range []*string{
		&a.Latitude, &a.Longitude, &a.Road, &a.HouseNumber, &a.Suburb,
		&a.City, &a.Postcode, &a.State, &a.Country,
	} {
		if *field == "" {
			*field = NotProvided
		}
	}
}

// Values returns the attributes in storage column order.
func (a *Address) Values() []any {
	return []any{
		a.Latitude, a.Longitude, a.Road, a.HouseNumber, a.Suburb,
		a.City, a.Postcode, a.State, a.Country,
	}
}
