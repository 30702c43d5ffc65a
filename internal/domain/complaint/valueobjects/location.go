package valueobjects

import (
	"fmt"
	"math"
	"strings"
)

const maxAddressLength = 500

// Location is where the issue was observed.
type Location struct {
	address   string
	latitude  float64
	longitude float64
}

func NewLocation(address string, latitude, longitude float64) (Location, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return Location{}, fmt.Errorf("address is required")
	}
	if len(address) > maxAddressLength {
		return Location{}, fmt.Errorf("address exceeds maximum length of %d characters", maxAddressLength)
	}
	if math.IsNaN(latitude) || latitude < -90 || latitude > 90 {
		return Location{}, fmt.Errorf("latitude must be between -90 and 90")
	}
	if math.IsNaN(longitude) || longitude < -180 || longitude > 180 {
		return Location{}, fmt.Errorf("longitude must be between -180 and 180")
	}

	return Location{
		address:   address,
		latitude:  latitude,
		longitude: longitude,
	}, nil
}

func (l Location) Address() string {
	return l.address
}

func (l Location) Latitude() float64 {
	return l.latitude
}

func (l Location) Longitude() float64 {
	return l.longitude
}
