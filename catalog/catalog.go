// Package catalog filters and searches the car catalog in memory.
package catalog

import (
	"net/url"
	"strings"

	"github.com/linesmerrill/car-rental-api/models"
)

// Facet query parameter names
const (
	FacetType            = "type"
	FacetSeatingCapacity = "seatingCapacity"
	FacetFuelCapacity    = "fuelCapacity"
)

// Facets holds the selected values per facet. An empty facet places no
// constraint on the result.
type Facets struct {
	Type            []string `json:"type"`
	SeatingCapacity []string `json:"seatingCapacity"`
	FuelCapacity    []string `json:"fuelCapacity"`
}

// Empty reports whether no value is selected in any facet
func (f Facets) Empty() bool {
	return len(f.Type) == 0 && len(f.SeatingCapacity) == 0 && len(f.FuelCapacity) == 0
}

// Filter returns the cars matching every facet that has at least one selected
// value. Within a facet a car matches if its label equals any selected value.
// Input order is kept.
func Filter(cars []models.Car, f Facets) []models.Car {
	result := []models.Car{}
	for _, c := range cars {
		if matches(f.Type, c.Type) &&
			matches(f.SeatingCapacity, c.SeatingCapacity) &&
			matches(f.FuelCapacity, c.FuelCapacity) {
			result = append(result, c)
		}
	}
	return result
}

func matches(selected []string, value string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, s := range selected {
		if s == value {
			return true
		}
	}
	return false
}

// Search returns the cars whose name contains the query, ignoring case.
// A blank query returns an empty list.
func Search(cars []models.Car, query string) []models.Car {
	result := []models.Car{}
	if strings.TrimSpace(query) == "" {
		return result
	}
	q := strings.ToLower(query)
	for _, c := range cars {
		if strings.Contains(strings.ToLower(c.Name), q) {
			result = append(result, c)
		}
	}
	return result
}

// FacetValues lists the distinct selectable values of every facet in the
// order they first appear in cars.
func FacetValues(cars []models.Car) Facets {
	f := Facets{Type: []string{}, SeatingCapacity: []string{}, FuelCapacity: []string{}}
	seen := map[string]map[string]bool{
		FacetType:            {},
		FacetSeatingCapacity: {},
		FacetFuelCapacity:    {},
	}
	add := func(facet string, dst *[]string, v string) {
		if v == "" || seen[facet][v] {
			return
		}
		seen[facet][v] = true
		*dst = append(*dst, v)
	}
	for _, c := range cars {
		add(FacetType, &f.Type, c.Type)
		add(FacetSeatingCapacity, &f.SeatingCapacity, c.SeatingCapacity)
		add(FacetFuelCapacity, &f.FuelCapacity, c.FuelCapacity)
	}
	return f
}

// ParseFacets reads the facet selection from query parameters. Each facet may
// be repeated and each value may hold several comma separated labels.
func ParseFacets(q url.Values) Facets {
	return Facets{
		Type:            splitValues(q[FacetType]),
		SeatingCapacity: splitValues(q[FacetSeatingCapacity]),
		FuelCapacity:    splitValues(q[FacetFuelCapacity]),
	}
}

func splitValues(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
