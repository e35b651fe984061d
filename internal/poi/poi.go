// Package poi is the point-of-interest catalog consumed by the reservation
// flow. Lookup misses are an expected result, reported as ErrNotFound.
package poi

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("poi not found")

// Category buckets the catalog entries shown on the map listing.
type Category string

const (
	CategoryRestaurant Category = "restaurant"
	CategoryCulture    Category = "culture"
)

// Poi is one catalog entry, keyed by an opaque string id.
type Poi struct {
	ID       string
	Name     string
	Category Category
	Area     string
	Lat      float64
	Lng      float64
}

// Finder is the narrow lookup interface the flow depends on.
type Finder interface {
	FindByID(ctx context.Context, id string) (Poi, error)
	ListByCategory(ctx context.Context, c Category) ([]Poi, error)
	ListAll(ctx context.Context) ([]Poi, error)
}
