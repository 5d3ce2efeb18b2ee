package domain

import (
	"context"
	"encoding/json"
)

// DefaultListLimit caps directory queries per category.
const DefaultListLimit = 100

// Filter is an equality condition on one column.
type Filter struct {
	Column string
	Value  string
}

// Query selects rows from a collection.
type Query struct {
	Collection string
	Filters    []Filter
	// OrderBy names the sort column; empty leaves the backend order.
	OrderBy    string
	Descending bool
	// Limit caps the row count; zero means no limit.
	Limit int
}

// RecordStore is the external backend holding the city reference collection
// and one collection per category. Rows come back as raw JSON objects.
type RecordStore interface {
	Select(ctx context.Context, q Query) ([]json.RawMessage, error)
	Insert(ctx context.Context, collection string, p *Payload) error
}

// CityLookupQuery selects cities whose name is exactly name.
func CityLookupQuery(name string) Query {
	return Query{
		Collection: CitiesCollection,
		Filters:    []Filter{{Column: ColumnCityName, Value: name}},
	}
}

// CitiesQuery selects every city.
func CitiesQuery() Query {
	return Query{Collection: CitiesCollection}
}

// ListQuery selects the most recent records of c, newest first, optionally
// restricted to one city id.
func ListQuery(c Category, cityID string, limit int) Query {
	q := Query{
		Collection: c.Collection(),
		OrderBy:    ColumnCreatedAt,
		Descending: true,
		Limit:      limit,
	}
	if cityID != "" {
		q.Filters = []Filter{{Column: ColumnCityID, Value: cityID}}
	}
	return q
}
