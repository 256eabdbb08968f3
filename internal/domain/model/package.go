package model

// Package is a priced, fixed-duration product definition. The table is
// static and read-only at runtime.
type Package struct {
	ID            string
	DisplayName   string
	Price         int64
	DurationHours int
}

// Catalog resolves package definitions by id.
type Catalog map[string]Package

// DefaultCatalog lists the packages sold by the shop. Prices are integral
// VND units.
func DefaultCatalog() Catalog {
	return Catalog{
		"test":  {ID: "test", DisplayName: "Test", Price: 1000, DurationHours: 3},
		"1day":  {ID: "1day", DisplayName: "1 Day", Price: 5000, DurationHours: 24},
		"7day":  {ID: "7day", DisplayName: "7 Days", Price: 20000, DurationHours: 168},
		"30day": {ID: "30day", DisplayName: "30 Days", Price: 50000, DurationHours: 720},
	}
}

// Get returns the package definition for id.
func (c Catalog) Get(id string) (Package, bool) {
	p, ok := c[id]
	return p, ok
}
