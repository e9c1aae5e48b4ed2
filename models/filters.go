package models

// FilterMetadata is everything the storefront filter sidebar needs in one call.
type FilterMetadata struct {
	Availability *AvailabilityData `json:"availability"`
	Categories   []CategoryData    `json:"categories"`
	Vendors      []VendorData      `json:"vendors"`
	Tags         []string          `json:"tags"`
	PriceRange   *PriceRangeData   `json:"price_range"`
}

// AvailabilityData represents product availability counts
type AvailabilityData struct {
	InStock    int `json:"in_stock"`
	OutOfStock int `json:"out_of_stock"`
}

// CategoryData represents a category with optional subcategories
type CategoryData struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Slug          string         `json:"slug"`
	ParentID      string         `json:"parent_id,omitempty"`
	Subcategories []CategoryData `json:"subcategories,omitempty"`
}

// VendorData represents a vendor option in the filter sidebar
type VendorData struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// PriceRangeData represents the minimum and maximum price in the store
type PriceRangeData struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}
