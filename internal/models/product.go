package models

import "time"

// Units is the fixed vocabulary for product units.
var Units = []string{"pieces", "boxes", "kg", "liters"}

// ValidUnit reports whether u is one of the known units.
func ValidUnit(u string) bool {
	for _, known := range Units {
		if u == known {
			return true
		}
	}
	return false
}

type Product struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Unit      string    `json:"unit"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateProductRequest is the request body for creating a product.
type CreateProductRequest struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Unit     string `json:"unit"`
}

// UpdateProductRequest carries a partial update; nil fields are untouched.
type UpdateProductRequest struct {
	Code     *string `json:"code"`
	Name     *string `json:"name"`
	Category *string `json:"category"`
	Unit     *string `json:"unit"`
}
