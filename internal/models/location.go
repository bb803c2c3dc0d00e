package models

import "time"

type Location struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateLocationRequest is the request body for creating a location.
type CreateLocationRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// UpdateLocationRequest carries a partial update; nil fields are untouched.
type UpdateLocationRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
}
