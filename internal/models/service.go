package models

import (
	"encoding/json"
	"time"
)

// Service represents an offering listed on the public site.
type Service struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`  // emoji or icon identifier
	Price       *string   `json:"price"` // e.g. "From 1500€", nil when not shown
	Featured    bool      `json:"featured"`
	Active      bool      `json:"active"`
	Order       int       `json:"order"`
	CreatedAt   time.Time `json:"created_at"`
}

// ServiceInput is the request body for creating or updating a service.
// A partial body such as {"active": false} only touches that field.
type ServiceInput struct {
	Title       *string `json:"title,omitempty"`
	Slug        *string `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	Price       *string `json:"price"`
	Featured    *bool   `json:"featured,omitempty"`
	Active      *bool   `json:"active,omitempty"`
	Order       *int    `json:"order,omitempty"`

	// priceSet records whether the price key was present at all, so an
	// explicit null clears the price while an absent key leaves it alone.
	priceSet bool
}

// UnmarshalJSON tracks the presence of the price key.
func (in *ServiceInput) UnmarshalJSON(data []byte) error {
	type plain ServiceInput
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*in = ServiceInput(p)
	_, in.priceSet = raw["price"]
	return nil
}

// HasPrice reports whether the input carried a price key, null included.
func (in ServiceInput) HasPrice() bool {
	return in.priceSet || in.Price != nil
}

// Apply copies every field present in the input onto s.
func (in ServiceInput) Apply(s *Service) {
	if in.Title != nil {
		s.Title = *in.Title
	}
	if in.Slug != nil {
		s.Slug = *in.Slug
	}
	if in.Description != nil {
		s.Description = *in.Description
	}
	if in.Icon != nil {
		s.Icon = *in.Icon
	}
	if in.HasPrice() {
		s.Price = in.Price
	}
	if in.Featured != nil {
		s.Featured = *in.Featured
	}
	if in.Active != nil {
		s.Active = *in.Active
	}
	if in.Order != nil {
		s.Order = *in.Order
	}
}

// ServiceOrder is one entry of a batch reorder request.
type ServiceOrder struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}
