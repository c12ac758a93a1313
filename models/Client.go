package models

import (
	"strings"
	"time"
)

// Client is a customer of the workshop.
type Client struct {
	ID        int       `json:"id"`
	FirstName string    `json:"first_name" validate:"required"`
	LastName  string    `json:"last_name" validate:"required"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Active    bool      `json:"active"`
}

// FullName joins the client's names for display and for the denormalized
// client field on sales.
func (c Client) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}
