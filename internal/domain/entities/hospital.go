package entities

import (
	"time"
)

// Hospital represents a clinic or hospital offering treatments
type Hospital struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Address     Address   `json:"address" db:"-"`
	Location    Location  `json:"location" db:"-"`
	PhoneNumber string    `json:"phone_number,omitempty" db:"phone_number"`
	Website     string    `json:"website,omitempty" db:"website"`
	Description string    `json:"description,omitempty" db:"description"`
	Rating      float64   `json:"rating" db:"rating"`
	ReviewCount int       `json:"review_count" db:"review_count"`
	Tags        []string  `json:"tags,omitempty" db:"-"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Address represents a physical address
type Address struct {
	Street  string `json:"street" db:"street"`
	City    string `json:"city" db:"city"`
	Country string `json:"country" db:"country"`
}

// Location represents geographical coordinates
type Location struct {
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`
}
