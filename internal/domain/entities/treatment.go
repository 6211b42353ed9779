package entities

import (
	"time"
)

// Treatment represents a bookable aesthetic/medical treatment offered by a hospital
type Treatment struct {
	ID            string    `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	HospitalID    string    `json:"hospital_id" db:"hospital_id"`
	CategoryLarge string    `json:"category_large,omitempty" db:"category_large"`
	CategoryMid   string    `json:"category_mid,omitempty" db:"category_mid"`
	CategorySmall string    `json:"category_small,omitempty" db:"category_small"`
	Description   string    `json:"description,omitempty" db:"description"`
	Price         float64   `json:"price" db:"price"`
	Currency      string    `json:"currency" db:"currency"`
	Rating        float64   `json:"rating" db:"rating"`
	ReviewCount   int       `json:"review_count" db:"review_count"`
	RecoveryDays  int       `json:"recovery_days" db:"recovery_days"`
	Tags          []string  `json:"tags,omitempty" db:"-"`
	IsActive      bool      `json:"is_active" db:"is_active"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// GroupCategory returns the category this treatment is grouped under on
// ranking pages: the mid category, falling back to the small category.
func (t *Treatment) GroupCategory() string {
	if t.CategoryMid != "" {
		return t.CategoryMid
	}
	return t.CategorySmall
}
