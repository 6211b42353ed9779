package entities

import (
	"time"
)

// Favorite marks a treatment a user has saved
type Favorite struct {
	UserID      string    `json:"user_id" db:"user_id"`
	TreatmentID string    `json:"treatment_id" db:"treatment_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
