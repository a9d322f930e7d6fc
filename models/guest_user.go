package models

import "time"

// GuestUser is a short-lived identity for logged-out checkout.
type GuestUser struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	ExpiresAt time.Time `json:"expires_at"`
}
