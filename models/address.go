package models

import "time"

// Address belongs to a user or guest identity. Name, email and phone are
// snapshotted at creation time rather than joined from the owner, so later
// profile edits do not rewrite shipping history.
type Address struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"index;not null" json:"user_id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null" json:"email"`
	Phone     string    `gorm:"not null" json:"phone"`
	Line1     string    `gorm:"not null" json:"line1"`
	Line2     string    `json:"line2"`
	City      string    `gorm:"not null" json:"city"`
	State     string    `gorm:"not null" json:"state"`
	Pincode   string    `gorm:"type:varchar(6);not null" json:"pincode"`
	CreatedAt time.Time `json:"created_at"`
}
