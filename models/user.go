package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID          string          `gorm:"primaryKey" json:"id"`
	Email       string          `gorm:"unique;not null" json:"email"`
	Phone       string          `json:"phone"`
	Name        string          `json:"name"`
	Picture     string          `json:"picture"`
	Provider    string          `json:"provider"`
	StoreCredit decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"store_credit"`
	Cart        Cart            `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"cart"`
	Addresses   []Address       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"addresses"`
	Orders      []Order         `gorm:"foreignKey:UserID" json:"orders"`
	CreatedAt   time.Time       `json:"created_at"`
}
