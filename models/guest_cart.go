package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// GuestCart mirrors Cart for guest identities.
type GuestCart struct {
	CartID    uint            `gorm:"primaryKey" json:"cart_id"`
	GuestID   string          `gorm:"uniqueIndex" json:"guest_id"` // one cart per guest
	Items     []GuestCartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type GuestCartItem struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	CartID       uint            `gorm:"index;uniqueIndex:idx_guest_cart_product_size" json:"cart_id"`
	ProductID    uint            `gorm:"uniqueIndex:idx_guest_cart_product_size" json:"product_id"`
	Size         string          `gorm:"type:varchar(10);uniqueIndex:idx_guest_cart_product_size" json:"size"`
	ProductTitle string          `json:"product_title"`
	ProductImage string          `json:"product_image"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(10,2)" json:"unit_price"`
	Quantity     int             `json:"quantity"`
	AddedAt      time.Time       `json:"added_at"`
}
