package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Cart struct {
	CartID    uint       `gorm:"primaryKey" json:"cart_id"`
	UserID    string     `gorm:"uniqueIndex" json:"user_id"` // one cart per user
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type CartItem struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	CartID       uint            `gorm:"index;uniqueIndex:idx_cart_product_size" json:"cart_id"`
	ProductID    uint            `gorm:"uniqueIndex:idx_cart_product_size" json:"product_id"`
	Size         string          `gorm:"type:varchar(10);uniqueIndex:idx_cart_product_size" json:"size"`
	ProductTitle string          `json:"product_title"`
	ProductImage string          `json:"product_image"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(10,2)" json:"unit_price"`
	Quantity     int             `json:"quantity"`
	AddedAt      time.Time       `json:"added_at"`
}
