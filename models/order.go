package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending     OrderStatus = "pending"       // placed, awaiting payment
	OrderStatusConfirmed   OrderStatus = "confirmed"     // payment captured
	OrderStatusReadyToShip OrderStatus = "ready_to_ship" // packed, waybill assigned
	OrderStatusShipped     OrderStatus = "shipped"       // handed to courier
	OrderStatusDelivered   OrderStatus = "delivered"     // customer received the item
	OrderStatusReturned    OrderStatus = "returned"      // returned after delivery
	OrderStatusCancelled   OrderStatus = "cancelled"     // payment failed or aborted
)

// Order is one (product, size) line item of a checkout. All line items of one
// checkout share the same RzpOrderID. Price is the line total snapshotted from
// the authoritative product price at placement time.
type Order struct {
	ID             uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         string          `gorm:"index;not null" json:"user_id"`
	AddressID      uint            `gorm:"not null" json:"address_id"`
	Address        Address         `gorm:"foreignKey:AddressID" json:"address"`
	ProductID      uint            `gorm:"not null" json:"product_id"`
	Product        Product         `gorm:"foreignKey:ProductID" json:"product"`
	Size           string          `gorm:"type:varchar(10);not null" json:"size"`
	Quantity       int             `gorm:"not null" json:"quantity"`
	Price          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	RzpOrderID     string          `gorm:"index;not null" json:"rzp_order_id"`
	RzpPaymentID   string          `json:"rzp_payment_id"`
	PaymentSuccess bool            `gorm:"not null;default:false" json:"payment_success"`
	Status         OrderStatus     `gorm:"type:varchar(20);default:'pending'" json:"status"`
	WaybillID      string          `json:"waybill_id"` // forward shipment waybill
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
