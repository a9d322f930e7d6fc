package models

import "time"

type ReturnType string

const (
	ReturnTypeReturn   ReturnType = "return"
	ReturnTypeExchange ReturnType = "exchange"
)

// Return tracks the two-stage approval flow for a return or exchange request:
//
//	Approved == nil                      awaiting first review
//	Approved == false                    declined, terminal
//	Approved == true, FinalApproved nil  awaiting physical inspection
//	FinalApproved != nil                 resolved, terminal
type Return struct {
	ID                 uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID            uint       `gorm:"uniqueIndex;not null" json:"order_id"`
	Order              Order      `gorm:"foreignKey:OrderID" json:"order"`
	UserID             string     `gorm:"index;not null" json:"user_id"`
	Type               ReturnType `gorm:"type:varchar(10);not null" json:"type"`
	Reason             string     `gorm:"not null" json:"reason"`
	ExchangeSize       string     `gorm:"type:varchar(10)" json:"exchange_size"`
	Approved           *bool      `json:"approved"`
	DeclineReason      string     `json:"decline_reason"`
	FinalApproved      *bool      `json:"final_approved"`
	FinalDeclineReason string     `json:"final_decline_reason"`
	WaybillID          string     `json:"waybill_id"`          // reverse pickup waybill
	ExchangeWaybillID  string     `json:"exchange_waybill_id"` // forward shipment for exchanges
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// Terminal reports whether any further transition must be rejected.
func (r *Return) Terminal() bool {
	if r.Approved != nil && !*r.Approved {
		return true
	}
	return r.FinalApproved != nil
}
