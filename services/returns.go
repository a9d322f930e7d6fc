package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/arushi-dev/vastra-api/courier"
	"github.com/arushi-dev/vastra-api/models"
)

// ReturnWindow is how long after delivery a return or exchange may be filed.
const ReturnWindow = 7 * 24 * time.Hour

type ReturnService struct {
	db      *gorm.DB
	courier Courier
	log     *zap.Logger
}

func NewReturnService(db *gorm.DB, cr Courier, log *zap.Logger) *ReturnService {
	return &ReturnService{db: db, courier: cr, log: log}
}

type RequestReturnInput struct {
	UserID       string
	OrderID      uint
	Type         models.ReturnType
	Reason       string
	ExchangeSize string
}

// RequestReturn files a return or exchange for a delivered order. The return
// window is gated on the courier's tracking status: delivered, and no more
// than ReturnWindow ago.
func (s *ReturnService) RequestReturn(ctx context.Context, in RequestReturnInput) (*models.Return, *Error) {
	if in.UserID == "" {
		return nil, errf(KindUnauthenticated, "you must be logged in to request a return")
	}
	if in.Type != models.ReturnTypeReturn && in.Type != models.ReturnTypeExchange {
		return nil, errf(KindInvalid, "type must be return or exchange")
	}
	if in.Reason == "" {
		return nil, errf(KindInvalid, "a reason is required")
	}
	if in.Type == models.ReturnTypeExchange && !models.ValidSize(in.ExchangeSize) {
		return nil, errf(KindInvalid, "a valid exchange size is required")
	}

	var order models.Order
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", in.OrderID, in.UserID).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errf(KindNotFound, "order not found")
		}
		return nil, internal(s.log, "request return: load order", err)
	}
	if !order.PaymentSuccess {
		return nil, errf(KindInvalid, "order was never paid")
	}
	if order.WaybillID == "" {
		return nil, errf(KindInvalid, "order has not shipped yet")
	}

	tracking, err := s.courier.Track(ctx, order.WaybillID)
	if err != nil {
		s.log.Warn("return window check failed", zap.String("waybill", order.WaybillID), zap.Error(err))
		return nil, errf(KindInternal, "could not verify delivery status, please try again later")
	}
	if !tracking.Delivered() {
		return nil, errf(KindInvalid, "order has not been delivered yet")
	}
	if time.Since(tracking.LastEventAt) > ReturnWindow {
		return nil, errf(KindInvalid, "the return window for this order has closed")
	}

	ret := &models.Return{
		OrderID:      order.ID,
		UserID:       in.UserID,
		Type:         in.Type,
		Reason:       in.Reason,
		ExchangeSize: in.ExchangeSize,
	}
	if err := s.db.WithContext(ctx).Create(ret).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errf(KindConflict, "a return already exists for this order")
		}
		return nil, internal(s.log, "request return: create", err)
	}
	return ret, nil
}

// Approve records the first-stage decision. Approval schedules the reverse
// pickup with the courier and persists the waybill in the same transaction;
// decline is terminal. The state guard is a conditional UPDATE, so a repeated
// call cannot re-review or re-request a pickup.
func (s *ReturnService) Approve(ctx context.Context, returnID uint, approve bool, note string) (*models.Return, *Error) {
	var ret models.Return
	if err := s.db.WithContext(ctx).
		Preload("Order").Preload("Order.Address").
		First(&ret, returnID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errf(KindNotFound, "return not found")
		}
		return nil, internal(s.log, "approve return: load", err)
	}
	if ret.Terminal() || ret.Approved != nil {
		return nil, errf(KindConflict, "return has already been reviewed")
	}
	if !approve && note == "" {
		return nil, errf(KindInvalid, "a decline reason is required")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{"approved": approve}
		if !approve {
			updates["decline_reason"] = note
		}

		res := tx.Model(&models.Return{}).
			Where("id = ? AND approved IS NULL", ret.ID).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errAborted
		}

		if approve {
			shipment, err := s.courier.CreateShipment(ctx, courier.ShipmentRequest{
				OrderRef: ret.Order.RzpOrderID,
				Name:     ret.Order.Address.Name,
				Phone:    ret.Order.Address.Phone,
				Line1:    ret.Order.Address.Line1,
				City:     ret.Order.Address.City,
				State:    ret.Order.Address.State,
				Pincode:  ret.Order.Address.Pincode,
				Reverse:  true,
			})
			if err != nil {
				return err
			}
			ret.WaybillID = shipment.Waybill
			if err := tx.Model(&models.Return{}).
				Where("id = ?", ret.ID).
				Update("waybill_id", shipment.Waybill).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errAborted) {
			return nil, errf(KindConflict, "return has already been reviewed")
		}
		return nil, internal(s.log, "approve return", err)
	}

	ret.Approved = &approve
	if !approve {
		ret.DeclineReason = note
	}
	return &ret, nil
}

// FinalApprove records the post-inspection decision. For a return, final
// approval credits the customer's store credit by the order price and puts the
// units back into the size bucket, both as atomic column arithmetic in one
// transaction with the state flip, so a repeated call cannot double-apply.
// For an exchange, it manifests the replacement shipment instead.
func (s *ReturnService) FinalApprove(ctx context.Context, returnID uint, approve bool, note string) (*models.Return, *Error) {
	var ret models.Return
	if err := s.db.WithContext(ctx).
		Preload("Order").Preload("Order.Address").
		First(&ret, returnID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errf(KindNotFound, "return not found")
		}
		return nil, internal(s.log, "final approve return: load", err)
	}
	if ret.Terminal() {
		return nil, errf(KindConflict, "return is already resolved")
	}
	if ret.Approved == nil || !*ret.Approved {
		return nil, errf(KindConflict, "return has not passed first-stage review")
	}
	if !approve && note == "" {
		return nil, errf(KindInvalid, "a decline reason is required")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{"final_approved": approve}
		if !approve {
			updates["final_decline_reason"] = note
		}

		res := tx.Model(&models.Return{}).
			Where("id = ? AND approved = ? AND final_approved IS NULL", ret.ID, true).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errAborted
		}

		if !approve {
			return nil
		}

		switch ret.Type {
		case models.ReturnTypeReturn:
			credit := tx.Model(&models.User{}).
				Where("id = ?", ret.UserID).
				UpdateColumn("store_credit", gorm.Expr("store_credit + ?", ret.Order.Price))
			if credit.Error != nil {
				return credit.Error
			}
			if err := incrementStock(tx, ret.Order.ProductID, ret.Order.Size, ret.Order.Quantity); err != nil {
				return err
			}
		case models.ReturnTypeExchange:
			shipment, err := s.courier.CreateShipment(ctx, courier.ShipmentRequest{
				OrderRef:    ret.Order.RzpOrderID,
				Name:        ret.Order.Address.Name,
				Phone:       ret.Order.Address.Phone,
				Line1:       ret.Order.Address.Line1,
				City:        ret.Order.Address.City,
				State:       ret.Order.Address.State,
				Pincode:     ret.Order.Address.Pincode,
				PaymentMode: courier.PaymentModePrepaid,
			})
			if err != nil {
				return err
			}
			ret.ExchangeWaybillID = shipment.Waybill
			if err := tx.Model(&models.Return{}).
				Where("id = ?", ret.ID).
				Update("exchange_waybill_id", shipment.Waybill).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errAborted) {
			return nil, errf(KindConflict, "return is already resolved")
		}
		return nil, internal(s.log, "final approve return", err)
	}

	ret.FinalApproved = &approve
	if !approve {
		ret.FinalDeclineReason = note
	}
	return &ret, nil
}
