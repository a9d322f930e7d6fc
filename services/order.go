package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/arushi-dev/vastra-api/courier"
	"github.com/arushi-dev/vastra-api/gateway"
	"github.com/arushi-dev/vastra-api/models"
)

// errAborted forces a transaction rollback when the tagged error is already
// captured in svcErr.
var errAborted = errors.New("operation aborted")

// Courier is the slice of the courier API the services need.
type Courier interface {
	CreateShipment(ctx context.Context, req courier.ShipmentRequest) (*courier.Shipment, error)
	Track(ctx context.Context, waybill string) (*courier.TrackingStatus, error)
}

// LineItem is one (product, size, quantity) entry in a checkout request.
type LineItem struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Size      string `json:"size" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// CheckoutIntent is handed back to the client to open the payment widget.
type CheckoutIntent struct {
	RzpOrderID string          `json:"rzp_order_id"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	KeyID      string          `json:"key_id"`
}

type OrderService struct {
	db      *gorm.DB
	gateway gateway.Client
	courier Courier
	log     *zap.Logger
}

func NewOrderService(db *gorm.DB, gw gateway.Client, cr Courier, log *zap.Logger) *OrderService {
	return &OrderService{db: db, gateway: gw, courier: cr, log: log}
}

// PlaceOrder runs checkout for a logged-in user: validates address ownership,
// reserves stock, creates one gateway order for the authoritative total, and
// inserts one pending Order row per line item. All of it happens in a single
// transaction, so a failing line item leaves nothing behind. The cart is never
// cleared on failure.
func (s *OrderService) PlaceOrder(ctx context.Context, userID string, addressID uint, items []LineItem) (*CheckoutIntent, *Error) {
	if userID == "" {
		return nil, errf(KindUnauthenticated, "you must be logged in to place an order")
	}
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errf(KindUnauthenticated, "account not found")
		}
		return nil, internal(s.log, "place order: load user", err)
	}
	return s.placeOrder(ctx, userID, addressID, items)
}

// PlaceOrderForGuest is the logged-out variant; the only difference is where
// the identity comes from. Recovery semantics are identical to PlaceOrder.
func (s *OrderService) PlaceOrderForGuest(ctx context.Context, guestID string, addressID uint, items []LineItem) (*CheckoutIntent, *Error) {
	if guestID == "" {
		return nil, errf(KindUnauthenticated, "guest session is required")
	}
	var guest models.GuestUser
	if err := s.db.WithContext(ctx).First(&guest, "id = ?", guestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errf(KindUnauthenticated, "guest session not found")
		}
		return nil, internal(s.log, "guest checkout: load guest", err)
	}
	if time.Now().After(guest.ExpiresAt) {
		return nil, errf(KindUnauthenticated, "guest session has expired")
	}
	return s.placeOrder(ctx, guestID, addressID, items)
}

func (s *OrderService) placeOrder(ctx context.Context, ownerID string, addressID uint, items []LineItem) (*CheckoutIntent, *Error) {
	if len(items) == 0 {
		return nil, errf(KindInvalid, "order must contain at least one item")
	}
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, errf(KindInvalid, "item quantity must be at least 1")
		}
		if !models.ValidSize(item.Size) {
			return nil, errf(KindInvalid, "unknown size %q", item.Size)
		}
	}

	// Fail closed on ownership: an address id that does not belong to this
	// identity is treated the same as a missing one.
	var address models.Address
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", addressID, ownerID).
		First(&address).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errf(KindForbidden, "address does not belong to this account")
		}
		return nil, internal(s.log, "place order: load address", err)
	}

	var intent *CheckoutIntent
	var svcErr *Error
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		total := decimal.Zero
		orders := make([]models.Order, 0, len(items))

		for _, item := range items {
			var product models.Product
			if err := tx.First(&product, item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					svcErr = errf(KindInvalid, "product %d does not exist", item.ProductID)
					return err
				}
				return err
			}

			ok, err := decrementStock(tx, item.ProductID, item.Size, item.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				svcErr = errf(KindOutOfStock, "%s is out of stock in size %s", product.Title, item.Size)
				return errAborted
			}

			lineTotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			total = total.Add(lineTotal)
			orders = append(orders, models.Order{
				UserID:    ownerID,
				AddressID: address.ID,
				ProductID: product.ID,
				Size:      item.Size,
				Quantity:  item.Quantity,
				Price:     lineTotal,
				Status:    models.OrderStatusPending,
			})
		}

		gwOrder, err := s.gateway.CreateOrder(ctx, total, "INR", uuid.NewString())
		if err != nil {
			return err
		}

		for i := range orders {
			orders[i].RzpOrderID = gwOrder.ID
		}
		if err := tx.Create(&orders).Error; err != nil {
			return err
		}

		intent = &CheckoutIntent{
			RzpOrderID: gwOrder.ID,
			Amount:     total,
			Currency:   "INR",
			KeyID:      s.gateway.KeyID(),
		}
		return nil
	})
	if err != nil {
		if svcErr != nil {
			return nil, svcErr
		}
		return nil, internal(s.log, "place order", err)
	}
	return intent, nil
}

// ConfirmPayment handles the gateway's payment.captured callback. The flip to
// paid is a conditional UPDATE, so replaying the webhook is a no-op. Stock was
// already reserved at placement; the only remaining side effects are marking
// the rows paid and clearing the owner's cart.
func (s *OrderService) ConfirmPayment(ctx context.Context, rzpOrderID, paymentID string) ([]models.Order, *Error) {
	if rzpOrderID == "" {
		return nil, errf(KindInvalid, "gateway order id is required")
	}

	var paid []models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("rzp_order_id = ? AND payment_success = ?", rzpOrderID, false).
			Updates(map[string]interface{}{
				"payment_success": true,
				"rzp_payment_id":  paymentID,
				"status":          models.OrderStatusConfirmed,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Already processed, or unknown order id. Either way nothing to do.
			return nil
		}

		if err := tx.Preload("Product").Preload("Address").
			Where("rzp_order_id = ?", rzpOrderID).
			Find(&paid).Error; err != nil {
			return err
		}
		if len(paid) == 0 {
			return nil
		}

		// Checkout succeeded, so the cart contents are now stale.
		return clearOwnerCart(tx, paid[0].UserID)
	})
	if err != nil {
		return nil, internal(s.log, "confirm payment", err)
	}
	return paid, nil
}

// CancelPayment handles payment.failed: pending rows are cancelled and their
// reserved stock is put back, row by row so a replayed webhook cannot restock
// twice.
func (s *OrderService) CancelPayment(ctx context.Context, rzpOrderID string) *Error {
	if rzpOrderID == "" {
		return errf(KindInvalid, "gateway order id is required")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pending []models.Order
		if err := tx.Where("rzp_order_id = ? AND payment_success = ? AND status = ?",
			rzpOrderID, false, models.OrderStatusPending).
			Find(&pending).Error; err != nil {
			return err
		}

		for _, order := range pending {
			res := tx.Model(&models.Order{}).
				Where("id = ? AND status = ? AND payment_success = ?",
					order.ID, models.OrderStatusPending, false).
				Update("status", models.OrderStatusCancelled)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				continue
			}
			if err := incrementStock(tx, order.ProductID, order.Size, order.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return internal(s.log, "cancel payment", err)
	}
	return nil
}

// ShipOrder manifests the forward shipment for a paid order and records the
// waybill on the row in the same transaction as the courier call. The row is
// claimed with a conditional UPDATE before the courier is asked for anything,
// so two concurrent ship requests cannot both manifest a shipment.
func (s *OrderService) ShipOrder(ctx context.Context, orderID uint) (*models.Order, *Error) {
	var order models.Order
	if err := s.db.WithContext(ctx).Preload("Address").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errf(KindNotFound, "order not found")
		}
		return nil, internal(s.log, "ship order: load", err)
	}
	if !order.PaymentSuccess || order.Status != models.OrderStatusConfirmed {
		return nil, errf(KindConflict, "order is not ready to ship")
	}
	if order.WaybillID != "" {
		return nil, errf(KindConflict, "order already has a waybill")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("id = ? AND payment_success = ? AND status = ? AND waybill_id = ''",
				order.ID, true, models.OrderStatusConfirmed).
			Update("status", models.OrderStatusReadyToShip)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errAborted
		}

		shipment, err := s.courier.CreateShipment(ctx, courier.ShipmentRequest{
			OrderRef:    order.RzpOrderID,
			Name:        order.Address.Name,
			Phone:       order.Address.Phone,
			Line1:       order.Address.Line1,
			City:        order.Address.City,
			State:       order.Address.State,
			Pincode:     order.Address.Pincode,
			PaymentMode: courier.PaymentModePrepaid,
		})
		if err != nil {
			return err
		}
		order.WaybillID = shipment.Waybill
		order.Status = models.OrderStatusReadyToShip
		return tx.Model(&models.Order{}).
			Where("id = ?", order.ID).
			Update("waybill_id", shipment.Waybill).Error
	})
	if err != nil {
		if errors.Is(err, errAborted) {
			return nil, errf(KindConflict, "order is not ready to ship")
		}
		return nil, internal(s.log, "ship order", err)
	}
	return &order, nil
}

// clearOwnerCart empties whichever cart (user or guest) belongs to ownerID.
func clearOwnerCart(tx *gorm.DB, ownerID string) error {
	var cart models.Cart
	if err := tx.Where("user_id = ?", ownerID).First(&cart).Error; err == nil {
		return tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	var guestCart models.GuestCart
	if err := tx.Where("guest_id = ?", ownerID).First(&guestCart).Error; err == nil {
		return tx.Where("cart_id = ?", guestCart.CartID).Delete(&models.GuestCartItem{}).Error
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}
