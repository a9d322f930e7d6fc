package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/arushi-dev/vastra-api/models"
)

// seedShippedOrder creates a paid order with a waybill, ready for a return
// request once the fake courier says it was delivered.
func seedShippedOrder(t *testing.T, db *gorm.DB, userID string, addressID, productID uint) models.Order {
	t.Helper()
	order := models.Order{
		UserID:         userID,
		AddressID:      addressID,
		ProductID:      productID,
		Size:           "md",
		Quantity:       1,
		Price:          decimal.RequireFromString("1499.00"),
		RzpOrderID:     "order_ret_" + userID,
		RzpPaymentID:   "pay_ret",
		PaymentSuccess: true,
		Status:         models.OrderStatusShipped,
		WaybillID:      "WB900001",
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func newReturnService(db *gorm.DB, cr *fakeCourier) *ReturnService {
	return NewReturnService(db, cr, zap.NewNop())
}

func TestRequestReturnWithinWindow(t *testing.T) {
	db := newTestDB(t)
	cr := &fakeCourier{trackStatus: "Delivered", trackAt: time.Now().Add(-48 * time.Hour)}
	svc := newReturnService(db, cr)

	user := seedUser(t, db, "u1")
	address := seedAddress(t, db, user.ID)
	product := seedProduct(t, db, "Chikankari Kurta", "1499.00", models.Quantity{Md: 5})
	order := seedShippedOrder(t, db, user.ID, address.ID, product.ID)

	ret, svcErr := svc.RequestReturn(context.Background(), RequestReturnInput{
		UserID:  user.ID,
		OrderID: order.ID,
		Type:    models.ReturnTypeReturn,
		Reason:  "too small",
	})
	require.Nil(t, svcErr)
	assert.Equal(t, order.ID, ret.OrderID)
	assert.Nil(t, ret.Approved)
	assert.Nil(t, ret.FinalApproved)
}

func TestRequestReturnWindowClosed(t *testing.T) {
	db := newTestDB(t)
	cr := &fakeCourier{trackStatus: "Delivered", trackAt: time.Now().Add(-8 * 24 * time.Hour)}
	svc := newReturnService(db, cr)

	user := seedUser(t, db, "u1")
	address := seedAddress(t, db, user.ID)
	product := seedProduct(t, db, "Chikankari Kurta", "1499.00", models.Quantity{Md: 5})
	order := seedShippedOrder(t, db, user.ID, address.ID, product.ID)

	_, svcErr := svc.RequestReturn(context.Background(), RequestReturnInput{
		UserID:  user.ID,
		OrderID: order.ID,
		Type:    models.ReturnTypeReturn,
		Reason:  "changed my mind",
	})
	require.NotNil(t, svcErr)
	assert.Equal(t, KindInvalid, svcErr.Kind)
}

func TestRequestReturnNotDelivered(t *testing.T) {
	db := newTestDB(t)
	cr := &fakeCourier{trackStatus: "In Transit", trackAt: time.Now()}
	svc := newReturnService(db, cr)

	user := seedUser(t, db, "u1")
	address := seedAddress(t, db, user.ID)
	product := seedProduct(t, db, "Chikankari Kurta", "1499.00", models.Quantity{Md: 5})
	order := seedShippedOrder(t, db, user.ID, address.ID, product.ID)

	_, svcErr := svc.RequestReturn(context.Background(), RequestReturnInput{
		UserID:  user.ID,
		OrderID: order.ID,
		Type:    models.ReturnTypeReturn,
		Reason:  "defective",
	})
	require.NotNil(t, svcErr)
	assert.Equal(t, KindInvalid, svcErr.Kind)
}

func TestRequestReturnOwnershipAndDuplicates(t *testing.T) {
	db := newTestDB(t)
	cr := &fakeCourier{trackStatus: "Delivered", trackAt: time.Now().Add(-24 * time.Hour)}
	svc := newReturnService(db, cr)

	owner := seedUser(t, db, "owner")
	stranger := seedUser(t, db, "stranger")
	address := seedAddress(t, db, owner.ID)
	product := seedProduct(t, db, "Chikankari Kurta", "1499.00", models.Quantity{Md: 5})
	order := seedShippedOrder(t, db, owner.ID, address.ID, product.ID)

	// Someone else's order looks like a missing one.
	_, svcErr := svc.RequestReturn(context.Background(), RequestReturnInput{
		UserID:  stranger.ID,
		OrderID: order.ID,
		Type:    models.ReturnTypeReturn,
		Reason:  "not mine",
	})
	require.NotNil(t, svcErr)
	assert.Equal(t, KindNotFound, svcErr.Kind)

	in := RequestReturnInput{
		UserID:  owner.ID,
		OrderID: order.ID,
		Type:    models.ReturnTypeReturn,
		Reason:  "too small",
	}
	_, svcErr = svc.RequestReturn(context.Background(), in)
	require.Nil(t, svcErr)

	_, svcErr = svc.RequestReturn(context.Background(), in)
	require.NotNil(t, svcErr)
	assert.Equal(t, KindConflict, svcErr.Kind)
}

func TestRequestExchangeNeedsValidSize(t *testing.T) {
	db := newTestDB(t)
	cr := &fakeCourier{trackStatus: "Delivered", trackAt: time.Now()}
	svc := newReturnService(db, cr)

	user := seedUser(t, db, "u1")
	address := seedAddress(t, db, user.ID)
	product := seedProduct(t, db, "Chikankari Kurta", "1499.00", models.Quantity{Md: 5})
	order := seedShippedOrder(t, db, user.ID, address.ID, product.ID)

	_, svcErr := svc.RequestReturn(context.Background(), RequestReturnInput{
		UserID:       user.ID,
		OrderID:      order.ID,
		Type:         models.ReturnTypeExchange,
		Reason:       "wrong size",
		ExchangeSize: "xxxl",
	})
	require.NotNil(t, svcErr)
	assert.Equal(t, KindInvalid, svcErr.Kind)
}

func TestApproveBooksReversePickupOnce(t *testing.T) {
	db := newTestDB(t)
	cr := &fakeCourier{trackStatus: "Delivered", trackAt: time.Now()}
	svc := newReturnService(db, cr)

	user := seedUser(t, db, "u1")
	address := seedAddress(t, db, user.ID)
	product := seedProduct(t, db, "Chikankari Kurta", "1499.00", models.Quantity{Md: 5})
	order := seedShippedOrder(t, db, user.ID, address.ID, product.ID)

	ret, svcErr := svc.RequestReturn(context.Background(), RequestReturnInput{
		UserID: user.ID, OrderID: order.ID, Type: models.ReturnTypeReturn, Reason: "too small",
	})
	require.Nil(t, svcErr)

	approved, svcErr := svc.Approve(context.Background(), ret.ID, true, "")
	require.Nil(t, svcErr)
	require.NotNil(t, approved.Approved)
	assert.True(t, *approved.Approved)
	assert.Equal(t, "WB000001", approved.WaybillID)

	var stored models.Return
	require.NoError(t, db.First(&stored, ret.ID).Error)
	assert.Equal(t, "WB000001", stored.WaybillID)

	// The reverse pickup uses pickup mode against the customer's address.
	require.Len(t, cr.shipments, 1)
	assert.True(t, cr.shipments[0].Reverse)
	assert.Equal(t, address.Pincode, cr.shipments[0].Pincode)

	// Repeated approval neither re-reviews nor books a second pickup.
	_, svcErr = svc.Approve(context.Background(), ret.ID, true, "")
	require.NotNil(t, svcErr)
	assert.Equal(t, KindConflict, svcErr.Kind)
	assert.Len(t, cr.shipments, 1)
}

func TestDeclineIsTerminal(t *testing.T) {
	db := newTestDB(t)
	cr := &fakeCourier{trackStatus: "Delivered", trackAt: time.Now()}
	svc := newReturnService(db, cr)

	user := seedUser(t, db, "u1")
	address := seedAddress(t, db, user.ID)
	product := seedProduct(t, db, "Chikankari Kurta", "1499.00", models.Quantity{Md: 5})
	order := seedShippedOrder(t, db, user.ID, address.ID, product.ID)

	ret, svcErr := svc.RequestReturn(context.Background(), RequestReturnInput{
		UserID: user.ID, OrderID: order.ID, Type: models.ReturnTypeReturn, Reason: "too small",
	})
	require.Nil(t, svcErr)

	// Declining without a reason is rejected.
	_, svcErr = svc.Approve(context.Background(), ret.ID, false, "")
	require.NotNil(t, svcErr)
	assert.Equal(t, KindInvalid, svcErr.Kind)

	declined, svcErr := svc.Approve(context.Background(), ret.ID, false, "outside policy")
	require.Nil(t, svcErr)
	require.NotNil(t, declined.Approved)
	assert.False(t, *declined.Approved)
	assert.Equal(t, "outside policy", declined.DeclineReason)
	assert.Empty(t, declined.WaybillID)

	// No pickup was booked, and the state machine is closed.
	assert.Empty(t, cr.shipments)
	_, svcErr = svc.FinalApprove(context.Background(), ret.ID, true, "")
	require.NotNil(t, svcErr)
	assert.Equal(t, KindConflict, svcErr.Kind)
}

func TestFinalApproveReturnCreditsExactlyOnce(t *testing.T) {
	db := newTestDB(t)
	cr := &fakeCourier{trackStatus: "Delivered", trackAt: time.Now()}
	svc := newReturnService(db, cr)

	user := seedUser(t, db, "u1")
	address := seedAddress(t, db, user.ID)
	product := seedProduct(t, db, "Chikankari Kurta", "1499.00", models.Quantity{Md: 4})
	order := seedShippedOrder(t, db, user.ID, address.ID, product.ID)

	ret, svcErr := svc.RequestReturn(context.Background(), RequestReturnInput{
		UserID: user.ID, OrderID: order.ID, Type: models.ReturnTypeReturn, Reason: "too small",
	})
	require.Nil(t, svcErr)

	// Final approval before first-stage review is rejected.
	_, svcErr = svc.FinalApprove(context.Background(), ret.ID, true, "")
	require.NotNil(t, svcErr)
	assert.Equal(t, KindConflict, svcErr.Kind)

	_, svcErr = svc.Approve(context.Background(), ret.ID, true, "")
	require.Nil(t, svcErr)

	resolved, svcErr := svc.FinalApprove(context.Background(), ret.ID, true, "")
	require.Nil(t, svcErr)
	require.NotNil(t, resolved.FinalApproved)
	assert.True(t, *resolved.FinalApproved)

	var credited models.User
	require.NoError(t, db.First(&credited, "id = ?", user.ID).Error)
	assert.True(t, credited.StoreCredit.Equal(decimal.RequireFromString("1499.00")),
		"got credit %s", credited.StoreCredit)
	assert.Equal(t, 5, stockFor(t, db, product.ID, "md"))

	// Repeating the decision must not credit or restock a second time.
	_, svcErr = svc.FinalApprove(context.Background(), ret.ID, true, "")
	require.NotNil(t, svcErr)
	assert.Equal(t, KindConflict, svcErr.Kind)

	require.NoError(t, db.First(&credited, "id = ?", user.ID).Error)
	assert.True(t, credited.StoreCredit.Equal(decimal.RequireFromString("1499.00")))
	assert.Equal(t, 5, stockFor(t, db, product.ID, "md"))
}

func TestFinalApproveExchangeShipsReplacement(t *testing.T) {
	db := newTestDB(t)
	cr := &fakeCourier{trackStatus: "Delivered", trackAt: time.Now()}
	svc := newReturnService(db, cr)

	user := seedUser(t, db, "u1")
	address := seedAddress(t, db, user.ID)
	product := seedProduct(t, db, "Chikankari Kurta", "1499.00", models.Quantity{Md: 4, Lg: 2})
	order := seedShippedOrder(t, db, user.ID, address.ID, product.ID)

	ret, svcErr := svc.RequestReturn(context.Background(), RequestReturnInput{
		UserID:       user.ID,
		OrderID:      order.ID,
		Type:         models.ReturnTypeExchange,
		Reason:       "need a size up",
		ExchangeSize: "lg",
	})
	require.Nil(t, svcErr)

	_, svcErr = svc.Approve(context.Background(), ret.ID, true, "")
	require.Nil(t, svcErr)

	resolved, svcErr := svc.FinalApprove(context.Background(), ret.ID, true, "")
	require.Nil(t, svcErr)
	assert.Equal(t, "WB000002", resolved.ExchangeWaybillID)

	// An exchange ships a replacement; it never credits the customer.
	var untouched models.User
	require.NoError(t, db.First(&untouched, "id = ?", user.ID).Error)
	assert.True(t, untouched.StoreCredit.IsZero())

	// Reverse pickup first, then the forward replacement.
	require.Len(t, cr.shipments, 2)
	assert.True(t, cr.shipments[0].Reverse)
	assert.False(t, cr.shipments[1].Reverse)
}

func TestFinalDeclineLeavesCreditAndStockAlone(t *testing.T) {
	db := newTestDB(t)
	cr := &fakeCourier{trackStatus: "Delivered", trackAt: time.Now()}
	svc := newReturnService(db, cr)

	user := seedUser(t, db, "u1")
	address := seedAddress(t, db, user.ID)
	product := seedProduct(t, db, "Chikankari Kurta", "1499.00", models.Quantity{Md: 4})
	order := seedShippedOrder(t, db, user.ID, address.ID, product.ID)

	ret, svcErr := svc.RequestReturn(context.Background(), RequestReturnInput{
		UserID: user.ID, OrderID: order.ID, Type: models.ReturnTypeReturn, Reason: "too small",
	})
	require.Nil(t, svcErr)
	_, svcErr = svc.Approve(context.Background(), ret.ID, true, "")
	require.Nil(t, svcErr)

	resolved, svcErr := svc.FinalApprove(context.Background(), ret.ID, false, "item was worn")
	require.Nil(t, svcErr)
	require.NotNil(t, resolved.FinalApproved)
	assert.False(t, *resolved.FinalApproved)
	assert.Equal(t, "item was worn", resolved.FinalDeclineReason)

	var user2 models.User
	require.NoError(t, db.First(&user2, "id = ?", user.ID).Error)
	assert.True(t, user2.StoreCredit.IsZero())
	assert.Equal(t, 4, stockFor(t, db, product.ID, "md"))
}
