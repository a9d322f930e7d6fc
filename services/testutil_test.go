package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/arushi-dev/vastra-api/courier"
	"github.com/arushi-dev/vastra-api/gateway"
	"github.com/arushi-dev/vastra-api/models"
	"github.com/arushi-dev/vastra-api/pincode"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// In-memory sqlite is per connection; pin the pool to one.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.GuestUser{},
		&models.Product{},
		&models.ProductImage{},
		&models.Quantity{},
		&models.Cart{},
		&models.CartItem{},
		&models.GuestCart{},
		&models.GuestCartItem{},
		&models.Address{},
		&models.Order{},
		&models.Return{},
		&models.Review{},
	))
	return db
}

// fakeGateway hands out sequential order ids without talking to Razorpay.
type fakeGateway struct {
	orders int
	fail   bool
}

func (f *fakeGateway) CreateOrder(_ context.Context, amount decimal.Decimal, currency, receipt string) (*gateway.Order, error) {
	if f.fail {
		return nil, fmt.Errorf("gateway unavailable")
	}
	f.orders++
	return &gateway.Order{
		ID:       fmt.Sprintf("order_fake%03d", f.orders),
		Amount:   amount.Mul(decimal.NewFromInt(100)).IntPart(),
		Currency: currency,
		Receipt:  receipt,
	}, nil
}

func (f *fakeGateway) KeyID() string { return "rzp_test_fake" }

// fakeCourier manifests sequential waybills and reports a fixed tracking
// status.
type fakeCourier struct {
	mu        sync.Mutex
	waybills  int
	shipments []courier.ShipmentRequest
	fail      bool

	trackStatus string
	trackAt     time.Time
	trackErr    error
}

func (f *fakeCourier) CreateShipment(_ context.Context, req courier.ShipmentRequest) (*courier.Shipment, error) {
	if f.fail {
		return nil, fmt.Errorf("courier unavailable")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.waybills++
	f.shipments = append(f.shipments, req)
	return &courier.Shipment{Waybill: fmt.Sprintf("WB%06d", f.waybills)}, nil
}

func (f *fakeCourier) manifested() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.shipments)
}

func (f *fakeCourier) Track(_ context.Context, _ string) (*courier.TrackingStatus, error) {
	if f.trackErr != nil {
		return nil, f.trackErr
	}
	return &courier.TrackingStatus{Status: f.trackStatus, LastEventAt: f.trackAt}, nil
}

// fakePincode marks every pin serviceable except the ones listed.
type fakePincode struct {
	unserviceable map[string]bool
	err           error
}

func (f *fakePincode) Lookup(_ context.Context, pin string) (*pincode.Serviceability, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &pincode.Serviceability{
		Serviceable: !f.unserviceable[pin],
		TTDDays:     3,
	}, nil
}

func seedUser(t *testing.T, db *gorm.DB, id string) models.User {
	t.Helper()
	user := models.User{
		ID:    id,
		Email: id + "@example.com",
		Name:  "Test " + id,
		Phone: "9876543210",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedGuest(t *testing.T, db *gorm.DB, id string, expiresAt time.Time) models.GuestUser {
	t.Helper()
	guest := models.GuestUser{ID: id, ExpiresAt: expiresAt}
	require.NoError(t, db.Create(&guest).Error)
	return guest
}

func seedProduct(t *testing.T, db *gorm.DB, title string, price string, qty models.Quantity) models.Product {
	t.Helper()
	product := models.Product{
		Title:    title,
		Price:    decimal.RequireFromString(price),
		Category: "kurtas",
		Quantity: qty,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func seedAddress(t *testing.T, db *gorm.DB, ownerID string) models.Address {
	t.Helper()
	address := models.Address{
		UserID:  ownerID,
		Name:    "Test Owner",
		Email:   ownerID + "@example.com",
		Phone:   "9876543210",
		Line1:   "14 MG Road",
		City:    "Bengaluru",
		State:   "Karnataka",
		Pincode: "560001",
	}
	require.NoError(t, db.Create(&address).Error)
	return address
}

func stockFor(t *testing.T, db *gorm.DB, productID uint, size string) int {
	t.Helper()
	var qty models.Quantity
	require.NoError(t, db.Where("product_id = ?", productID).First(&qty).Error)
	n, err := qty.Available(size)
	require.NoError(t, err)
	return n
}

func newOrderService(db *gorm.DB, gw *fakeGateway, cr *fakeCourier) *OrderService {
	return NewOrderService(db, gw, cr, zap.NewNop())
}
