package gateway

import (
	"context"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/shopspring/decimal"
)

// Order is a payment order created with the gateway. Amount is in the smallest
// currency unit (paise for INR).
type Order struct {
	ID       string
	Amount   int64
	Currency string
	Receipt  string
}

// Client creates gateway orders. Implemented by the Razorpay SDK wrapper and
// faked in tests.
type Client interface {
	CreateOrder(ctx context.Context, amount decimal.Decimal, currency, receipt string) (*Order, error)
	KeyID() string
}

type razorpayClient struct {
	client *razorpay.Client
	keyID  string
}

// NewRazorpay wraps the Razorpay SDK client.
func NewRazorpay(keyID, keySecret string) Client {
	return &razorpayClient{
		client: razorpay.NewClient(keyID, keySecret),
		keyID:  keyID,
	}
}

func (r *razorpayClient) KeyID() string {
	return r.keyID
}

// CreateOrder creates one gateway order for the checkout total. The amount is
// converted to paise; Razorpay rejects fractional amounts.
func (r *razorpayClient) CreateOrder(_ context.Context, amount decimal.Decimal, currency, receipt string) (*Order, error) {
	paise := amount.Mul(decimal.NewFromInt(100)).IntPart()
	if paise <= 0 {
		return nil, fmt.Errorf("gateway order amount must be positive, got %s", amount)
	}

	data := map[string]interface{}{
		"amount":   paise,
		"currency": currency,
		"receipt":  receipt,
	}
	body, err := r.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay order create: %w", err)
	}

	id, ok := body["id"].(string)
	if !ok || id == "" {
		return nil, fmt.Errorf("razorpay order create: response missing order id")
	}

	return &Order{
		ID:       id,
		Amount:   paise,
		Currency: currency,
		Receipt:  receipt,
	}, nil
}
