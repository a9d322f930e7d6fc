package courier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// PaymentMode for a shipment. Checkout is always prepaid; pickups carry no
// payment at all.
const (
	PaymentModePrepaid = "Prepaid"
	PaymentModePickup  = "Pickup"
)

// Client talks to the courier's shipment-manifest and tracking APIs.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     *zap.Logger
}

func New(baseURL, token string, timeout time.Duration, log *zap.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// ShipmentRequest describes one package: who it goes to (or is picked up
// from), and the order it belongs to.
type ShipmentRequest struct {
	OrderRef    string `json:"order"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Line1       string `json:"add"`
	City        string `json:"city"`
	State       string `json:"state"`
	Pincode     string `json:"pin"`
	PaymentMode string `json:"payment_mode"`
	Reverse     bool   `json:"-"`
}

type Shipment struct {
	Waybill string
}

type createResponse struct {
	Success  bool `json:"success"`
	Packages []struct {
		Waybill string `json:"waybill"`
		Status  string `json:"status"`
		Remarks string `json:"remarks"`
	} `json:"packages"`
}

// CreateShipment manifests one shipment and returns its waybill. Reverse
// shipments (return pickups) use pickup mode on the same endpoint.
func (c *Client) CreateShipment(ctx context.Context, req ShipmentRequest) (*Shipment, error) {
	if req.Reverse {
		req.PaymentMode = PaymentModePickup
	} else if req.PaymentMode == "" {
		req.PaymentMode = PaymentModePrepaid
	}

	payload := map[string]interface{}{
		"shipments":       []ShipmentRequest{req},
		"pickup_location": map[string]string{"name": "warehouse"},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/cmu/create.json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Token "+c.token)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("courier create shipment: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("courier create shipment: status %d: %s", resp.StatusCode, string(raw))
	}

	var out createResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("courier create shipment: decode: %w", err)
	}
	if !out.Success || len(out.Packages) == 0 || out.Packages[0].Waybill == "" {
		remark := ""
		if len(out.Packages) > 0 {
			remark = out.Packages[0].Remarks
		}
		return nil, fmt.Errorf("courier rejected shipment: %s", remark)
	}

	c.log.Info("shipment manifested",
		zap.String("order_ref", req.OrderRef),
		zap.String("waybill", out.Packages[0].Waybill),
		zap.Bool("reverse", req.Reverse),
	)
	return &Shipment{Waybill: out.Packages[0].Waybill}, nil
}

// TrackingStatus is the latest shipment event.
type TrackingStatus struct {
	Status      string
	LastEventAt time.Time
}

func (t *TrackingStatus) Delivered() bool {
	return t.Status == "Delivered"
}

type trackResponse struct {
	ShipmentData []struct {
		Shipment struct {
			Status struct {
				Status         string `json:"Status"`
				StatusDateTime string `json:"StatusDateTime"`
			} `json:"Status"`
		} `json:"Shipment"`
	} `json:"ShipmentData"`
}

// Track fetches the current status for a waybill.
func (c *Client) Track(ctx context.Context, waybill string) (*TrackingStatus, error) {
	u := c.baseURL + "/api/v1/packages/json?waybill=" + url.QueryEscape(waybill)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Token "+c.token)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("courier track: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("courier track: status %d: %s", resp.StatusCode, string(raw))
	}

	var out trackResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("courier track: decode: %w", err)
	}
	if len(out.ShipmentData) == 0 {
		return nil, fmt.Errorf("courier track: no shipment data for waybill %s", waybill)
	}

	status := out.ShipmentData[0].Shipment.Status
	ts, err := time.Parse(time.RFC3339, status.StatusDateTime)
	if err != nil {
		// Some tracking events come without a timezone suffix.
		ts, err = time.Parse("2006-01-02T15:04:05", status.StatusDateTime)
		if err != nil {
			return nil, fmt.Errorf("courier track: bad status timestamp %q", status.StatusDateTime)
		}
	}

	return &TrackingStatus{Status: status.Status, LastEventAt: ts}, nil
}
