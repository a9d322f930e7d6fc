package pincode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var pincodeRe = regexp.MustCompile(`^[1-9][0-9]{5}$`)

// Valid reports whether pin looks like an Indian pincode.
func Valid(pin string) bool {
	return pincodeRe.MatchString(pin)
}

// Serviceability is the answer for one pincode: whether the courier delivers
// there and the estimated time to delivery in days.
type Serviceability struct {
	Serviceable bool `json:"serviceable"`
	TTDDays     int  `json:"ttd_days"`
}

// Client queries the serviceability endpoint, caching answers in Redis since
// coverage changes rarely.
type Client struct {
	baseURL  string
	http     *http.Client
	cache    *redis.Client
	cacheTTL time.Duration
	log      *zap.Logger
}

func New(baseURL string, timeout, cacheTTL time.Duration, cache *redis.Client, log *zap.Logger) *Client {
	return &Client{
		baseURL:  baseURL,
		http:     &http.Client{Timeout: timeout},
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

type lookupResponse struct {
	Success bool `json:"success"`
	TTD     int  `json:"ttd"`
}

// Lookup returns serviceability for a pincode, from cache when possible.
func (c *Client) Lookup(ctx context.Context, pin string) (*Serviceability, error) {
	if !Valid(pin) {
		return nil, fmt.Errorf("invalid pincode %q", pin)
	}

	key := "pincode:" + pin
	if c.cache != nil {
		if cached, err := c.cache.Get(ctx, key).Result(); err == nil {
			var s Serviceability
			if err := json.Unmarshal([]byte(cached), &s); err == nil {
				return &s, nil
			}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/pincode?pincode="+pin, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pincode lookup: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pincode lookup: status %d: %s", resp.StatusCode, string(raw))
	}

	var out lookupResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("pincode lookup: decode: %w", err)
	}

	s := &Serviceability{Serviceable: out.Success, TTDDays: out.TTD}
	if c.cache != nil {
		if data, err := json.Marshal(s); err == nil {
			if err := c.cache.Set(ctx, key, data, c.cacheTTL).Err(); err != nil {
				c.log.Warn("pincode cache set failed", zap.String("pincode", pin), zap.Error(err))
			}
		}
	}
	return s, nil
}
