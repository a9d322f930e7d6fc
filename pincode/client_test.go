package pincode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestValid(t *testing.T) {
	valid := []string{"560001", "110001", "797112"}
	for _, pin := range valid {
		assert.True(t, Valid(pin), pin)
	}

	invalid := []string{"", "56001", "5600011", "060001", "56000a", "ABCDEF"}
	for _, pin := range invalid {
		assert.False(t, Valid(pin), pin)
	}
}

func TestLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/pincode", r.URL.Path)
		switch r.URL.Query().Get("pincode") {
		case "560001":
			w.Write([]byte(`{"success": true, "ttd": 3}`))
		default:
			w.Write([]byte(`{"success": false}`))
		}
	}))
	defer srv.Close()

	client := New(srv.URL, time.Second, time.Minute, nil, zap.NewNop())

	s, err := client.Lookup(context.Background(), "560001")
	require.NoError(t, err)
	assert.True(t, s.Serviceable)
	assert.Equal(t, 3, s.TTDDays)

	s, err = client.Lookup(context.Background(), "797112")
	require.NoError(t, err)
	assert.False(t, s.Serviceable)

	_, err = client.Lookup(context.Background(), "not-a-pin")
	assert.Error(t, err)
}
