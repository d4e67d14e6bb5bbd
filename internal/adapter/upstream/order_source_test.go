package upstream

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSource(t *testing.T, handler http.HandlerFunc) *OrderSource {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewOrderSource(srv.URL+"/", "tok", time.Second, nil, zerolog.New(io.Discard))
}

func TestFetchOrder_Success(t *testing.T) {
	owner := uuid.New()
	source := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/owners/"+owner.String()+"/orders/A%2F1", r.URL.EscapedPath())
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"order_id":"A/1","order_number":"#1001","currency":"INR","subtotal":4200,"total":5000,
			"shipping_address":{"line1":"12 MG Road","city":"Pune","postal_code":"411001","country":"IN"}}`))
	})

	order, err := source.FetchOrder(context.Background(), owner, "A/1")
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, "#1001", order.OrderNumber)
	assert.Equal(t, int64(4200), order.Subtotal)
	assert.Equal(t, int64(5000), order.Total)
	require.NotNil(t, order.ShippingAddress)
	assert.Equal(t, "Pune", order.ShippingAddress.City)
}

func TestFetchOrder_NotFound(t *testing.T) {
	source := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	order, err := source.FetchOrder(context.Background(), uuid.New(), "missing")
	require.NoError(t, err)
	assert.Nil(t, order)
}

func TestFetchOrder_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusBadGateway) }},
		{"bad json", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte(`{"subtotal":`)) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := newTestSource(t, tt.handler)
			_, err := source.FetchOrder(context.Background(), uuid.New(), "1")
			assert.Error(t, err)
		})
	}
}

func TestFetchOrder_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	source := NewOrderSource(srv.URL, "", time.Second, nil, zerolog.New(io.Discard))

	_, err := source.FetchOrder(context.Background(), uuid.New(), "1")
	assert.Error(t, err)
}
