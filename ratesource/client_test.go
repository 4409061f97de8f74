package ratesource

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rustyeddy/lotsize/market"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func latestServer(t *testing.T, status int, body any) (*httptest.Server, *int32) {
	t.Helper()
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, "/test-key/latest/USD", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(server.Close)
	return server, &hits
}

func TestNewClient(t *testing.T) {
	client := NewClient("", "key")
	assert.Equal(t, DefaultBaseURL, client.http.BaseURL)
	assert.Equal(t, "key", client.apiKey)
	assert.NotNil(t, client.log)

	client = NewClient("http://localhost", "key", WithGoldPrice(2000), WithTimeout(time.Second))
	assert.Equal(t, "http://localhost", client.http.BaseURL)
	assert.Equal(t, 2000.0, client.goldPrice)
}

func TestGetRates_Success(t *testing.T) {
	server, _ := latestServer(t, http.StatusOK, latestResponse{
		Result:             "success",
		BaseCode:           "USD",
		TimeLastUpdateUnix: 1700000000,
		ConversionRates: map[string]float64{
			"USD": 1,
			"EUR": 0.92,
			"JPY": 150,
		},
	})

	client := NewClient(server.URL, "test-key", WithGoldPrice(1950.25))
	table, err := client.GetRates(context.Background(), market.USD)
	require.NoError(t, err)

	assert.Equal(t, time.Unix(1700000000, 0).UTC(), table.AsOf())

	eur, err := table.Rate("EUR")
	require.NoError(t, err)
	assert.Equal(t, 0.92, eur)

	gold, err := table.GoldPrice()
	require.NoError(t, err)
	assert.Equal(t, 1950.25, gold)
}

func TestGetRates_ProviderGold(t *testing.T) {
	server, _ := latestServer(t, http.StatusOK, latestResponse{
		Result:          "success",
		BaseCode:        "USD",
		ConversionRates: map[string]float64{"EUR": 0.92, "XAU": 0.0005},
	})

	client := NewClient(server.URL, "test-key", WithGoldPrice(1950.25))
	table, err := client.GetRates(context.Background(), market.USD)
	require.NoError(t, err)

	gold, err := table.GoldPrice()
	require.NoError(t, err)
	assert.InDelta(t, 2000.0, gold, 1e-9)
}

func TestGetRates_NoGoldPrice(t *testing.T) {
	server, _ := latestServer(t, http.StatusOK, latestResponse{
		Result:          "success",
		BaseCode:        "USD",
		ConversionRates: map[string]float64{"EUR": 0.92},
	})

	client := NewClient(server.URL, "test-key")
	table, err := client.GetRates(context.Background(), market.USD)
	require.NoError(t, err)
	assert.False(t, table.Has(market.XAU))
}

func TestGetRates_APIError(t *testing.T) {
	server, _ := latestServer(t, http.StatusForbidden, latestResponse{
		Result:    "error",
		ErrorType: "invalid-key",
	})

	client := NewClient(server.URL, "test-key")
	_, err := client.GetRates(context.Background(), market.USD)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	assert.Contains(t, err.Error(), "invalid-key")
}

func TestGetRates_ErrorResultWithOK(t *testing.T) {
	server, _ := latestServer(t, http.StatusOK, latestResponse{
		Result:    "error",
		ErrorType: "quota-reached",
	})

	client := NewClient(server.URL, "test-key")
	_, err := client.GetRates(context.Background(), market.USD)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota-reached")
}

func TestGetRates_BaseMismatch(t *testing.T) {
	server, _ := latestServer(t, http.StatusOK, latestResponse{
		Result:          "success",
		BaseCode:        "EUR",
		ConversionRates: map[string]float64{"USD": 1.08},
	})

	client := NewClient(server.URL, "test-key")
	_, err := client.GetRates(context.Background(), market.USD)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "got EUR")
}

func TestGetRates_EmptyRates(t *testing.T) {
	server, _ := latestServer(t, http.StatusOK, latestResponse{Result: "success", BaseCode: "USD"})

	client := NewClient(server.URL, "test-key")
	_, err := client.GetRates(context.Background(), market.USD)
	assert.Error(t, err)
}

func TestGetRates_SkipsBadCodes(t *testing.T) {
	server, _ := latestServer(t, http.StatusOK, latestResponse{
		Result:          "success",
		BaseCode:        "USD",
		ConversionRates: map[string]float64{"EUR": 0.92, "bogus": 3},
	})

	client := NewClient(server.URL, "test-key")
	table, err := client.GetRates(context.Background(), market.USD)
	require.NoError(t, err)
	assert.Equal(t, []market.Currency{"EUR"}, table.Codes())
}

func TestGetRates_SkipsUnusableRates(t *testing.T) {
	server, _ := latestServer(t, http.StatusOK, latestResponse{
		Result:   "success",
		BaseCode: "USD",
		ConversionRates: map[string]float64{
			"EUR": 0.92,
			"CAD": 0,
			"JPY": -150,
			"XAU": -0.0005,
		},
	})

	client := NewClient(server.URL, "test-key", WithGoldPrice(1950.25))
	table, err := client.GetRates(context.Background(), market.USD)
	require.NoError(t, err)

	assert.Equal(t, []market.Currency{"EUR", "XAU"}, table.Codes())
	gold, err := table.GoldPrice()
	require.NoError(t, err)
	assert.Equal(t, 1950.25, gold)
}

func TestGetRates_Retries(t *testing.T) {
	server, hits := latestServer(t, http.StatusServiceUnavailable, map[string]string{"result": "error"})

	client := NewClient(server.URL, "test-key", WithRetries(2, time.Millisecond))
	_, err := client.GetRates(context.Background(), market.USD)
	require.Error(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(hits))
}

func TestGetRates_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")
	_, err := client.GetRates(context.Background(), market.USD)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestGetRates_Rejects(t *testing.T) {
	t.Run("non USD base", func(t *testing.T) {
		client := NewClient("http://127.0.0.1:0", "test-key")
		_, err := client.GetRates(context.Background(), "EUR")
		assert.Error(t, err)
	})

	t.Run("missing key", func(t *testing.T) {
		client := NewClient("http://127.0.0.1:0", "")
		_, err := client.GetRates(context.Background(), market.USD)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "API key")
	})
}

func TestGetRates_ContextCanceled(t *testing.T) {
	server, _ := latestServer(t, http.StatusOK, latestResponse{Result: "success"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(server.URL, "test-key")
	_, err := client.GetRates(ctx, market.USD)
	assert.Error(t, err)
}
