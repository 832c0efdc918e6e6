package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"phoneprices/scraper/internal/config"
	"phoneprices/scraper/internal/domain"

	"github.com/stretchr/testify/require"
)

func testShopConfig(baseURL string) config.ShopConfig {
	return config.ShopConfig{
		BaseURL:              baseURL,
		SearchPath:           "/search",
		Country:              "de",
		Language:             "de",
		CurrencySymbol:       "€",
		Timeout:              5,
		MaxRetries:           0,
		MaxRequestsPerSecond: 100,
		UserAgent:            "test-agent",
	}
}

func TestLookupPrices(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.RequestURI()
		w.Write([]byte(`<html><body><span>199,00 €</span><span>249,99 €</span></body></html>`))
	}))
	defer server.Close()

	c := NewShopClient(testShopConfig(server.URL), nil)

	result, err := c.LookupPrices(context.Background(), domain.Device{ModelName: "Pixel 4"})
	require.NoError(t, err)
	require.Equal(t, "/search?q=Pixel+4&tbm=shop&gl=de&hl=de", gotPath)
	require.Len(t, result.Prices, 2)

	lo, ok := result.Min()
	require.True(t, ok)
	require.Equal(t, 199.00, lo)
}

func TestLookupPricesHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := NewShopClient(testShopConfig(server.URL), nil)

	_, err := c.LookupPrices(context.Background(), domain.Device{ModelName: "Pixel 4"})
	require.Error(t, err)
}

func TestLookupPricesEmptyPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>Keine Ergebnisse</p></body></html>`))
	}))
	defer server.Close()

	c := NewShopClient(testShopConfig(server.URL), nil)

	result, err := c.LookupPrices(context.Background(), domain.Device{ModelName: "PhoneB"})
	require.NoError(t, err)
	require.Empty(t, result.Prices)
	require.False(t, result.FetchFailed)
}

func TestLookupPricesOutlierTrimming(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>
			<span>400,00 €</span><span>420,00 €</span><span>20,00 €</span><span>410,00 €</span>
		</body></html>`))
	}))
	defer server.Close()

	cfg := testShopConfig(server.URL)
	cfg.OutlierDeviation = 0.5
	c := NewShopClient(cfg, nil)

	result, err := c.LookupPrices(context.Background(), domain.Device{ModelName: "PhoneA"})
	require.NoError(t, err)
	require.Len(t, result.Prices, 3)

	lo, ok := result.Min()
	require.True(t, ok)
	require.Equal(t, 400.00, lo)
}

func TestLookupPricesRespectsRobots(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			w.Write([]byte("User-agent: *\nDisallow: /search\n"))
			return
		}
		w.Write([]byte(`<html><body><span>50,00 €</span></body></html>`))
	}))
	defer server.Close()

	cfg := testShopConfig(server.URL)
	cfg.RespectRobots = true
	c := NewShopClient(cfg, nil)

	_, err := c.LookupPrices(context.Background(), domain.Device{ModelName: "PhoneA"})
	require.ErrorContains(t, err, "robots.txt")
}
