package feeds

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joblinours/cyberdash/internal/config"
	"github.com/joblinours/cyberdash/internal/models"
)

func TestMarketAdapter_CryptoPriceAndHistory(t *testing.T) {
	cg := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/simple/price"):
			assert.Equal(t, "bitcoin", r.URL.Query().Get("ids"))
			assert.Equal(t, "eur", r.URL.Query().Get("vs_currencies"))
			fmt.Fprint(w, `{"bitcoin":{"eur":52000.5}}`)
		case strings.HasPrefix(r.URL.Path, "/coins/bitcoin/market_chart"):
			assert.Equal(t, "30", r.URL.Query().Get("days"))
			fmt.Fprint(w, `{"prices":[[1748822400000,50000],[1748908800000,51000],[1748995200000,52000]]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer cg.Close()

	a := NewMarketAdapter([]config.AssetSpec{
		{Symbol: "BTC", Name: "Bitcoin", Type: "crypto", Currency: "USD"},
	}, cg.URL, "http://unused.invalid")

	result, err := a.Fetch(context.Background())
	require.NoError(t, err)

	assets := result.([]models.MarketAsset)
	require.Len(t, assets, 1)
	require.NotNil(t, assets[0].Price)
	assert.Equal(t, 52000.5, *assets[0].Price)
	assert.Equal(t, "EUR", assets[0].Currency)
	require.Len(t, assets[0].History, 3)
	assert.Equal(t, "2025-06-02", assets[0].History[0].Date)
	assert.Equal(t, 50000.0, assets[0].History[0].Price)
}

func TestMarketAdapter_UnknownCryptoSymbolSkipped(t *testing.T) {
	a := NewMarketAdapter([]config.AssetSpec{
		{Symbol: "DOGE", Name: "Dogecoin", Type: "crypto"},
	}, "http://unused.invalid", "http://unused.invalid")

	result, err := a.Fetch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, result.([]models.MarketAsset))
}

func TestMarketAdapter_StockChart(t *testing.T) {
	quotes := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/v8/finance/chart/AAPL")
		fmt.Fprint(w, `{"chart":{"result":[{
			"meta":{"regularMarketPrice":187.3},
			"timestamp":[1748822400,1748908800,1748995200],
			"indicators":{"quote":[{"close":[185.0,null,187.3]}]}
		}]}}`)
	}))
	defer quotes.Close()

	a := NewMarketAdapter([]config.AssetSpec{
		{Symbol: "AAPL", Name: "Apple", Type: "stock", Currency: "USD"},
	}, "http://unused.invalid", quotes.URL)

	result, err := a.Fetch(context.Background())
	require.NoError(t, err)

	assets := result.([]models.MarketAsset)
	require.Len(t, assets, 1)
	require.NotNil(t, assets[0].Price)
	assert.Equal(t, 187.3, *assets[0].Price)
	assert.Equal(t, "USD", assets[0].Currency)
	// Null close dropped.
	require.Len(t, assets[0].History, 2)
	assert.Equal(t, 185.0, assets[0].History[0].Price)
}

func TestMarketAdapter_FailingStockKeptWithNilPrice(t *testing.T) {
	quotes := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer quotes.Close()

	a := NewMarketAdapter([]config.AssetSpec{
		{Symbol: "MSFT", Name: "Microsoft", Type: "stock", Currency: "USD"},
	}, "http://unused.invalid", quotes.URL)

	result, err := a.Fetch(context.Background())
	require.NoError(t, err)

	assets := result.([]models.MarketAsset)
	require.Len(t, assets, 1)
	assert.Nil(t, assets[0].Price)
	assert.Empty(t, assets[0].History)
	assert.NotNil(t, assets[0].History)
}

func TestDownsamplePairs_ThinsLongSeries(t *testing.T) {
	prices := make([][2]float64, 90)
	for i := range prices {
		prices[i] = [2]float64{float64(i), float64(i)}
	}

	out := downsamplePairs(prices)
	// step = 90/30 = 3, so indices 0,3,6,...,87.
	require.Len(t, out, 30)
	assert.Equal(t, 0.0, out[0][0])
	assert.Equal(t, 3.0, out[1][0])
}

func TestDownsamplePoints_ShortSeriesUntouched(t *testing.T) {
	points := []models.PricePoint{{Date: "2025-06-01", Price: 1}, {Date: "2025-06-02", Price: 2}}
	assert.Equal(t, points, downsamplePoints(points))
}
