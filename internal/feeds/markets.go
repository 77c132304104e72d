package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/joblinours/cyberdash/internal/config"
	"github.com/joblinours/cyberdash/internal/models"
)

const (
	marketTimeout   = 8 * time.Second
	historyMaxPts   = 30
	historyDateForm = "2006-01-02"
)

// coinGeckoIDs maps tracked crypto symbols to their CoinGecko identifiers.
// Symbols without an entry are skipped entirely.
var coinGeckoIDs = map[string]string{
	"BTC": "bitcoin",
	"ETH": "ethereum",
}

// MarketAdapter fetches current prices and one-month history for the
// configured assets. Crypto goes through CoinGecko in EUR, stocks and
// indices through a Yahoo-style chart API.
type MarketAdapter struct {
	assets       []config.AssetSpec
	cgBaseURL    string
	quoteBaseURL string
	client       *http.Client
}

// NewMarketAdapter creates an adapter over the configured asset list.
func NewMarketAdapter(assets []config.AssetSpec, cgBaseURL, quoteBaseURL string) *MarketAdapter {
	return &MarketAdapter{
		assets:       assets,
		cgBaseURL:    cgBaseURL,
		quoteBaseURL: quoteBaseURL,
		client:       newHTTPClient(marketTimeout),
	}
}

// Domain implements Adapter.
func (a *MarketAdapter) Domain() models.Domain { return models.DomainMarkets }

// Fetch resolves every configured asset. A failing upstream leaves that
// asset with a nil price and empty history rather than dropping it, except
// crypto symbols with no known CoinGecko ID, which are skipped.
func (a *MarketAdapter) Fetch(ctx context.Context) (any, error) {
	results := make([]models.MarketAsset, 0, len(a.assets))

	for _, spec := range a.assets {
		if spec.Type == "crypto" {
			asset, ok := a.fetchCrypto(ctx, spec)
			if !ok {
				continue
			}
			results = append(results, asset)
			continue
		}
		results = append(results, a.fetchQuote(ctx, spec))
	}
	return results, nil
}

type simplePriceResponse map[string]map[string]float64

type marketChartResponse struct {
	Prices [][2]float64 `json:"prices"`
}

func (a *MarketAdapter) fetchCrypto(ctx context.Context, spec config.AssetSpec) (models.MarketAsset, bool) {
	cgID, ok := coinGeckoIDs[strings.ToUpper(spec.Symbol)]
	if !ok {
		return models.MarketAsset{}, false
	}

	asset := models.MarketAsset{
		Symbol:   spec.Symbol,
		Name:     spec.Name,
		Type:     spec.Type,
		Currency: "EUR",
		History:  []models.PricePoint{},
	}

	priceURL := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=eur", a.cgBaseURL, url.QueryEscape(cgID))
	if body, err := getBody(ctx, a.client, priceURL); err == nil {
		var resp simplePriceResponse
		if json.Unmarshal(body, &resp) == nil {
			if eur, ok := resp[cgID]["eur"]; ok {
				asset.Price = &eur
			}
		}
	}

	chartURL := fmt.Sprintf("%s/coins/%s/market_chart?vs_currency=eur&days=30", a.cgBaseURL, url.PathEscape(cgID))
	if body, err := getBody(ctx, a.client, chartURL); err == nil {
		var resp marketChartResponse
		if json.Unmarshal(body, &resp) == nil {
			history := make([]models.PricePoint, 0, historyMaxPts)
			for _, p := range downsamplePairs(resp.Prices) {
				history = append(history, models.PricePoint{
					Date:  time.Unix(int64(p[0])/1000, 0).UTC().Format(historyDateForm),
					Price: p[1],
				})
			}
			asset.History = history
		}
	}
	return asset, true
}

// chartResponse mirrors the Yahoo v8 finance chart payload.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice *float64 `json:"regularMarketPrice"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
	} `json:"chart"`
}

func (a *MarketAdapter) fetchQuote(ctx context.Context, spec config.AssetSpec) models.MarketAsset {
	asset := models.MarketAsset{
		Symbol:   spec.Symbol,
		Name:     spec.Name,
		Type:     spec.Type,
		Currency: spec.Currency,
		History:  []models.PricePoint{},
	}

	chartURL := fmt.Sprintf("%s/v8/finance/chart/%s?range=1mo&interval=1d", a.quoteBaseURL, url.PathEscape(spec.Symbol))
	body, err := getBody(ctx, a.client, chartURL)
	if err != nil {
		return asset
	}
	var resp chartResponse
	if err := json.Unmarshal(body, &resp); err != nil || len(resp.Chart.Result) == 0 {
		return asset
	}
	result := resp.Chart.Result[0]

	if p := result.Meta.RegularMarketPrice; p != nil && !math.IsNaN(*p) {
		v := *p
		asset.Price = &v
	}
	if len(result.Indicators.Quote) == 0 {
		return asset
	}

	closes := result.Indicators.Quote[0].Close
	history := make([]models.PricePoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil || math.IsNaN(*closes[i]) {
			continue
		}
		history = append(history, models.PricePoint{
			Date:  time.Unix(ts, 0).UTC().Format(historyDateForm),
			Price: *closes[i],
		})
	}
	asset.History = downsamplePoints(history)
	return asset
}

// downsamplePairs thins a raw price series to roughly thirty points,
// always keeping the first.
func downsamplePairs(prices [][2]float64) [][2]float64 {
	step := len(prices) / historyMaxPts
	if step < 1 {
		step = 1
	}
	out := make([][2]float64, 0, historyMaxPts+1)
	for i := 0; i < len(prices); i += step {
		out = append(out, prices[i])
	}
	return out
}

func downsamplePoints(points []models.PricePoint) []models.PricePoint {
	if len(points) <= historyMaxPts {
		return points
	}
	step := len(points) / historyMaxPts
	if step < 1 {
		step = 1
	}
	out := make([]models.PricePoint, 0, historyMaxPts+1)
	for i := 0; i < len(points); i += step {
		out = append(out, points[i])
	}
	return out
}
