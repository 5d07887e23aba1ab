// Package marketdata defines the optional live market data interface and a
// best-effort, timeout-bounded bridge the orchestrator uses to call it.
package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/craneworks/crane-valuation/pkg/constants"
	"github.com/craneworks/crane-valuation/pkg/crane"
	"go.uber.org/zap"
)

// DefaultTimeout bounds a live fetch when the caller does not configure one.
const DefaultTimeout = constants.DefaultMarketFetchTimeoutSeconds * time.Second

// Provider fetches a live market summary for a manufacturer and model.
// Implementations must honor context cancellation.
type Provider interface {
	FetchMarketSummary(ctx context.Context, manufacturer, model string) (*crane.MarketSummary, error)
}

// HTTPProvider calls an external market intelligence endpoint that returns a
// JSON summary for a manufacturer/model query.
type HTTPProvider struct {
	baseURL string
	client  *http.Client
}

// NewHTTPProvider creates an HTTPProvider against the given base URL.
func NewHTTPProvider(baseURL string, timeout time.Duration) *HTTPProvider {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type summaryResponse struct {
	AveragePrice   float64 `json:"averagePrice"`
	PriceRangeLow  float64 `json:"priceRangeLow"`
	PriceRangeHigh float64 `json:"priceRangeHigh"`
	ListingCount   int     `json:"listingCount"`
}

// FetchMarketSummary issues the HTTP request and decodes the summary.
func (p *HTTPProvider) FetchMarketSummary(ctx context.Context, manufacturer, model string) (*crane.MarketSummary, error) {
	query := url.Values{}
	query.Set("manufacturer", manufacturer)
	query.Set("model", model)
	addr := fmt.Sprintf("%s?%s", p.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("build market summary request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch market summary: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("market summary endpoint returned status %d", res.StatusCode)
	}

	var body summaryResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode market summary: %w", err)
	}

	return &crane.MarketSummary{
		AveragePrice:   body.AveragePrice,
		PriceRangeLow:  body.PriceRangeLow,
		PriceRangeHigh: body.PriceRangeHigh,
		ListingCount:   body.ListingCount,
	}, nil
}

// FetchBestEffort bridges a provider call into the valuation pipeline's
// degrade-don't-fail semantics: the call is bounded by the timeout and any
// error or empty summary becomes a logged nil rather than a caller-visible
// failure.
func FetchBestEffort(ctx context.Context, logger *zap.Logger, provider Provider, manufacturer, model string, timeout time.Duration) *crane.MarketSummary {
	if provider == nil {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	summary, err := provider.FetchMarketSummary(fetchCtx, manufacturer, model)
	if err != nil {
		logger.Warn(fmt.Sprintf("market data unavailable for %s %s, proceeding with offline adjustments", manufacturer, model),
			zap.String("op", "marketdata.FetchBestEffort"),
			zap.Error(err),
		)
		return nil
	}
	if summary == nil || summary.AveragePrice <= 0 {
		logger.Debug("market data fetch returned no usable summary",
			zap.String("op", "marketdata.FetchBestEffort"),
		)
		return nil
	}
	return summary
}
