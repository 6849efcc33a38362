package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"portfolio-tracker/internal/refresher/config"
	"portfolio-tracker/internal/refresher/dto"
	"portfolio-tracker/pkg/logger"

	"github.com/cenkalti/backoff/v4"
)

// FinnhubRepository fetches fundamentals, analyst recommendations and price
// targets from the Finnhub API.
type FinnhubRepository interface {
	GetFundamentals(ctx context.Context, symbol string) (*dto.Fundamentals, error)
	GetRecommendationTrend(ctx context.Context, symbol string) (*dto.RecommendationTrend, error)
	GetPriceTarget(ctx context.Context, symbol string) (*dto.PriceTarget, error)
}

// NewFinnhubRepository creates a new Finnhub repository.
func NewFinnhubRepository(cfg *config.Config, log *logger.Logger) FinnhubRepository {
	return &finnhubRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type finnhubRepository struct {
	cfg        *config.Config
	log        *logger.Logger
	httpClient *http.Client
}

func (r *finnhubRepository) GetFundamentals(ctx context.Context, symbol string) (*dto.Fundamentals, error) {
	url := fmt.Sprintf("%s/stock/metric?symbol=%s&metric=all&token=%s", r.cfg.Finnhub.BaseURL, symbol, r.cfg.Finnhub.APIKey)
	body, err := r.sendRequest(ctx, url)
	if err != nil {
		return nil, err
	}

	var response dto.FinnhubMetricResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to decode metric response for %s: %w", symbol, err)
	}

	return &dto.Fundamentals{
		Beta:           response.Metric.Beta,
		NetMargin:      response.Metric.NetProfitMarginTTM,
		ReturnOnEquity: response.Metric.RoeTTM,
		DebtToEquity:   response.Metric.TotalDebtToEquityQuarterly,
		CurrentRatio:   response.Metric.CurrentRatioQuarterly,
		RevenueGrowth:  response.Metric.RevenueGrowthTTMYoy,
	}, nil
}

// GetRecommendationTrend returns the most recent monthly rating distribution.
func (r *finnhubRepository) GetRecommendationTrend(ctx context.Context, symbol string) (*dto.RecommendationTrend, error) {
	url := fmt.Sprintf("%s/stock/recommendation?symbol=%s&token=%s", r.cfg.Finnhub.BaseURL, symbol, r.cfg.Finnhub.APIKey)
	body, err := r.sendRequest(ctx, url)
	if err != nil {
		return nil, err
	}

	var entries []dto.FinnhubRecommendationEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode recommendation response for %s: %w", symbol, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no recommendation data for %s", symbol)
	}

	// The API returns newest period first.
	latest := entries[0]
	return &dto.RecommendationTrend{
		StrongBuy:  latest.StrongBuy,
		Buy:        latest.Buy,
		Hold:       latest.Hold,
		Sell:       latest.Sell,
		StrongSell: latest.StrongSell,
	}, nil
}

func (r *finnhubRepository) GetPriceTarget(ctx context.Context, symbol string) (*dto.PriceTarget, error) {
	url := fmt.Sprintf("%s/stock/price-target?symbol=%s&token=%s", r.cfg.Finnhub.BaseURL, symbol, r.cfg.Finnhub.APIKey)
	body, err := r.sendRequest(ctx, url)
	if err != nil {
		return nil, err
	}

	var response dto.FinnhubPriceTargetResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to decode price target response for %s: %w", symbol, err)
	}
	if response.TargetMean <= 0 {
		return nil, fmt.Errorf("no price target for %s", symbol)
	}

	return &dto.PriceTarget{TargetMean: response.TargetMean}, nil
}

// sendRequest issues a GET with exponential-backoff retries on transport
// errors and non-OK statuses.
func (r *finnhubRepository) sendRequest(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := r.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("finnhub returned status %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("finnhub returned status %d", resp.StatusCode))
		}

		body, err = io.ReadAll(resp.Body)
		return err
	}

	backoffStrategy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(r.cfg.Finnhub.MaxRetries)),
		ctx,
	)
	if err := backoff.Retry(operation, backoffStrategy); err != nil {
		r.log.ErrorContext(ctx, "Finnhub request failed", logger.ErrorField(err), logger.StringField("url", url))
		return nil, err
	}
	return body, nil
}
