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

// PolygonRepository fetches previous-close aggregates from the Polygon API.
// It backs up the Yahoo quote path when the chart API has no data.
type PolygonRepository interface {
	GetPreviousClose(ctx context.Context, symbol string) (*dto.Quote, error)
}

// NewPolygonRepository creates a new Polygon repository.
func NewPolygonRepository(cfg *config.Config, log *logger.Logger) PolygonRepository {
	return &polygonRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type polygonRepository struct {
	cfg        *config.Config
	log        *logger.Logger
	httpClient *http.Client
}

func (r *polygonRepository) GetPreviousClose(ctx context.Context, symbol string) (*dto.Quote, error) {
	url := fmt.Sprintf("%s/v2/aggs/ticker/%s/prev?apiKey=%s", r.cfg.Polygon.BaseURL, symbol, r.cfg.Polygon.APIKey)

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
			return fmt.Errorf("polygon returned status %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("polygon returned status %d", resp.StatusCode))
		}

		body, err = io.ReadAll(resp.Body)
		return err
	}

	backoffStrategy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(r.cfg.Polygon.MaxRetries)),
		ctx,
	)
	if err := backoff.Retry(operation, backoffStrategy); err != nil {
		r.log.ErrorContext(ctx, "Polygon request failed", logger.ErrorField(err), logger.StringField("symbol", symbol))
		return nil, err
	}

	var response dto.PolygonPrevCloseResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to decode previous close response for %s: %w", symbol, err)
	}
	if len(response.Results) == 0 {
		return nil, fmt.Errorf("no previous close data for %s", symbol)
	}

	// Polygon only serves the previous session, so both fields carry the same
	// close; callers treat it as a stale-but-usable quote.
	return &dto.Quote{
		Symbol:        symbol,
		Price:         response.Results[0].Close,
		PreviousClose: response.Results[0].Close,
	}, nil
}
