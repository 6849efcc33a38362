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

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// YahooFinanceRepository fetches quote and chart data from the Yahoo Finance
// chart API.
type YahooFinanceRepository interface {
	GetQuote(ctx context.Context, symbol string) (*dto.Quote, error)
	GetChart(ctx context.Context, symbol, dataRange, interval string) (*dto.ChartData, error)
}

// NewYahooFinanceRepository creates a new Yahoo Finance repository. Responses
// are cached in memory and requests are rate limited per the configuration.
func NewYahooFinanceRepository(cfg *config.Config, log *logger.Logger) YahooFinanceRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.YahooFinance.MaxRequestPerMinute)
	cacheTTL, err := time.ParseDuration(cfg.YahooFinance.CacheTTL)
	if err != nil || cacheTTL <= 0 {
		cacheTTL = time.Minute
	}
	return &yahooFinanceRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
		chartCache:     cache.New(cacheTTL, 2*cacheTTL),
	}
}

type yahooFinanceRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
	chartCache     *cache.Cache
}

// GetQuote returns the latest price pair for the symbol from a 1-day chart.
func (r *yahooFinanceRepository) GetQuote(ctx context.Context, symbol string) (*dto.Quote, error) {
	chart, err := r.GetChart(ctx, symbol, "1d", "1d")
	if err != nil {
		return nil, err
	}
	return &dto.Quote{
		Symbol:        chart.Symbol,
		Price:         chart.CurrentPrice,
		PreviousClose: chart.PreviousClose,
	}, nil
}

// GetChart fetches a daily close series for the symbol.
func (r *yahooFinanceRepository) GetChart(ctx context.Context, symbol, dataRange, interval string) (*dto.ChartData, error) {
	cacheKey := fmt.Sprintf("chart:%s:%s:%s", symbol, dataRange, interval)
	if cached, found := r.chartCache.Get(cacheKey); found {
		return cached.(*dto.ChartData), nil
	}

	url := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=%s", r.cfg.YahooFinance.BaseURL, symbol, dataRange, interval)
	body, err := r.sendRequest(ctx, url)
	if err != nil {
		return nil, err
	}

	var response dto.YahooChartResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to decode chart response for %s: %w", symbol, err)
	}
	if response.Chart.Error != nil {
		return nil, fmt.Errorf("chart API error for %s: %s", symbol, response.Chart.Error.Description)
	}
	if len(response.Chart.Result) == 0 {
		return nil, fmt.Errorf("no chart data for %s", symbol)
	}

	result := response.Chart.Result[0]
	chart := &dto.ChartData{
		Symbol:        result.Meta.Symbol,
		CurrentPrice:  result.Meta.RegularMarketPrice,
		PreviousClose: result.Meta.ChartPreviousClose,
		High52Week:    result.Meta.FiftyTwoWeekHigh,
		Low52Week:     result.Meta.FiftyTwoWeekLow,
	}
	if len(result.Indicators.Quote) > 0 {
		for _, close := range result.Indicators.Quote[0].Close {
			if close != nil {
				chart.Closes = append(chart.Closes, *close)
			}
		}
	}

	r.chartCache.Set(cacheKey, chart, cache.DefaultExpiration)
	return chart, nil
}

func (r *yahooFinanceRepository) sendRequest(ctx context.Context, url string) ([]byte, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		r.log.ErrorContext(ctx, "Failed to wait for request limit", logger.ErrorField(err), logger.StringField("url", url))
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.log.ErrorContext(ctx, "Failed to send request to Yahoo Finance", logger.ErrorField(err), logger.StringField("url", url))
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.log.ErrorContext(ctx, "Received non-OK response from Yahoo Finance", logger.IntField("status_code", resp.StatusCode), logger.StringField("url", url))
		return nil, fmt.Errorf("yahoo finance returned status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
