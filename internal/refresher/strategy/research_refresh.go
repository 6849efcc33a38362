package strategy

import (
	"context"
	"encoding/json"
	"fmt"

	"portfolio-tracker/internal/entity"
	"portfolio-tracker/internal/refresher/dto"
	"portfolio-tracker/internal/refresher/repository"
	"portfolio-tracker/internal/research"
	"portfolio-tracker/pkg/logger"
)

// ResearchRefreshStrategy rebuilds the full signal row for every tracked
// symbol: prices and closes from Yahoo, fundamentals and analyst data from
// Finnhub, headlines from the news feed, scores from the research engines.
type ResearchRefreshStrategy struct {
	logger       *logger.Logger
	universeRepo repository.UniverseRepository
	yahooRepo    repository.YahooFinanceRepository
	finnhubRepo  repository.FinnhubRepository
	newsRepo     repository.NewsFeedRepository
	signalRepo   repository.StockSignalRepository
}

// ResearchRefreshPayload tunes the chart request per job.
type ResearchRefreshPayload struct {
	DataRange    string `json:"data_range"`
	DataInterval string `json:"data_interval"`
}

// ResearchRefreshResult is the per-symbol outcome of one run.
type ResearchRefreshResult struct {
	Symbol    string  `json:"symbol"`
	Status    string  `json:"status"`
	Composite float64 `json:"composite,omitempty"`
	Errors    string  `json:"errors,omitempty"`
}

// researchPayloadData is the raw provider snapshot stored in the signal's
// JSONB column for debugging and the signal detail endpoint.
type researchPayloadData struct {
	High52Week    float64                  `json:"high_52_week"`
	Low52Week     float64                  `json:"low_52_week"`
	RSI           float64                  `json:"rsi"`
	SMA20         float64                  `json:"sma_20"`
	SMA50         float64                  `json:"sma_50"`
	Fundamentals  *dto.Fundamentals        `json:"fundamentals,omitempty"`
	Trend         *dto.RecommendationTrend `json:"recommendation_trend,omitempty"`
	TargetMean    float64                  `json:"target_mean,omitempty"`
	Headlines     int                      `json:"headlines"`
	SentimentHits int                      `json:"sentiment_hits"`
}

// NewResearchRefreshStrategy creates a new instance of ResearchRefreshStrategy.
func NewResearchRefreshStrategy(
	logger *logger.Logger,
	universeRepo repository.UniverseRepository,
	yahooRepo repository.YahooFinanceRepository,
	finnhubRepo repository.FinnhubRepository,
	newsRepo repository.NewsFeedRepository,
	signalRepo repository.StockSignalRepository,
) *ResearchRefreshStrategy {
	return &ResearchRefreshStrategy{
		logger:       logger,
		universeRepo: universeRepo,
		yahooRepo:    yahooRepo,
		finnhubRepo:  finnhubRepo,
		newsRepo:     newsRepo,
		signalRepo:   signalRepo,
	}
}

// GetType returns the job type this strategy handles.
func (s *ResearchRefreshStrategy) GetType() entity.JobType {
	return entity.JobTypeResearchRefresh
}

// Execute refreshes research for the full symbol universe. Missing provider
// data degrades the affected sub-score to neutral instead of failing the
// symbol; only a missing chart fails it.
func (s *ResearchRefreshStrategy) Execute(ctx context.Context, job *entity.RefreshJob) (string, error) {
	payload := ResearchRefreshPayload{DataRange: "1y", DataInterval: "1d"}
	if len(job.Payload) > 0 {
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			return FAILED, fmt.Errorf("failed to unmarshal job payload: %w", err)
		}
	}
	if payload.DataRange == "" {
		payload.DataRange = "1y"
	}
	if payload.DataInterval == "" {
		payload.DataInterval = "1d"
	}

	symbols, err := s.universeRepo.AllSymbols(ctx)
	if err != nil {
		return FAILED, fmt.Errorf("failed to resolve symbol universe: %w", err)
	}
	if len(symbols) == 0 {
		return SKIPPED, nil
	}

	results := make([]ResearchRefreshResult, 0, len(symbols))
	failed := 0
	for _, symbol := range symbols {
		result := ResearchRefreshResult{Symbol: symbol, Status: SUCCESS}

		signal, err := s.refreshSymbol(ctx, symbol, payload)
		if err != nil {
			s.logger.Error("Failed to refresh research", logger.ErrorField(err), logger.StringField("symbol", symbol))
			result.Status = FAILED
			result.Errors = err.Error()
			failed++
		} else {
			result.Composite = signal.CompositeScore
		}
		results = append(results, result)
	}

	output, err := json.Marshal(results)
	if err != nil {
		return FAILED, fmt.Errorf("failed to marshal results: %w", err)
	}
	if failed == len(symbols) {
		return string(output), fmt.Errorf("all %d symbols failed", failed)
	}
	return string(output), nil
}

func (s *ResearchRefreshStrategy) refreshSymbol(ctx context.Context, symbol string, payload ResearchRefreshPayload) (*entity.StockSignal, error) {
	chart, err := s.yahooRepo.GetChart(ctx, symbol, payload.DataRange, payload.DataInterval)
	if err != nil {
		return nil, fmt.Errorf("chart fetch failed: %w", err)
	}
	if chart.CurrentPrice <= 0 {
		return nil, fmt.Errorf("no current price for %s", symbol)
	}

	tech := research.EvaluateTechnicals(chart.Closes)

	fundamentals, err := s.finnhubRepo.GetFundamentals(ctx, symbol)
	if err != nil {
		s.logger.DebugContext(ctx, "No fundamentals, scoring neutral", logger.StringField("symbol", symbol))
		fundamentals = nil
	}
	fundamentalScore := 50.0
	if fundamentals != nil {
		fundamentalScore = research.ScoreFundamentals(research.FundamentalMetrics{
			NetMargin:      fundamentals.NetMargin,
			ReturnOnEquity: fundamentals.ReturnOnEquity,
			DebtToEquity:   fundamentals.DebtToEquity,
			CurrentRatio:   fundamentals.CurrentRatio,
			RevenueGrowth:  fundamentals.RevenueGrowth,
		})
	}

	trend, err := s.finnhubRepo.GetRecommendationTrend(ctx, symbol)
	if err != nil {
		s.logger.DebugContext(ctx, "No recommendation trend", logger.StringField("symbol", symbol))
		trend = nil
	}

	var targetUpside *float64
	if target, err := s.finnhubRepo.GetPriceTarget(ctx, symbol); err == nil && target.TargetMean > 0 {
		upside := (target.TargetMean - chart.CurrentPrice) / chart.CurrentPrice * 100
		targetUpside = &upside
	}

	analystScore := 50.0
	if trend != nil {
		analystScore = research.ScoreAnalyst(research.RecommendationTrend{
			StrongBuy:  trend.StrongBuy,
			Buy:        trend.Buy,
			Hold:       trend.Hold,
			Sell:       trend.Sell,
			StrongSell: trend.StrongSell,
		}, targetUpside)
	}

	headlines, err := s.newsRepo.GetHeadlines(ctx, symbol)
	if err != nil {
		headlines = nil
	}
	sentiment := research.ScoreSentiment(headlines)

	composite := research.CompositeScore(fundamentalScore, tech.Score, analystScore, sentiment.Score)
	conviction := research.ConvictionScore(fundamentalScore, analystScore, sentiment.Score)
	dip := research.DipScore(chart.CurrentPrice, chart.High52Week, chart.Low52Week, tech.RSI)

	data, err := json.Marshal(researchPayloadData{
		High52Week:    chart.High52Week,
		Low52Week:     chart.Low52Week,
		RSI:           tech.RSI,
		SMA20:         tech.SMA20,
		SMA50:         tech.SMA50,
		Fundamentals:  fundamentals,
		Trend:         trend,
		TargetMean:    targetMean(targetUpside, chart.CurrentPrice),
		Headlines:     len(headlines),
		SentimentHits: sentiment.Hits,
	})
	if err != nil {
		return nil, err
	}

	signal := &entity.StockSignal{
		Symbol:           symbol,
		CurrentPrice:     chart.CurrentPrice,
		PreviousClose:    chart.PreviousClose,
		CompositeScore:   composite,
		FundamentalScore: fundamentalScore,
		TechnicalScore:   tech.Score,
		AnalystScore:     analystScore,
		SentimentScore:   sentiment.Score,
		ConvictionScore:  conviction,
		DipScore:         dip,
		TechnicalBias:    string(tech.Bias),
		TargetUpside:     targetUpside,
		PrimarySignal:    primarySignal(tech, dip),
		VolatilityPct:    nonZeroPtr(tech.VolatilityPct),
		Data:             data,
	}
	if fundamentals != nil {
		signal.Beta = fundamentals.Beta
		signal.DebtToEquity = fundamentals.DebtToEquity
		signal.NetMargin = fundamentals.NetMargin
		signal.CurrentRatio = fundamentals.CurrentRatio
	}

	if err := s.signalRepo.Upsert(ctx, signal); err != nil {
		return nil, fmt.Errorf("signal upsert failed: %w", err)
	}
	return signal, nil
}

// primarySignal derives the display badge from the technical read. It is
// advisory only; the verdict engine never looks at it.
func primarySignal(tech research.TechnicalSnapshot, dip float64) string {
	switch {
	case tech.RSI > 0 && tech.RSI < 30 && dip >= 40:
		return "oversold_bounce"
	case tech.Bias == research.BiasBullish && tech.SMA20 > tech.SMA50 && tech.SMA50 > 0:
		return "golden_cross"
	case tech.Bias == research.BiasBearish && tech.SMA20 < tech.SMA50 && tech.SMA20 > 0:
		return "death_cross"
	default:
		return ""
	}
}

func targetMean(targetUpside *float64, price float64) float64 {
	if targetUpside == nil {
		return 0
	}
	return price * (1 + *targetUpside/100)
}

func nonZeroPtr(v float64) *float64 {
	if v == 0 {
		return nil
	}
	return &v
}
