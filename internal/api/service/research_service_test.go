package service

import (
	"context"
	"testing"

	"portfolio-tracker/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSignalRepo struct {
	signal *entity.StockSignal
	err    error
}

func (s *stubSignalRepo) FindBySymbol(_ context.Context, _ string) (*entity.StockSignal, error) {
	return s.signal, s.err
}

func (s *stubSignalRepo) FindBySymbols(_ context.Context, _ []string) ([]entity.StockSignal, error) {
	if s.signal == nil {
		return nil, s.err
	}
	return []entity.StockSignal{*s.signal}, s.err
}

func floatPtr(v float64) *float64 {
	return &v
}

func TestGetResearch_TruncatesReasonsToFour(t *testing.T) {
	// A strong good-entry signal fires all five reason rules.
	repo := &stubSignalRepo{signal: &entity.StockSignal{
		Symbol:           "AAPL",
		CurrentPrice:     180,
		CompositeScore:   75,
		FundamentalScore: 70,
		TechnicalScore:   60,
		ConvictionScore:  70,
		DipScore:         45,
		TechnicalBias:    "BULLISH",
		TargetUpside:     floatPtr(20),
	}}
	svc := NewResearchService(repo, testLogger(t))

	resp, err := svc.GetResearch(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, "good-entry", resp.Verdict.Verdict)
	assert.Equal(t, "high", resp.Verdict.Confidence)
	assert.Len(t, resp.Verdict.Reasons, 4)
	assert.NotContains(t, resp.Verdict.Reasons, "High long-term quality",
		"the fifth reason must be dropped by display truncation")
}

func TestGetResearch_InsufficientDataSignal(t *testing.T) {
	repo := &stubSignalRepo{signal: &entity.StockSignal{
		Symbol:       "NEWCO",
		CurrentPrice: 12,
		// CompositeScore zero: the refresh job has not scored this yet.
	}}
	svc := NewResearchService(repo, testLogger(t))

	resp, err := svc.GetResearch(context.Background(), "NEWCO")
	require.NoError(t, err)
	assert.Equal(t, "insufficient-data", resp.Verdict.Verdict)
	assert.Equal(t, "low", resp.Verdict.Confidence)
}

func TestGetResearch_RiskFromSignalFundamentals(t *testing.T) {
	repo := &stubSignalRepo{signal: &entity.StockSignal{
		Symbol:         "TSLA",
		CurrentPrice:   250,
		CompositeScore: 55,
		FundamentalScore: 60,
		Beta:           floatPtr(1.8),
	}}
	svc := NewResearchService(repo, testLogger(t))

	resp, err := svc.GetResearch(context.Background(), "TSLA")
	require.NoError(t, err)
	assert.Equal(t, "high", resp.Risk.RiskLevel)
	assert.Equal(t, []string{"High beta, volatility well above market"}, resp.Risk.RiskFactors)
}

func TestGetResearch_PrimarySignalPassesThrough(t *testing.T) {
	repo := &stubSignalRepo{signal: &entity.StockSignal{
		Symbol:         "NVDA",
		CurrentPrice:   500,
		CompositeScore: 65,
		PrimarySignal:  "golden_cross",
	}}
	svc := NewResearchService(repo, testLogger(t))

	resp, err := svc.GetResearch(context.Background(), "NVDA")
	require.NoError(t, err)
	assert.Equal(t, "golden_cross", resp.PrimarySignal)
}
