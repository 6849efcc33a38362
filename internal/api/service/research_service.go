package service

import (
	"context"
	"encoding/json"

	"portfolio-tracker/internal/api/dto"
	"portfolio-tracker/internal/api/repository"
	"portfolio-tracker/internal/entity"
	"portfolio-tracker/internal/research"
	"portfolio-tracker/pkg/logger"
)

// maxDisplayReasons bounds the verdict reason list shown to the user. The
// engine returns reasons in rule order, so truncation keeps the strongest.
const maxDisplayReasons = 4

// ResearchService runs the scoring engines over stored signals.
type ResearchService interface {
	GetResearch(ctx context.Context, symbol string) (*dto.ResearchResponse, error)
	GetSignal(ctx context.Context, symbol string) (*dto.SignalResponse, error)
}

// NewResearchService creates a new research service.
func NewResearchService(signalRepo repository.StockSignalRepository, logger *logger.Logger) ResearchService {
	return &researchService{signalRepo: signalRepo, logger: logger}
}

type researchService struct {
	signalRepo repository.StockSignalRepository
	logger     *logger.Logger
}

// GetResearch evaluates the verdict and risk engines against the latest
// stored signal for the symbol.
func (s *researchService) GetResearch(ctx context.Context, symbol string) (*dto.ResearchResponse, error) {
	signal, err := s.signalRepo.FindBySymbol(ctx, symbol)
	if err != nil {
		return nil, err
	}

	recommendation := recommendationFromSignal(signal)
	verdict := research.EvaluateVerdict(recommendation)

	riskInput := research.RiskInput{
		Beta:         signal.Beta,
		DebtToEquity: signal.DebtToEquity,
		NetMargin:    signal.NetMargin,
		CurrentRatio: signal.CurrentRatio,
	}
	risk := research.EvaluateRisk(riskInput, signal.VolatilityPct)

	reasons := verdict.Reasons
	if len(reasons) > maxDisplayReasons {
		reasons = reasons[:maxDisplayReasons]
	}

	return &dto.ResearchResponse{
		Symbol:       signal.Symbol,
		CurrentPrice: signal.CurrentPrice,
		Scores:       scoresFromSignal(signal),
		Verdict: dto.VerdictDTO{
			Verdict:     string(verdict.Verdict),
			Confidence:  string(verdict.Confidence),
			Title:       verdict.Title,
			Description: verdict.Description,
			Reasons:     reasons,
		},
		Risk: dto.RiskDTO{
			RiskLevel:   string(risk.RiskLevel),
			RiskFactors: risk.RiskFactors,
		},
		PrimarySignal: signal.PrimarySignal,
		UpdatedAt:     signal.UpdatedAt,
	}, nil
}

func (s *researchService) GetSignal(ctx context.Context, symbol string) (*dto.SignalResponse, error) {
	signal, err := s.signalRepo.FindBySymbol(ctx, symbol)
	if err != nil {
		return nil, err
	}

	return &dto.SignalResponse{
		Symbol:        signal.Symbol,
		CurrentPrice:  signal.CurrentPrice,
		PreviousClose: signal.PreviousClose,
		Scores:        scoresFromSignal(signal),
		Beta:          signal.Beta,
		DebtToEquity:  signal.DebtToEquity,
		NetMargin:     signal.NetMargin,
		CurrentRatio:  signal.CurrentRatio,
		VolatilityPct: signal.VolatilityPct,
		Data:          json.RawMessage(signal.Data),
		UpdatedAt:     signal.UpdatedAt,
	}, nil
}

func recommendationFromSignal(signal *entity.StockSignal) research.Recommendation {
	rec := research.Recommendation{
		Symbol:           signal.Symbol,
		CurrentPrice:     signal.CurrentPrice,
		CompositeScore:   signal.CompositeScore,
		FundamentalScore: signal.FundamentalScore,
		TechnicalScore:   signal.TechnicalScore,
		AnalystScore:     signal.AnalystScore,
		ConvictionScore:  signal.ConvictionScore,
		DipScore:         signal.DipScore,
		TechnicalBias:    research.TechnicalBias(signal.TechnicalBias),
		TargetUpside:     signal.TargetUpside,
	}
	if signal.PrimarySignal != "" {
		rec.PrimarySignal = &research.Signal{Type: signal.PrimarySignal}
	}
	return rec
}

func scoresFromSignal(signal *entity.StockSignal) dto.ScoresDTO {
	return dto.ScoresDTO{
		Composite:    signal.CompositeScore,
		Fundamental:  signal.FundamentalScore,
		Technical:    signal.TechnicalScore,
		Analyst:      signal.AnalystScore,
		Sentiment:    signal.SentimentScore,
		Conviction:   signal.ConvictionScore,
		Dip:          signal.DipScore,
		Bias:         signal.TechnicalBias,
		TargetUpside: signal.TargetUpside,
	}
}
