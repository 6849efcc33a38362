package research

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateRisk_HighBetaDominates(t *testing.T) {
	in := RiskInput{
		Beta:         floatPtr(1.8),
		DebtToEquity: floatPtr(0.5),
		NetMargin:    floatPtr(10),
		CurrentRatio: floatPtr(1.5),
	}

	result := EvaluateRisk(in, nil)
	assert.Equal(t, RiskHigh, result.RiskLevel)
	assert.Equal(t, []string{"High beta, volatility well above market"}, result.RiskFactors)
}

func TestEvaluateRisk_AllNilIsNeutral(t *testing.T) {
	result := EvaluateRisk(RiskInput{}, nil)
	assert.Equal(t, RiskModerate, result.RiskLevel)
	assert.Equal(t, []string{"Average risk profile"}, result.RiskFactors)
}

func TestEvaluateRisk_BetaThresholds(t *testing.T) {
	tests := []struct {
		name   string
		beta   float64
		level  RiskLevel
		factor string
	}{
		{name: "above 1.5", beta: 1.6, level: RiskHigh, factor: "High beta, volatility well above market"},
		{name: "above 1.2", beta: 1.3, level: RiskModerateHigh, factor: "Higher volatility than market"},
		{name: "below 0.7", beta: 0.5, level: RiskLow, factor: "Low beta, defensive stock"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EvaluateRisk(RiskInput{Beta: floatPtr(tt.beta)}, nil)
			assert.Equal(t, tt.level, result.RiskLevel)
			assert.Equal(t, []string{tt.factor}, result.RiskFactors)
		})
	}
}

func TestEvaluateRisk_NeutralBetaNoFactor(t *testing.T) {
	result := EvaluateRisk(RiskInput{Beta: floatPtr(1.0)}, nil)
	assert.Equal(t, RiskModerate, result.RiskLevel)
	assert.Equal(t, []string{"Average risk profile"}, result.RiskFactors)
}

func TestEvaluateRisk_LeverageEscalatesOnlyFromModerate(t *testing.T) {
	// From the moderate baseline, high leverage escalates.
	result := EvaluateRisk(RiskInput{DebtToEquity: floatPtr(2.5)}, nil)
	assert.Equal(t, RiskModerateHigh, result.RiskLevel)
	assert.Equal(t, []string{"High leverage"}, result.RiskFactors)

	// A beta-assigned low level is not raised by leverage alone.
	result = EvaluateRisk(RiskInput{Beta: floatPtr(0.5), DebtToEquity: floatPtr(2.5)}, nil)
	assert.Equal(t, RiskLow, result.RiskLevel)
	assert.Equal(t, []string{"Low beta, defensive stock", "High leverage"}, result.RiskFactors)
}

func TestEvaluateRisk_LowLeverageFactorOnly(t *testing.T) {
	result := EvaluateRisk(RiskInput{DebtToEquity: floatPtr(0.2)}, nil)
	assert.Equal(t, RiskModerate, result.RiskLevel)
	assert.Equal(t, []string{"Low leverage"}, result.RiskFactors)
}

func TestEvaluateRisk_NegativeMarginEscalates(t *testing.T) {
	// Raises from low as well: escalation is monotone, not moderate-gated.
	result := EvaluateRisk(RiskInput{Beta: floatPtr(0.5), NetMargin: floatPtr(-2)}, nil)
	assert.Equal(t, RiskModerateHigh, result.RiskLevel)
	assert.Equal(t, []string{"Low beta, defensive stock", "Negative margin (loss-making)"}, result.RiskFactors)

	// Never demotes an already-high level.
	result = EvaluateRisk(RiskInput{Beta: floatPtr(1.8), NetMargin: floatPtr(-2)}, nil)
	assert.Equal(t, RiskHigh, result.RiskLevel)
}

func TestEvaluateRisk_LowProfitabilityFactorOnly(t *testing.T) {
	result := EvaluateRisk(RiskInput{NetMargin: floatPtr(3)}, nil)
	assert.Equal(t, RiskModerate, result.RiskLevel)
	assert.Equal(t, []string{"Low profitability"}, result.RiskFactors)
}

func TestEvaluateRisk_VolatilityFactorOnly(t *testing.T) {
	result := EvaluateRisk(RiskInput{}, floatPtr(5.2))
	assert.Equal(t, RiskModerate, result.RiskLevel)
	assert.Equal(t, []string{"High daily volatility"}, result.RiskFactors)
}

func TestEvaluateRisk_LowLiquidityEscalates(t *testing.T) {
	result := EvaluateRisk(RiskInput{CurrentRatio: floatPtr(0.8)}, nil)
	assert.Equal(t, RiskModerateHigh, result.RiskLevel)
	assert.Equal(t, []string{"Low liquidity (current ratio < 1)"}, result.RiskFactors)

	// Raises a beta-assigned low level too.
	result = EvaluateRisk(RiskInput{Beta: floatPtr(0.5), CurrentRatio: floatPtr(0.8)}, nil)
	assert.Equal(t, RiskModerateHigh, result.RiskLevel)
}

func TestEvaluateRisk_AllRulesAccumulate(t *testing.T) {
	in := RiskInput{
		Beta:         floatPtr(1.3),
		DebtToEquity: floatPtr(2.5),
		NetMargin:    floatPtr(-1),
		CurrentRatio: floatPtr(0.9),
	}

	result := EvaluateRisk(in, floatPtr(4.5))
	assert.Equal(t, RiskModerateHigh, result.RiskLevel)
	// Every applicable rule's factor appears, in rule order.
	assert.Equal(t, []string{
		"Higher volatility than market",
		"High leverage",
		"Negative margin (loss-making)",
		"High daily volatility",
		"Low liquidity (current ratio < 1)",
	}, result.RiskFactors)
}

func TestEscalate_Monotone(t *testing.T) {
	levels := []RiskLevel{RiskLow, RiskModerate, RiskModerateHigh, RiskHigh}
	for i, current := range levels {
		for j, candidate := range levels {
			got := escalate(current, candidate)
			want := current
			if j > i {
				want = candidate
			}
			assert.Equal(t, want, got, "escalate(%s, %s)", current, candidate)
		}
	}
}
