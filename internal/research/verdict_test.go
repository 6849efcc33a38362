package research

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestEvaluateVerdict_InsufficientData(t *testing.T) {
	tests := []struct {
		name string
		in   Recommendation
	}{
		{name: "zero price", in: Recommendation{CurrentPrice: 0, CompositeScore: 65}},
		{name: "zero composite", in: Recommendation{CurrentPrice: 100, CompositeScore: 0}},
		{name: "both zero", in: Recommendation{}},
		{name: "negative price", in: Recommendation{CurrentPrice: -1, CompositeScore: 80}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EvaluateVerdict(tt.in)
			assert.Equal(t, VerdictInsufficientData, result.Verdict)
			assert.Equal(t, ConfidenceLow, result.Confidence)
			assert.Equal(t, []string{"Missing price or score data"}, result.Reasons)
		})
	}
}

func TestEvaluateVerdict_GoodEntry(t *testing.T) {
	in := Recommendation{
		CurrentPrice:     150,
		CompositeScore:   65,
		FundamentalScore: 60,
		TechnicalScore:   55,
		TechnicalBias:    BiasBullish,
		TargetUpside:     floatPtr(15),
		DipScore:         10,
		ConvictionScore:  65,
	}

	result := EvaluateVerdict(in)
	assert.Equal(t, VerdictGoodEntry, result.Verdict)
	// Composite 65 is below the 70 needed for high confidence.
	assert.Equal(t, ConfidenceMedium, result.Confidence)
	assert.Equal(t, []string{
		"Strong fundamentals",
		"Favorable technical setup",
		"Upside to analyst target: 15%",
	}, result.Reasons)
}

func TestEvaluateVerdict_GoodEntryHighConfidence(t *testing.T) {
	in := Recommendation{
		CurrentPrice:     80,
		CompositeScore:   75,
		FundamentalScore: 70,
		TechnicalScore:   60,
		TechnicalBias:    BiasBullish,
		TargetUpside:     floatPtr(20),
		DipScore:         45,
		ConvictionScore:  70,
	}

	result := EvaluateVerdict(in)
	assert.Equal(t, VerdictGoodEntry, result.Verdict)
	assert.Equal(t, ConfidenceHigh, result.Confidence)
	// All five reason rules fire, in evaluation order.
	assert.Equal(t, []string{
		"Strong fundamentals",
		"Favorable technical setup",
		"Upside to analyst target: 20%",
		"Oversold zone",
		"High long-term quality",
	}, result.Reasons)
}

func TestEvaluateVerdict_GoodEntryViaOversold(t *testing.T) {
	// No analyst upside at all, but deeply oversold with a bullish setup.
	in := Recommendation{
		CurrentPrice:     42,
		CompositeScore:   62,
		FundamentalScore: 50,
		TechnicalScore:   52,
		TechnicalBias:    BiasNeutral,
		DipScore:         55,
		ConvictionScore:  50,
	}

	result := EvaluateVerdict(in)
	assert.Equal(t, VerdictGoodEntry, result.Verdict)
	assert.Equal(t, ConfidenceMedium, result.Confidence)
	assert.Equal(t, []string{"Favorable technical setup", "Oversold zone"}, result.Reasons)
}

func TestEvaluateVerdict_Wait(t *testing.T) {
	in := Recommendation{
		CurrentPrice:     50,
		CompositeScore:   55,
		FundamentalScore: 60,
		TechnicalScore:   30,
		TechnicalBias:    BiasBearish,
		TargetUpside:     floatPtr(2),
		DipScore:         0,
		AnalystScore:     40,
	}

	result := EvaluateVerdict(in)
	assert.Equal(t, VerdictWait, result.Verdict)
	assert.Equal(t, ConfidenceMedium, result.Confidence)
	assert.Equal(t, []string{
		"Bearish technical trend",
		"Weak technical indicators",
		"Low upside to analyst target",
		"Wait for a better entry point",
	}, result.Reasons)
}

func TestEvaluateVerdict_WaitLowConfidence(t *testing.T) {
	in := Recommendation{
		CurrentPrice:     50,
		CompositeScore:   52,
		FundamentalScore: 58,
		TechnicalScore:   45,
		TechnicalBias:    BiasNeutral,
		TargetUpside:     floatPtr(8),
		DipScore:         45,
	}

	result := EvaluateVerdict(in)
	assert.Equal(t, VerdictWait, result.Verdict)
	assert.Equal(t, ConfidenceLow, result.Confidence)
	// Oversold and no bearish signals: no wait reasons fire.
	assert.Empty(t, result.Reasons)
}

func TestEvaluateVerdict_WaitNilUpsideTreatedAsZero(t *testing.T) {
	in := Recommendation{
		CurrentPrice:     50,
		CompositeScore:   56,
		FundamentalScore: 60,
		TechnicalScore:   60,
		TechnicalBias:    BiasNeutral,
		DipScore:         10,
	}

	result := EvaluateVerdict(in)
	require.Equal(t, VerdictWait, result.Verdict)
	assert.Contains(t, result.Reasons, "Low upside to analyst target")
}

func TestEvaluateVerdict_Pass(t *testing.T) {
	in := Recommendation{
		CurrentPrice:     50,
		CompositeScore:   35,
		FundamentalScore: 30,
		AnalystScore:     20,
		TechnicalBias:    BiasBearish,
		TargetUpside:     floatPtr(-5),
		ConvictionScore:  20,
	}

	result := EvaluateVerdict(in)
	assert.Equal(t, VerdictPass, result.Verdict)
	assert.Equal(t, ConfidenceHigh, result.Confidence)
	assert.Equal(t, []string{
		"Weak fundamentals",
		"Negative analyst consensus",
		"Bearish technical outlook",
		"Price above analyst target",
		"Low long-term quality",
	}, result.Reasons)
}

func TestEvaluateVerdict_PassMediumConfidence(t *testing.T) {
	// Composite above 40 but below both the good-entry and wait gates.
	in := Recommendation{
		CurrentPrice:     50,
		CompositeScore:   45,
		FundamentalScore: 50,
		AnalystScore:     55,
		TechnicalBias:    BiasNeutral,
		ConvictionScore:  50,
	}

	result := EvaluateVerdict(in)
	assert.Equal(t, VerdictPass, result.Verdict)
	assert.Equal(t, ConfidenceMedium, result.Confidence)
	assert.Equal(t, []string{"Weak fundamentals"}, result.Reasons)
}

func TestEvaluateVerdict_FirstMatchWins(t *testing.T) {
	// Satisfies both the good-entry and wait predicates; good-entry must win.
	in := Recommendation{
		CurrentPrice:     100,
		CompositeScore:   65,
		FundamentalScore: 60,
		TechnicalScore:   55,
		TechnicalBias:    BiasBullish,
		TargetUpside:     floatPtr(12),
		ConvictionScore:  50,
	}

	result := EvaluateVerdict(in)
	assert.Equal(t, VerdictGoodEntry, result.Verdict)
	assert.NotEqual(t, VerdictWait, result.Verdict)
	assert.NotEqual(t, VerdictPass, result.Verdict)
}

func TestEvaluateVerdict_Idempotent(t *testing.T) {
	in := Recommendation{
		CurrentPrice:     150,
		CompositeScore:   65,
		FundamentalScore: 60,
		TechnicalScore:   55,
		TechnicalBias:    BiasBullish,
		TargetUpside:     floatPtr(15),
		DipScore:         10,
		ConvictionScore:  65,
	}

	first := EvaluateVerdict(in)
	second := EvaluateVerdict(in)
	assert.Equal(t, first, second)
}

func TestEvaluateVerdict_BoundaryComposite60RequiresSetup(t *testing.T) {
	// Composite exactly at the good-entry gate but with no upside and no
	// oversold signal falls through to wait.
	in := Recommendation{
		CurrentPrice:     100,
		CompositeScore:   60,
		FundamentalScore: 60,
		TechnicalScore:   55,
		TechnicalBias:    BiasBullish,
		TargetUpside:     floatPtr(5),
		DipScore:         10,
	}

	result := EvaluateVerdict(in)
	assert.Equal(t, VerdictWait, result.Verdict)
}
