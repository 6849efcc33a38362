package research

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreSentiment_NoHeadlines(t *testing.T) {
	result := ScoreSentiment(nil)
	assert.Equal(t, 50.0, result.Score)
	assert.Equal(t, BiasNeutral, result.Bias)
	assert.Equal(t, 0, result.Hits)
}

func TestScoreSentiment_Bullish(t *testing.T) {
	headlines := []string{
		"Acme beats estimates and raises full-year guidance",
		"Acme announces record quarterly revenue",
	}

	result := ScoreSentiment(headlines)
	assert.Equal(t, BiasBullish, result.Bias)
	assert.Greater(t, result.Score, 60.0)
	assert.Equal(t, 2, result.Hits)
}

func TestScoreSentiment_Bearish(t *testing.T) {
	headlines := []string{
		"Acme misses on earnings, shares plunge",
		"Analyst downgrade follows weak outlook",
	}

	result := ScoreSentiment(headlines)
	assert.Equal(t, BiasBearish, result.Bias)
	assert.Less(t, result.Score, 40.0)
}

func TestScoreSentiment_MixedIsNeutral(t *testing.T) {
	headlines := []string{
		"Acme beats estimates",
		"Acme faces lawsuit over product recall",
		"Acme opens new office",
	}

	result := ScoreSentiment(headlines)
	assert.Equal(t, BiasNeutral, result.Bias)
}

func TestScoreHeadline_ClampsNetCount(t *testing.T) {
	// A keyword-stuffed title cannot contribute more than 3 either way.
	net := scoreHeadline("record surge: beats, raises, strong growth, profit wins approval")
	assert.Equal(t, 3, net)

	net = scoreHeadline("lawsuit probe recall plunge weak loss layoff bankruptcy")
	assert.Equal(t, -3, net)
}

func TestScoreHeadline_CaseInsensitive(t *testing.T) {
	assert.Equal(t, scoreHeadline("ACME BEATS ESTIMATES"), scoreHeadline("acme beats estimates"))
}

func TestScoreSentiment_ScoreClampedToRange(t *testing.T) {
	bearish := make([]string, 20)
	for i := range bearish {
		bearish[i] = "bankruptcy lawsuit plunge"
	}

	result := ScoreSentiment(bearish)
	assert.GreaterOrEqual(t, result.Score, 0.0)
	assert.LessOrEqual(t, result.Score, 100.0)
}
