package research

import "strings"

// Keyword lists for headline sentiment. Matching is lowercase substring, so
// "beats" also matches "beat"; keep entries in their shortest useful form.
var bullishKeywords = []string{
	"beat", "upgrade", "raises", "record", "surge", "soar", "rally",
	"outperform", "buyback", "growth", "strong", "profit", "wins",
	"approval", "partnership", "expands", "breakthrough",
}

var bearishKeywords = []string{
	"miss", "downgrade", "cuts", "lawsuit", "probe", "recall", "plunge",
	"falls", "slump", "weak", "loss", "layoff", "warning", "investigation",
	"bankruptcy", "underperform", "delay", "halt",
}

// SentimentResult is the aggregate news read for one symbol.
type SentimentResult struct {
	Score float64       `json:"score"` // 0-100, 50 is neutral
	Bias  TechnicalBias `json:"bias"`
	Hits  int           `json:"hits"` // headlines that matched at least one keyword
}

// scoreHeadline returns the net keyword count for a single headline,
// clamped to [-3, 3] so one keyword-stuffed title cannot dominate.
func scoreHeadline(title string) int {
	lower := strings.ToLower(title)
	net := 0
	for _, kw := range bullishKeywords {
		if strings.Contains(lower, kw) {
			net++
		}
	}
	for _, kw := range bearishKeywords {
		if strings.Contains(lower, kw) {
			net--
		}
	}
	if net > 3 {
		net = 3
	}
	if net < -3 {
		net = -3
	}
	return net
}

// ScoreSentiment aggregates keyword sentiment over a batch of headlines.
// No headlines, or none matching any keyword, yields a neutral 50.
func ScoreSentiment(headlines []string) SentimentResult {
	if len(headlines) == 0 {
		return SentimentResult{Score: 50, Bias: BiasNeutral}
	}

	total := 0
	hits := 0
	for _, h := range headlines {
		net := scoreHeadline(h)
		total += net
		if net != 0 {
			hits++
		}
	}

	avg := float64(total) / float64(len(headlines))
	score := clamp(50+avg*10, 0, 100)

	bias := BiasNeutral
	if score >= 60 {
		bias = BiasBullish
	} else if score <= 40 {
		bias = BiasBearish
	}

	return SentimentResult{Score: score, Bias: bias, Hits: hits}
}
