// Package valuation prices a set of positions against latest quotes. It is
// shared by the portfolio performance endpoint and the daily snapshot job so
// both report identical numbers.
package valuation

// Position is one holding to be valued. HasPrice is false when no quote is
// available for the symbol; such positions are valued at cost.
type Position struct {
	Symbol    string
	Shares    float64
	AvgCost   float64
	Price     float64
	PrevClose float64
	HasPrice  bool
}

// PositionValue is the valuation of a single position.
type PositionValue struct {
	Symbol           string  `json:"symbol"`
	Shares           float64 `json:"shares"`
	AvgCost          float64 `json:"avg_cost"`
	Price            float64 `json:"price"`
	MarketValue      float64 `json:"market_value"`
	CostBasis        float64 `json:"cost_basis"`
	Gain             float64 `json:"gain"`
	GainPercent      float64 `json:"gain_percent"`
	DayChange        float64 `json:"day_change"`
	DayChangePercent float64 `json:"day_change_percent"`
	HasPrice         bool    `json:"has_price"`
}

// Summary is the aggregate valuation over all positions.
type Summary struct {
	TotalValue  float64
	CostBasis   float64
	Gain        float64
	GainPercent float64
	Positions   []PositionValue
}

// Value prices every position and aggregates the totals.
func Value(positions []Position) Summary {
	var summary Summary
	summary.Positions = make([]PositionValue, 0, len(positions))

	for _, p := range positions {
		pv := PositionValue{
			Symbol:    p.Symbol,
			Shares:    p.Shares,
			AvgCost:   p.AvgCost,
			Price:     p.Price,
			CostBasis: p.Shares * p.AvgCost,
			HasPrice:  p.HasPrice,
		}

		if p.HasPrice && p.Price > 0 {
			pv.MarketValue = p.Shares * p.Price
			if p.PrevClose > 0 {
				pv.DayChange = (p.Price - p.PrevClose) * p.Shares
				pv.DayChangePercent = (p.Price - p.PrevClose) / p.PrevClose * 100
			}
		} else {
			// No quote yet: carry the position at cost so totals stay sane.
			pv.MarketValue = pv.CostBasis
		}

		pv.Gain = pv.MarketValue - pv.CostBasis
		if pv.CostBasis > 0 {
			pv.GainPercent = pv.Gain / pv.CostBasis * 100
		}

		summary.TotalValue += pv.MarketValue
		summary.CostBasis += pv.CostBasis
		summary.Positions = append(summary.Positions, pv)
	}

	summary.Gain = summary.TotalValue - summary.CostBasis
	if summary.CostBasis > 0 {
		summary.GainPercent = summary.Gain / summary.CostBasis * 100
	}

	return summary
}
