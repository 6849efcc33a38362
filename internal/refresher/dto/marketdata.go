package dto

// Quote is the latest price pair for one symbol.
type Quote struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	PreviousClose float64 `json:"previous_close"`
}

// ChartData is a daily close series plus range metadata for one symbol,
// newest close last.
type ChartData struct {
	Symbol        string    `json:"symbol"`
	Closes        []float64 `json:"closes"`
	CurrentPrice  float64   `json:"current_price"`
	PreviousClose float64   `json:"previous_close"`
	High52Week    float64   `json:"high_52_week"`
	Low52Week     float64   `json:"low_52_week"`
}

// Fundamentals are the ratio metrics pulled from the fundamentals provider.
// Nil means the provider had no value for that field.
type Fundamentals struct {
	Beta           *float64 `json:"beta"`
	NetMargin      *float64 `json:"net_margin"`
	ReturnOnEquity *float64 `json:"return_on_equity"`
	DebtToEquity   *float64 `json:"debt_to_equity"`
	CurrentRatio   *float64 `json:"current_ratio"`
	RevenueGrowth  *float64 `json:"revenue_growth"`
}

// RecommendationTrend is the analyst rating distribution for one symbol.
type RecommendationTrend struct {
	StrongBuy  int `json:"strong_buy"`
	Buy        int `json:"buy"`
	Hold       int `json:"hold"`
	Sell       int `json:"sell"`
	StrongSell int `json:"strong_sell"`
}

// PriceTarget is the analyst consensus price target for one symbol.
type PriceTarget struct {
	TargetMean float64 `json:"target_mean"`
}

// YahooChartResponse mirrors the Yahoo Finance v8 chart API payload, reduced
// to the fields the refresher reads.
type YahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				ChartPreviousClose float64 `json:"chartPreviousClose"`
				FiftyTwoWeekHigh   float64 `json:"fiftyTwoWeekHigh"`
				FiftyTwoWeekLow    float64 `json:"fiftyTwoWeekLow"`
			} `json:"meta"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FinnhubMetricResponse mirrors the Finnhub /stock/metric payload.
type FinnhubMetricResponse struct {
	Metric struct {
		Beta                         *float64 `json:"beta"`
		NetProfitMarginTTM           *float64 `json:"netProfitMarginTTM"`
		RoeTTM                       *float64 `json:"roeTTM"`
		TotalDebtToEquityQuarterly   *float64 `json:"totalDebt/totalEquityQuarterly"`
		CurrentRatioQuarterly        *float64 `json:"currentRatioQuarterly"`
		RevenueGrowthTTMYoy          *float64 `json:"revenueGrowthTTMYoy"`
	} `json:"metric"`
}

// FinnhubRecommendationEntry mirrors one row of /stock/recommendation.
type FinnhubRecommendationEntry struct {
	Symbol     string `json:"symbol"`
	Period     string `json:"period"`
	StrongBuy  int    `json:"strongBuy"`
	Buy        int    `json:"buy"`
	Hold       int    `json:"hold"`
	Sell       int    `json:"sell"`
	StrongSell int    `json:"strongSell"`
}

// FinnhubPriceTargetResponse mirrors the Finnhub /stock/price-target payload.
type FinnhubPriceTargetResponse struct {
	Symbol     string  `json:"symbol"`
	TargetMean float64 `json:"targetMean"`
}

// PolygonPrevCloseResponse mirrors the Polygon previous-close aggregate payload.
type PolygonPrevCloseResponse struct {
	Ticker  string `json:"ticker"`
	Status  string `json:"status"`
	Results []struct {
		Close  float64 `json:"c"`
		Open   float64 `json:"o"`
		High   float64 `json:"h"`
		Low    float64 `json:"l"`
		Volume float64 `json:"v"`
	} `json:"results"`
}
