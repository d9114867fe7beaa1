package model

// RateQuote is a buy/sell pair for one currency against the exchange's base
// currency. Prices stay textual with '.' as the decimal separator.
type RateQuote struct {
	Currency Currency `json:"currency"`
	Buy      string   `json:"buy"`
	Sell     string   `json:"sell"`
}

// RateQueryResult is what the resolver hands to callers for one exchange.
type RateQueryResult struct {
	Rates  []RateQuote `json:"rates"`
	Status Status      `json:"status"`
}

// NewRateQueryResult never returns a nil Rates slice so it encodes as [].
func NewRateQueryResult(rates []RateQuote, status Status) RateQueryResult {
	if rates == nil {
		rates = []RateQuote{}
	}
	return RateQueryResult{Rates: rates, Status: status}
}
