package model

// ExchangeRecord is one entry of the static exchange directory.
type ExchangeRecord struct {
	Name string   `json:"name"`
	Lat  *float64 `json:"lat"`
	Lng  *float64 `json:"lng"`
	URL  *string  `json:"url"`
}

// ExchangeRates is a directory record joined with its resolved rates.
type ExchangeRates struct {
	Name       string      `json:"name"`
	Lat        *float64    `json:"lat"`
	Lng        *float64    `json:"lng"`
	URL        *string     `json:"url"`
	Rates      []RateQuote `json:"rates"`
	RateStatus Status      `json:"rate_status"`
}
