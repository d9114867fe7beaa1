package model

type Currency string

// PLN is the only quote currency taken from multi-quote sources.
const PLN Currency = "PLN"

func (c Currency) String() string {
	return string(c)
}
