package ports

import (
	"context"

	"exchange-map-service/internal/domain/model"
)

// RateFetcher retrieves and normalizes the quotes of one upstream source.
// Failures are always *model.FetchError.
type RateFetcher interface {
	Source() model.SourceID
	Fetch(ctx context.Context) ([]model.RateQuote, error)
}

type ExchangeDirectory interface {
	Load(ctx context.Context) []model.ExchangeRecord
}
