package ports

import (
	"context"

	"exchange-map-service/internal/domain/model"
)

type RateCache interface {
	Get(ctx context.Context, key model.SourceID) ([]model.RateQuote, bool)
	Set(ctx context.Context, key model.SourceID, rates []model.RateQuote)
}
