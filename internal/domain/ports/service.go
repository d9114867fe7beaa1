package ports

import (
	"context"

	"exchange-map-service/internal/domain/model"
)

type RateResolver interface {
	Resolve(ctx context.Context, exchangeName string) model.RateQueryResult
	RefreshSources(ctx context.Context) error
}

type ExchangeService interface {
	ListExchanges(ctx context.Context) []model.ExchangeRates
	GetRates(ctx context.Context, exchangeName string) model.RateQueryResult
}
