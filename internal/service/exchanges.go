package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"exchange-map-service/internal/domain/model"
	"exchange-map-service/internal/domain/ports"
	"exchange-map-service/pkg/logger"
)

const DefaultResolveConcurrency = 4

// ExchangeService joins the exchange directory with resolved rates.
type ExchangeService struct {
	directory   ports.ExchangeDirectory
	resolver    ports.RateResolver
	concurrency int
	log         *logger.Logger
}

func NewExchangeService(directory ports.ExchangeDirectory, resolver ports.RateResolver, concurrency int, log *logger.Logger) *ExchangeService {
	if concurrency <= 0 {
		concurrency = DefaultResolveConcurrency
	}
	return &ExchangeService{
		directory:   directory,
		resolver:    resolver,
		concurrency: concurrency,
		log:         log,
	}
}

// ListExchanges resolves every directory record concurrently. The result
// keeps directory order.
func (s *ExchangeService) ListExchanges(ctx context.Context) []model.ExchangeRates {
	records := s.directory.Load(ctx)
	out := make([]model.ExchangeRates, len(records))

	var g errgroup.Group
	g.SetLimit(s.concurrency)

	for i, record := range records {
		i, record := i, record
		g.Go(func() error {
			result := s.resolver.Resolve(ctx, record.Name)
			out[i] = model.ExchangeRates{
				Name:       record.Name,
				Lat:        record.Lat,
				Lng:        record.Lng,
				URL:        record.URL,
				Rates:      result.Rates,
				RateStatus: result.Status,
			}
			return nil
		})
	}
	_ = g.Wait()

	s.log.Debug("Listed exchanges", "count", len(out))
	return out
}

func (s *ExchangeService) GetRates(ctx context.Context, exchangeName string) model.RateQueryResult {
	return s.resolver.Resolve(ctx, exchangeName)
}
