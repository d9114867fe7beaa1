package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"exchange-map-service/internal/domain/model"
	"exchange-map-service/internal/domain/ports"
	"exchange-map-service/internal/metrics"
	"exchange-map-service/pkg/logger"
)

var (
	ErrUnknownSource = errors.New("route references a source without fetcher")
	ErrInvalidRoute  = errors.New("invalid route")
)

// Resolver maps exchange display names to rate fetches and a status. It is
// the recovery boundary for fetch failures: Resolve never returns an error.
type Resolver struct {
	routes   []Route
	fetchers map[model.SourceID]ports.RateFetcher
	sources  []model.SourceID
	log      *logger.Logger
	metrics  *metrics.Metrics
}

func NewResolver(routes []Route, fetchers []ports.RateFetcher, log *logger.Logger, m *metrics.Metrics) (*Resolver, error) {
	byID := make(map[model.SourceID]ports.RateFetcher, len(fetchers))
	for _, f := range fetchers {
		byID[f.Source()] = f
	}

	var sources []model.SourceID
	seen := make(map[model.SourceID]bool)
	for _, r := range routes {
		if r.Pattern == "" {
			return nil, fmt.Errorf("%w: empty pattern", ErrInvalidRoute)
		}
		switch r.Kind {
		case RouteFetch:
			if _, ok := byID[r.Source]; !ok {
				return nil, fmt.Errorf("%w: %q -> %s", ErrUnknownSource, r.Pattern, r.Source)
			}
			if !seen[r.Source] {
				seen[r.Source] = true
				sources = append(sources, r.Source)
			}
		case RoutePending:
			if r.Status != model.StatusNeedsSource && r.Status != model.StatusNeedsAPI {
				return nil, fmt.Errorf("%w: %q has status %q", ErrInvalidRoute, r.Pattern, r.Status)
			}
		default:
			return nil, fmt.Errorf("%w: %q has unknown kind %d", ErrInvalidRoute, r.Pattern, r.Kind)
		}
	}

	return &Resolver{
		routes:   routes,
		fetchers: byID,
		sources:  sources,
		log:      log,
		metrics:  m,
	}, nil
}

func (r *Resolver) Resolve(ctx context.Context, exchangeName string) model.RateQueryResult {
	result := r.resolve(ctx, exchangeName)
	if r.metrics != nil {
		r.metrics.ResolveTotal.WithLabelValues(result.Status.String()).Inc()
	}
	return result
}

func (r *Resolver) resolve(ctx context.Context, exchangeName string) model.RateQueryResult {
	if exchangeName == "" {
		return model.NewRateQueryResult(nil, model.StatusMissingName)
	}

	route, ok := r.match(exchangeName)
	if !ok {
		return model.NewRateQueryResult(nil, model.StatusNoParser)
	}

	if route.Kind == RoutePending {
		return model.NewRateQueryResult(nil, route.Status)
	}

	rates, err := r.fetch(ctx, route.Source)
	if err != nil {
		r.log.Warn("Failed to fetch exchange rates",
			"exchange", exchangeName,
			"source", route.Source,
			"error", err,
		)
		return model.NewRateQueryResult(nil, model.StatusFetchError)
	}

	return model.NewRateQueryResult(rates, model.StatusOK)
}

func (r *Resolver) match(exchangeName string) (Route, bool) {
	for _, route := range r.routes {
		if strings.Contains(exchangeName, route.Pattern) {
			return route, true
		}
	}
	return Route{}, false
}

// fetch also turns a panicking fetcher into an error.
func (r *Resolver) fetch(ctx context.Context, source model.SourceID) (rates []model.RateQuote, err error) {
	defer func() {
		if p := recover(); p != nil {
			r.log.Error("Fetcher panicked", "source", source, "panic", p)
			err = fmt.Errorf("fetcher %s panicked: %v", source, p)
		}
	}()

	return r.fetchers[source].Fetch(ctx)
}

// RefreshSources fetches every routed source through the cache, so only
// stale sources hit the network.
func (r *Resolver) RefreshSources(ctx context.Context) error {
	r.log.Info("Refreshing rate sources", "count", len(r.sources))

	var errs []error
	for _, source := range r.sources {
		rates, err := r.fetch(ctx, source)
		if err != nil {
			r.log.Error("Failed to refresh source", "source", source, "error", err)
			errs = append(errs, err)
			continue
		}
		r.log.Debug("Source refreshed", "source", source, "count", len(rates))
	}

	return errors.Join(errs...)
}
