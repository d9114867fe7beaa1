package service

import (
	"exchange-map-service/internal/domain/model"
)

type RouteKind int

const (
	// RouteFetch sends the exchange to the fetcher of Route.Source.
	RouteFetch RouteKind = iota
	// RoutePending marks a known exchange without an integration yet.
	// Route.Status says what is missing.
	RoutePending
)

// Route matches exchanges whose display name contains Pattern. Routes are
// evaluated in slice order and the first match wins.
type Route struct {
	Pattern string
	Kind    RouteKind
	Source  model.SourceID
	Status  model.Status
}

func FetchRoute(pattern string, source model.SourceID) Route {
	return Route{Pattern: pattern, Kind: RouteFetch, Source: source}
}

func PendingRoute(pattern string, status model.Status) Route {
	return Route{Pattern: pattern, Kind: RoutePending, Status: status}
}

// DefaultRoutes is the routing table for the exchanges in the directory.
func DefaultRoutes() []Route {
	return []Route{
		FetchRoute("Kantor 1913", model.SourceKantor1913),
		FetchRoute("Shitcoins.club", model.SourceShitcoins),
		PendingRoute("Coinswap", model.StatusNeedsSource),
		PendingRoute("Krypto Kotek", model.StatusNeedsAPI),
		PendingRoute("Kassir", model.StatusNeedsAPI),
		PendingRoute("Bitcoinwymiana", model.StatusNeedsAPI),
	}
}
