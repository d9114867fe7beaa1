package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"exchange-map-service/internal/domain/model"
	"exchange-map-service/internal/domain/ports"
	"exchange-map-service/pkg/utils"
)

const (
	DefaultShitcoinsURL     = "https://shitcoins.club/getRates"
	DefaultShitcoinsReferer = "https://shitcoins.club/"

	pricePlaces = 4
)

// ShitcoinsFetcher reads the Shitcoins.club rate API. The API quotes every
// coin against several currencies; only PLN quotes are kept.
type ShitcoinsFetcher struct {
	url     string
	referer string
	client  *Client
	cache   ports.RateCache
}

func NewShitcoinsFetcher(url, referer string, client *Client, cache ports.RateCache) *ShitcoinsFetcher {
	if url == "" {
		url = DefaultShitcoinsURL
	}
	if referer == "" {
		referer = DefaultShitcoinsReferer
	}
	return &ShitcoinsFetcher{
		url:     url,
		referer: referer,
		client:  client,
		cache:   cache,
	}
}

func (f *ShitcoinsFetcher) Source() model.SourceID {
	return model.SourceShitcoins
}

func (f *ShitcoinsFetcher) Fetch(ctx context.Context) ([]model.RateQuote, error) {
	return cachedFetch(ctx, f.cache, f.Source(), func(ctx context.Context) ([]model.RateQuote, error) {
		f.client.log.Info("Fetching rates from source", "source", f.Source(), "url", f.url)

		headers := map[string]string{
			"Accept":  "application/json, text/plain, */*",
			"Referer": f.referer,
		}
		body, err := f.client.get(ctx, f.Source(), f.url, headers)
		if err != nil {
			return nil, err
		}

		rates, err := parseShitcoinsRates(bytes.NewReader(body))
		if err != nil {
			return nil, model.NewParseError(f.Source(), err)
		}

		f.client.log.Info("Fetched rates from source", "source", f.Source(), "count", len(rates))
		return rates, nil
	})
}

// parseShitcoinsRates expects a JSON array. Any other top-level value yields
// no quotes. Elements that are not PLN-quoted, or lack a usable name, ask or
// bid, are skipped. Duplicates are kept as the API sends them.
func parseShitcoinsRates(r io.Reader) ([]model.RateQuote, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("failed to decode response: trailing data after JSON value")
	}

	rates := []model.RateQuote{}

	items, ok := payload.([]any)
	if !ok {
		return rates, nil
	}

	for _, raw := range items {
		item, ok := raw.(map[string]any)
		if !ok {
			continue
		}

		code := fromCurrencyName(item["fromCurrency"])
		if code == "" {
			continue
		}
		if to, _ := item["toCurrency"].(string); to != model.PLN.String() {
			continue
		}

		ask, bid := item["rateAsk"], item["rateBid"]
		if ask == nil || bid == nil {
			continue
		}

		sell, err := utils.FormatFixed(ask, pricePlaces)
		if err != nil {
			continue
		}
		buy, err := utils.FormatFixed(bid, pricePlaces)
		if err != nil {
			continue
		}

		rates = append(rates, model.RateQuote{
			Currency: model.Currency(code),
			Buy:      buy,
			Sell:     sell,
		})
	}

	return rates, nil
}

func fromCurrencyName(v any) string {
	from, ok := v.(map[string]any)
	if !ok {
		return ""
	}
	name, _ := from["name"].(string)
	return name
}
