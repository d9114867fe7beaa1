package source

import (
	"bytes"
	"context"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"exchange-map-service/internal/domain/model"
	"exchange-map-service/internal/domain/ports"
	"exchange-map-service/pkg/utils"
)

const DefaultKantor1913URL = "https://kantor1913.pl/kursy-warszawa"

var (
	// First three-capital token in a row. Unrelated words like "NBP" can win.
	currencyCodePattern = regexp.MustCompile(`\b[A-Z]{3}\b`)
	decimalPattern      = regexp.MustCompile(`\d+[.,]\d+`)
)

// Kantor1913Fetcher scrapes the rate table of the Kantor 1913 web page.
type Kantor1913Fetcher struct {
	url    string
	client *Client
	cache  ports.RateCache
}

func NewKantor1913Fetcher(url string, client *Client, cache ports.RateCache) *Kantor1913Fetcher {
	if url == "" {
		url = DefaultKantor1913URL
	}
	return &Kantor1913Fetcher{
		url:    url,
		client: client,
		cache:  cache,
	}
}

func (f *Kantor1913Fetcher) Source() model.SourceID {
	return model.SourceKantor1913
}

func (f *Kantor1913Fetcher) Fetch(ctx context.Context) ([]model.RateQuote, error) {
	return cachedFetch(ctx, f.cache, f.Source(), func(ctx context.Context) ([]model.RateQuote, error) {
		f.client.log.Info("Fetching rates from source", "source", f.Source(), "url", f.url)

		body, err := f.client.get(ctx, f.Source(), f.url, nil)
		if err != nil {
			return nil, err
		}

		rates, err := parseTableRates(bytes.NewReader(body))
		if err != nil {
			return nil, model.NewParseError(f.Source(), err)
		}

		f.client.log.Info("Fetched rates from source", "source", f.Source(), "count", len(rates))
		return rates, nil
	})
}

// parseTableRates turns every <tr> of the document into at most one quote:
// the first currency code in the row's text, then the first two decimals as
// buy and sell. The first row for a given code wins.
func parseTableRates(r io.Reader) ([]model.RateQuote, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	rates := []model.RateQuote{}
	seen := make(map[model.Currency]struct{})

	for _, row := range findRows(doc, nil) {
		text := rowText(row)
		if text == "" {
			continue
		}

		code := currencyCodePattern.FindString(text)
		if code == "" {
			continue
		}

		numbers := decimalPattern.FindAllString(text, 2)
		if len(numbers) < 2 {
			continue
		}

		currency := model.Currency(code)
		if _, dup := seen[currency]; dup {
			continue
		}
		seen[currency] = struct{}{}

		rates = append(rates, model.RateQuote{
			Currency: currency,
			Buy:      utils.NormalizeDecimal(numbers[0]),
			Sell:     utils.NormalizeDecimal(numbers[1]),
		})
	}

	return rates, nil
}

// findRows collects <tr> elements in document order, nested rows included.
func findRows(n *html.Node, rows []*html.Node) []*html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Tr {
		rows = append(rows, n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		rows = findRows(c, rows)
	}
	return rows
}

// rowText joins the row's non-blank text nodes, each trimmed, with single spaces.
func rowText(row *html.Node) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			if s := strings.TrimSpace(n.Data); s != "" {
				parts = append(parts, s)
			}
			return
		case n.Type == html.ElementNode && (n.DataAtom == atom.Script || n.DataAtom == atom.Style):
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(row)
	return strings.Join(parts, " ")
}
