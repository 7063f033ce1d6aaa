package polymarket

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/alejandrodnm/polypaper/internal/domain"
	"github.com/alejandrodnm/polypaper/internal/ports"
)

const (
	gammaMarketsPath  = "/markets"
	defaultGammaLimit = 200
)

// FetchMarkets lists markets from Gamma matching the query.
func (c *Client) FetchMarkets(ctx context.Context, query ports.MarketQuery) ([]domain.Market, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = defaultGammaLimit
	}

	params := url.Values{}
	params.Set("limit", fmt.Sprintf("%d", limit))
	if query.Search != "" {
		params.Set("query", query.Search)
	}
	if query.Category != "" {
		params.Set("category", query.Category)
	}

	var resp gammaMarketsEnvelope
	reqURL := c.gammaBase + gammaMarketsPath + "?" + params.Encode()
	if err := c.get(ctx, c.gammaLimiter, reqURL, &resp); err != nil {
		return nil, fmt.Errorf("gamma.FetchMarkets: %w", err)
	}

	markets := make([]domain.Market, 0, len(resp.Markets))
	for _, gm := range resp.Markets {
		markets = append(markets, mapGammaMarket(gm))
	}

	slog.Debug("markets fetched", "count", len(markets))
	return markets, nil
}
