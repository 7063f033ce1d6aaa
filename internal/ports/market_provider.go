package ports

import (
	"context"

	"github.com/alejandrodnm/polypaper/internal/domain"
)

// MarketQuery narrows a market listing request.
type MarketQuery struct {
	Search   string
	Category string
	Limit    int
}

// MarketProvider lists binary markets from the Gamma API.
type MarketProvider interface {
	FetchMarkets(ctx context.Context, query MarketQuery) ([]domain.Market, error)
}
