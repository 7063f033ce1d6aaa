package ports

import (
	"context"
	"errors"

	"github.com/alejandrodnm/polypaper/internal/domain"
)

// The two fault classes callers must tell apart from ordinary fetch errors:
// both mean "do not attempt a fill this cycle" rather than "feed the engine
// a degraded snapshot".
var (
	ErrRateLimited  = errors.New("market data: rate limited")
	ErrAuthRequired = errors.New("market data: authentication required")
)

// BookProvider fetches the best bid/ask snapshot for one market.
type BookProvider interface {
	FetchTopOfBook(ctx context.Context, marketID string) (domain.TopOfBook, error)
}
