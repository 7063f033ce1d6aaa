package polymarket

// The CLOB has served the order book under two URL shapes over time; we try
// both and take the first response that yields any level. Rate limiting and
// auth failures short-circuit as sentinel errors so the scanning layer can
// back off the whole cycle instead of trading on a degraded snapshot.

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alejandrodnm/polypaper/internal/domain"
	"github.com/alejandrodnm/polypaper/internal/ports"
)

// FetchTopOfBook returns the best bid/ask snapshot for one market.
// A market with no observable liquidity returns an empty TopOfBook, not an
// error: absent levels are a soft condition the engine already handles.
func (c *Client) FetchTopOfBook(ctx context.Context, marketID string) (domain.TopOfBook, error) {
	endpoints := []string{
		fmt.Sprintf("%s/orderbook?market=%s&limit=1", c.clobBase, marketID),
		fmt.Sprintf("%s/markets/%s/orderbook?limit=1", c.clobBase, marketID),
	}

	var lastErr error
	for _, reqURL := range endpoints {
		var book rawBook
		if err := c.get(ctx, c.booksLimiter, reqURL, &book); err != nil {
			if errors.Is(err, ports.ErrRateLimited) || errors.Is(err, ports.ErrAuthRequired) {
				return domain.TopOfBook{RequiresAuth: errors.Is(err, ports.ErrAuthRequired)}, err
			}
			lastErr = err
			continue
		}

		top := mapTopOfBook(book)
		if !top.Empty() {
			return top, nil
		}
	}

	if lastErr != nil {
		return domain.TopOfBook{}, fmt.Errorf("clob.FetchTopOfBook %q: %w", marketID, lastErr)
	}

	slog.Debug("no liquidity observed", "market", marketID)
	return domain.TopOfBook{}, nil
}
