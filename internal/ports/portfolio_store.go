package ports

import (
	"context"

	"github.com/alejandrodnm/polypaper/internal/domain"
)

// PortfolioStore persists the portfolio state blob between runs. The engine
// never touches storage directly; the scanning layer loads once on startup
// and saves after every state transition.
type PortfolioStore interface {
	// Load returns the persisted state, falling back to the default
	// portfolio shape when nothing was stored yet.
	Load(ctx context.Context) (domain.PortfolioState, error)

	// Save persists the state verbatim.
	Save(ctx context.Context, state domain.PortfolioState) error

	// Close releases the underlying storage handle.
	Close() error
}
