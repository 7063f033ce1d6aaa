package ports

import (
	"context"

	"github.com/alejandrodnm/polypaper/internal/domain"
)

// Notifier presents scan results and portfolio state to the user.
type Notifier interface {
	// NotifyOpportunities shows the markets scanned this cycle, best edge first.
	NotifyOpportunities(ctx context.Context, opps []domain.Opportunity) error

	// NotifyPortfolio shows the portfolio summary, open positions and
	// recent activity.
	NotifyPortfolio(ctx context.Context, state domain.PortfolioState) error
}
