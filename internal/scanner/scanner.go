package scanner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alejandrodnm/polypaper/internal/domain"
	"github.com/alejandrodnm/polypaper/internal/engine"
	"github.com/alejandrodnm/polypaper/internal/ports"
)

// Config controls the scanning loop. The engine itself only ever sees
// OrderSize and MaxWait as call arguments; everything else decides when
// the engine is invoked.
type Config struct {
	PollInterval  time.Duration
	MinEdge       float64
	OrderSize     float64
	MaxWait       time.Duration
	ExitFeeBuffer float64
	Filter        FilterConfig
	DryRun        bool
}

// DefaultConfig mirrors the defaults the trader shipped with.
func DefaultConfig() Config {
	return Config{
		PollInterval:  3 * time.Second,
		MinEdge:       0.02,
		OrderSize:     10,
		MaxWait:       2 * time.Second,
		ExitFeeBuffer: 0.02,
		Filter:        FilterConfig{MinVolume: 10000, TopN: 50},
	}
}

// Scanner owns the poll loop: it fetches markets and books, decides when to
// invoke the paper engine, and owns persistence of the resulting state.
type Scanner struct {
	cfg      Config
	markets  ports.MarketProvider
	books    ports.BookProvider
	store    ports.PortfolioStore
	notifier ports.Notifier
}

// New creates a Scanner with all dependencies injected.
func New(
	cfg Config,
	markets ports.MarketProvider,
	books ports.BookProvider,
	store ports.PortfolioStore,
	notifier ports.Notifier,
) *Scanner {
	return &Scanner{
		cfg:      cfg,
		markets:  markets,
		books:    books,
		store:    store,
		notifier: notifier,
	}
}

// Run loads the portfolio and polls until the context is cancelled.
// With cfg.DryRun, exactly one cycle runs.
func (s *Scanner) Run(ctx context.Context) error {
	state, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("scanner.Run: load portfolio: %w", err)
	}

	slog.Info("scanner starting",
		"interval", s.cfg.PollInterval,
		"min_edge", s.cfg.MinEdge,
		"order_size", s.cfg.OrderSize,
		"cash", fmt.Sprintf("$%.2f", state.Cash),
	)

	state = s.runCycle(ctx, state)
	if s.cfg.DryRun {
		return nil
	}

	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("scanner stopped")
			return nil
		case <-ticker.C:
			state = s.runCycle(ctx, state)
		}
	}
}

// runCycle executes one full cycle and returns the next portfolio state.
// Any cycle-level failure leaves the prior state untouched.
func (s *Scanner) runCycle(ctx context.Context, state domain.PortfolioState) domain.PortfolioState {
	start := time.Now()

	next, opps, err := s.cycle(ctx, state)
	if err != nil {
		slog.Error("scan cycle failed", "err", err)
		return state
	}

	if err := s.notifier.NotifyOpportunities(ctx, opps); err != nil {
		slog.Warn("notifier error", "err", err)
	}
	if err := s.notifier.NotifyPortfolio(ctx, next); err != nil {
		slog.Warn("notifier error", "err", err)
	}

	slog.Debug("cycle complete",
		"markets", len(opps),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return next
}

// cycle fetches fresh snapshots and runs the engine where the rules fire.
func (s *Scanner) cycle(ctx context.Context, state domain.PortfolioState) (domain.PortfolioState, []domain.Opportunity, error) {
	markets, err := s.markets.FetchMarkets(ctx, ports.MarketQuery{Limit: 200})
	if err != nil {
		return state, nil, fmt.Errorf("fetch markets: %w", err)
	}

	candidates := FilterMarkets(markets, s.cfg.Filter)

	tops := make(map[string]domain.TopOfBook, len(candidates))
	titles := make(map[string]string, len(candidates))
	var opps []domain.Opportunity

	for _, m := range candidates {
		top, err := s.books.FetchTopOfBook(ctx, m.ID)
		switch {
		case errors.Is(err, ports.ErrRateLimited):
			// Stop the whole cycle: the remaining snapshots would be
			// equally throttled and the engine must not trade on them.
			slog.Warn("rate limited, ending cycle early", "market", m.ID)
			return state, opps, nil
		case errors.Is(err, ports.ErrAuthRequired):
			slog.Debug("book requires auth, skipping", "market", m.ID)
			continue
		case err != nil:
			slog.Debug("book fetch failed, skipping", "market", m.ID, "err", err)
			continue
		}

		tops[m.ID] = top
		titles[m.ID] = m.Title()

		if cost, ok := top.BuyCost(); ok {
			edge := 1 - cost
			opps = append(opps, domain.Opportunity{
				MarketID:   m.ID,
				Title:      m.Title(),
				BuyCost:    cost,
				Edge:       edge,
				YesAsk:     top.Yes.Ask.Price,
				NoAsk:      top.No.Ask.Price,
				YesAskSize: top.Yes.Ask.Size,
				NoAskSize:  top.No.Ask.Size,
				Top:        top,
				ScannedAt:  time.Now().UTC(),
			})
		}
	}

	state = s.executeHedges(state, opps)
	state = s.autoExit(state, tops, titles)

	if err := s.store.Save(ctx, state); err != nil {
		slog.Warn("persist portfolio failed", "err", err)
	}
	return state, opps, nil
}

// executeHedges runs the atomic hedge on every market whose edge clears the
// threshold and where we are not already holding a position.
func (s *Scanner) executeHedges(state domain.PortfolioState, opps []domain.Opportunity) domain.PortfolioState {
	for _, opp := range opps {
		if opp.Edge < s.cfg.MinEdge {
			continue
		}
		if pos, ok := state.Positions[opp.MarketID]; ok && pos.Open() {
			continue
		}

		next, orders := engine.AttemptAtomicHedge(
			state, opp.MarketID, opp.Title, opp.Top, s.cfg.OrderSize, s.cfg.MaxWait)
		state = next.RecordOrders(orders...)

		slog.Info("hedge attempted",
			"market", opp.Title,
			"edge", fmt.Sprintf("%.3f", opp.Edge),
			"result", hedgeOutcome(orders),
		)
	}
	return state
}

// autoExit closes any open position whose observable exit value recovered
// enough of the $1 resolution payout.
func (s *Scanner) autoExit(state domain.PortfolioState, tops map[string]domain.TopOfBook, titles map[string]string) domain.PortfolioState {
	for marketID, pos := range state.Positions {
		if !pos.Open() {
			continue
		}
		top, ok := tops[marketID]
		if !ok {
			continue
		}
		if !engine.ComputeAutoExit(&pos, top, s.cfg.ExitFeeBuffer) {
			continue
		}

		title := titles[marketID]
		if title == "" {
			title = pos.Title
		}
		next, orders := engine.ClosePosition(state, marketID, title, top)
		state = next.RecordOrders(orders...)

		slog.Info("auto-exit closed position",
			"market", title,
			"sell_value", fmt.Sprintf("%.3f", top.SellValue()),
		)
	}
	return state
}

// hedgeOutcome summarizes an order list for the log line.
func hedgeOutcome(orders []domain.Order) string {
	filled := 0
	for _, o := range orders {
		if o.Status == domain.StatusFilled {
			filled++
		}
		if o.Status == domain.StatusFailedAtomic {
			return "failed_atomic"
		}
	}
	switch filled {
	case len(orders):
		return "filled"
	case 0:
		return "cancelled"
	default:
		return "partial"
	}
}
