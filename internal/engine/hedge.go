package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/alejandrodnm/polypaper/internal/domain"
)

// AttemptAtomicHedge acquires equal-size YES and NO exposure as a single
// logical unit: holding only one leg is an unwanted directional bet.
//
// Both legs are simulated strictly sequentially against the same frozen
// snapshot, so "atomic" means logical two-leg intent, not a transactional
// guarantee against market movement between legs. maxWait is accepted for
// contract parity with a live executor but the simulation is instantaneous
// and never waits on the clock.
//
// Outcomes:
//   - both legs FILLED: both orders returned filled, one success log entry.
//   - neither leg filled: both orders returned CANCELLED, no state change.
//   - exactly one leg filled: a best-effort unwind SELL at the current bid is
//     simulated; the filled leg is returned FAILED_ATOMIC (with the unwind
//     price noted when a bid existed), the other leg CANCELLED.
func AttemptAtomicHedge(
	state domain.PortfolioState,
	marketID, title string,
	top domain.TopOfBook,
	size float64,
	maxWait time.Duration,
) (domain.PortfolioState, []domain.Order) {
	yesOrder := buildHedgeLeg(marketID, title, domain.SideYes, top, size)
	noOrder := buildHedgeLeg(marketID, title, domain.SideNo, top, size)

	state, yesOrder = SimulateFill(state, yesOrder, top)
	state, noOrder = SimulateFill(state, noOrder, top)

	yesFilled := yesOrder.Status == domain.StatusFilled
	noFilled := noOrder.Status == domain.StatusFilled

	if yesFilled && noFilled {
		state = state.AppendLog(marketID, title, fmt.Sprintf(
			"Opened hedged position (YES @ %.3f, NO @ %.3f)", yesOrder.Price, noOrder.Price))
		return state, []domain.Order{yesOrder, noOrder}
	}

	if !yesFilled && !noFilled {
		yesOrder.Status = domain.StatusCancelled
		noOrder.Status = domain.StatusCancelled
		return state, []domain.Order{yesOrder, noOrder}
	}

	// The dangerous case: one-sided exposure. Unwind it at the bid if one
	// exists; otherwise the position is left one-sided and the order status
	// is the only signal.
	filled, unfilled := yesOrder, noOrder
	if noFilled {
		filled, unfilled = noOrder, yesOrder
	}

	state, filled = unwindLeg(state, filled, top, size)
	unfilled.Status = domain.StatusCancelled

	state = state.AppendLog(marketID, title, fmt.Sprintf(
		"Atomic safety: only one leg filled (%s). Attempted unwind.", filled.Side))
	slog.Warn("hedge partial fill, unwound",
		"market", marketID,
		"side", string(filled.Side),
		"note", filled.Note,
	)

	if filled.Side == domain.SideYes {
		return state, []domain.Order{filled, unfilled}
	}
	return state, []domain.Order{unfilled, filled}
}

// buildHedgeLeg creates a BUY order at the current ask, falling back to the
// worst-case limit of 1 when no ask was observed.
func buildHedgeLeg(marketID, title string, side domain.Side, top domain.TopOfBook, size float64) domain.Order {
	price := 1.0
	if ask := top.Outcome(side).Ask; ask != nil {
		price = ask.Price
	}
	return domain.Order{
		ID:        uuid.New().String(),
		MarketID:  marketID,
		Side:      side,
		Action:    domain.ActionBuy,
		Price:     price,
		Size:      size,
		Status:    domain.StatusOpen,
		CreatedAt: time.Now().UTC(),
		Note:      title,
	}
}

// unwindLeg sells back a leg that filled without its partner. The returned
// order is the original leg re-statused FAILED_ATOMIC.
func unwindLeg(state domain.PortfolioState, leg domain.Order, top domain.TopOfBook, size float64) (domain.PortfolioState, domain.Order) {
	leg.Status = domain.StatusFailedAtomic

	bid := top.Outcome(leg.Side).Bid
	if bid == nil {
		return state, leg
	}

	sell := domain.Order{
		ID:        uuid.New().String(),
		MarketID:  leg.MarketID,
		Side:      leg.Side,
		Action:    domain.ActionSell,
		Price:     bid.Price,
		Size:      size,
		Status:    domain.StatusOpen,
		CreatedAt: time.Now().UTC(),
		Note:      "Atomic unwind",
	}
	state, _ = SimulateFill(state, sell, top)
	leg.Note = fmt.Sprintf("Unwound at %.3f", bid.Price)
	return state, leg
}
