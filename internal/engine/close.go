package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/alejandrodnm/polypaper/internal/domain"
)

// ClosePosition liquidates both sides of a market's position against the
// current bids. It is idempotent: with no position, or both share counts at
// zero, the input state comes back untouched with no orders.
//
// Each sell is priced at the current bid. A leg with no observable bid has
// nothing to cross against and its order is returned still OPEN.
func ClosePosition(state domain.PortfolioState, marketID, title string, top domain.TopOfBook) (domain.PortfolioState, []domain.Order) {
	pos, ok := state.Positions[marketID]
	if !ok || !pos.Open() {
		return state, nil
	}

	var orders []domain.Order

	for _, leg := range []struct {
		side   domain.Side
		shares float64
	}{
		{domain.SideYes, pos.YesShares},
		{domain.SideNo, pos.NoShares},
	} {
		if leg.shares <= 0 {
			continue
		}
		price := 0.0
		if bid := top.Outcome(leg.side).Bid; bid != nil {
			price = bid.Price
		}
		order := domain.Order{
			ID:        uuid.New().String(),
			MarketID:  marketID,
			Side:      leg.side,
			Action:    domain.ActionSell,
			Price:     price,
			Size:      leg.shares,
			Status:    domain.StatusOpen,
			CreatedAt: time.Now().UTC(),
			Note:      "Close position",
		}
		state, order = SimulateFill(state, order, top)
		orders = append(orders, order)
	}

	state = state.AppendLog(marketID, title, "Closed hedged position at top-of-book bids")
	return state, orders
}
