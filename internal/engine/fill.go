// Package engine is the paper execution core: pure functions from
// (prior state, inputs) to a new state. No operation mutates its input,
// raises an error, or touches storage; all outcomes are expressed as
// order status plus the returned state.
package engine

import (
	"time"

	"github.com/alejandrodnm/polypaper/internal/domain"
)

// SimulateFill attempts to fill one order against a frozen snapshot.
//
// Fills are all-or-nothing: if the matching level is absent or its size is
// strictly less than the order size, the order stays OPEN and the state is
// returned unchanged. A compatible order fills unconditionally at the book's
// price (not the order's limit) for the full requested size.
func SimulateFill(state domain.PortfolioState, order domain.Order, top domain.TopOfBook) (domain.PortfolioState, domain.Order) {
	book := top.Outcome(order.Side)

	var level *domain.QuoteLevel
	if order.Action == domain.ActionBuy {
		level = book.Ask
	} else {
		level = book.Bid
	}

	if level == nil || level.Size < order.Size {
		order.Status = domain.StatusOpen
		return state, order
	}

	// Limit compatibility: a BUY must be willing to pay the ask,
	// a SELL must accept the bid.
	priceOK := order.Price >= level.Price
	if order.Action == domain.ActionSell {
		priceOK = order.Price <= level.Price
	}
	if !priceOK {
		order.Status = domain.StatusOpen
		return state, order
	}

	now := time.Now().UTC()
	order.Status = domain.StatusFilled
	order.FilledAt = &now
	order.Price = level.Price

	next := state.Clone()
	pos := next.PositionFor(order.MarketID, order.Note)

	if order.Action == domain.ActionBuy {
		next.Cash -= order.Price * order.Size
		if order.Side == domain.SideYes {
			pos.YesShares, pos.AveragePriceYes = applyBuy(pos.YesShares, pos.AveragePriceYes, order.Price, order.Size)
		} else {
			pos.NoShares, pos.AveragePriceNo = applyBuy(pos.NoShares, pos.AveragePriceNo, order.Price, order.Size)
		}
	} else {
		next.Cash += order.Price * order.Size
		if order.Side == domain.SideYes {
			pos.YesShares = clampShares(pos.YesShares - order.Size)
		} else {
			pos.NoShares = clampShares(pos.NoShares - order.Size)
		}
	}

	next.Positions[order.MarketID] = pos
	return next, order
}

// applyBuy returns the new share count and size-weighted average entry cost.
func applyBuy(shares, avg, price, size float64) (float64, float64) {
	totalCost := avg*shares + price*size
	newShares := shares + size
	return newShares, totalCost / newShares
}

// clampShares floors a share count at zero. An over-sell silently clamps
// rather than failing; proceeds were already credited at the fill price.
func clampShares(shares float64) float64 {
	if shares < 0 {
		return 0
	}
	return shares
}
