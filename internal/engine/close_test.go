package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/polypaper/internal/domain"
)

// openHedged builds a state holding 10 YES @ 0.40 and 10 NO @ 0.55.
func openHedged(t *testing.T) domain.PortfolioState {
	t.Helper()
	state, orders := AttemptAtomicHedge(domain.NewPortfolio(), "mkt", "t", hedgeSnapshot(), 10, 0)
	require.Equal(t, domain.StatusFilled, orders[0].Status)
	require.Equal(t, domain.StatusFilled, orders[1].Status)
	return state
}

func TestClosePosition_NoPositionIsNoOp(t *testing.T) {
	state := domain.NewPortfolio()

	next, orders := ClosePosition(state, "mkt", "t", hedgeSnapshot())

	assert.Empty(t, orders)
	assert.Equal(t, state, next)
}

func TestClosePosition_SellsBothSidesAtBids(t *testing.T) {
	state := openHedged(t)
	top := domain.TopOfBook{
		Yes: domain.BookSide{Bid: level(0.45, 50)},
		No:  domain.BookSide{Bid: level(0.56, 50)},
	}

	next, orders := ClosePosition(state, "mkt", "t", top)

	require.Len(t, orders, 2)
	assert.Equal(t, domain.StatusFilled, orders[0].Status)
	assert.Equal(t, domain.StatusFilled, orders[1].Status)

	assert.InDelta(t, state.Cash+0.45*10+0.56*10, next.Cash, 1e-9)
	pos := next.Positions["mkt"]
	assert.False(t, pos.Open())

	require.NotEmpty(t, next.Logs)
	assert.Contains(t, next.Logs[0].Message, "Closed hedged position")
}

func TestClosePosition_OneSidedPositionSellsOneLeg(t *testing.T) {
	state := domain.NewPortfolio()
	buyTop := domain.TopOfBook{Yes: domain.BookSide{Ask: level(0.40, 50)}}
	state, _ = SimulateFill(state, buyOrder(domain.SideYes, 0.40, 10), buyTop)

	top := domain.TopOfBook{Yes: domain.BookSide{Bid: level(0.42, 50)}}
	next, orders := ClosePosition(state, "mkt", "t", top)

	require.Len(t, orders, 1)
	assert.Equal(t, domain.SideYes, orders[0].Side)
	assert.Equal(t, domain.StatusFilled, orders[0].Status)
	assert.InDelta(t, state.Cash+0.42*10, next.Cash, 1e-9)
}

func TestClosePosition_NoBidLeavesSellOpen(t *testing.T) {
	state := openHedged(t)
	top := domain.TopOfBook{
		Yes: domain.BookSide{Bid: level(0.45, 50)},
		// NO side has no bid: that leg cannot find a counter-price
	}

	next, orders := ClosePosition(state, "mkt", "t", top)

	require.Len(t, orders, 2)
	assert.Equal(t, domain.StatusFilled, orders[0].Status)
	assert.Equal(t, domain.StatusOpen, orders[1].Status)

	pos := next.Positions["mkt"]
	assert.InDelta(t, 0, pos.YesShares, 1e-9)
	assert.InDelta(t, 10, pos.NoShares, 1e-9, "unsellable leg keeps its shares")
}

func TestClosePosition_IdempotentSecondCall(t *testing.T) {
	state := openHedged(t)
	top := domain.TopOfBook{
		Yes: domain.BookSide{Bid: level(0.45, 50)},
		No:  domain.BookSide{Bid: level(0.56, 50)},
	}

	closed, orders := ClosePosition(state, "mkt", "t", top)
	require.Len(t, orders, 2)

	again, orders2 := ClosePosition(closed, "mkt", "t", top)
	assert.Empty(t, orders2)
	assert.Equal(t, closed, again, "second close must be a pure no-op")
}
