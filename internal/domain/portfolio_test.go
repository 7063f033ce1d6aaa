package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPortfolio_Defaults(t *testing.T) {
	p := NewPortfolio()
	assert.InDelta(t, 100, p.Cash, 1e-9)
	assert.InDelta(t, 0, p.RealizedPnl, 1e-9)
	assert.Empty(t, p.Positions)
	assert.Empty(t, p.Orders)
	assert.Empty(t, p.Logs)
}

func TestClone_SharesNothing(t *testing.T) {
	p := NewPortfolio()
	p.Positions["mkt"] = Position{MarketID: "mkt", YesShares: 5}
	p = p.RecordOrders(Order{ID: "o1", Status: StatusFilled})

	c := p.Clone()
	c.Positions["mkt"] = Position{MarketID: "mkt", YesShares: 99}
	c.Orders[0].Status = StatusCancelled

	assert.InDelta(t, 5, p.Positions["mkt"].YesShares, 1e-9)
	assert.Equal(t, StatusFilled, p.Orders[0].Status)
}

func TestAppendLog_PrependsAndTruncates(t *testing.T) {
	p := NewPortfolio()
	for i := 0; i < 205; i++ {
		p = p.AppendLog("mkt", "t", fmt.Sprintf("entry %d", i))
	}

	require.Len(t, p.Logs, 200)
	assert.Equal(t, "entry 204", p.Logs[0].Message, "most recent first")
	assert.Equal(t, "entry 5", p.Logs[199].Message)
	assert.NotEmpty(t, p.Logs[0].ID)
}

func TestRecordOrders_PrependsAndTruncates(t *testing.T) {
	p := NewPortfolio()
	for i := 0; i < 102; i++ {
		p = p.RecordOrders(
			Order{ID: fmt.Sprintf("a%d", i)},
			Order{ID: fmt.Sprintf("b%d", i)},
		)
	}

	require.Len(t, p.Orders, 200)
	assert.Equal(t, "a101", p.Orders[0].ID)
	assert.Equal(t, "b101", p.Orders[1].ID)
}

func TestRecordOrders_EmptyIsNoOp(t *testing.T) {
	p := NewPortfolio()
	assert.Equal(t, p, p.RecordOrders())
}

func TestPositionFor_FallsBackToZeroed(t *testing.T) {
	p := NewPortfolio()
	pos := p.PositionFor("mkt", "Will it rain?")
	assert.Equal(t, "mkt", pos.MarketID)
	assert.Equal(t, "Will it rain?", pos.Title)
	assert.False(t, pos.Open())

	p.Positions["mkt"] = Position{MarketID: "mkt", Title: "existing", NoShares: 3}
	assert.Equal(t, "existing", p.PositionFor("mkt", "other").Title)
}

func TestOpenPositionCount(t *testing.T) {
	p := NewPortfolio()
	p.Positions["a"] = Position{MarketID: "a", YesShares: 1}
	p.Positions["b"] = Position{MarketID: "b", NoShares: 2}
	p.Positions["c"] = Position{MarketID: "c"}
	assert.Equal(t, 2, p.OpenPositionCount())
}
