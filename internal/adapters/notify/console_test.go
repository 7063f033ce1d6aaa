package notify

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/polypaper/internal/domain"
)

func sampleOpps() []domain.Opportunity {
	return []domain.Opportunity{
		{
			MarketID: "m1", Title: "Will it rain tomorrow in Madrid?",
			YesAsk: 0.40, NoAsk: 0.55, BuyCost: 0.95, Edge: 0.05,
			YesAskSize: 50, NoAskSize: 50, ScannedAt: time.Now(),
		},
		{
			MarketID: "m2", Title: "Will the match be cancelled?",
			YesAsk: 0.70, NoAsk: 0.32, BuyCost: 1.02, Edge: -0.02,
			YesAskSize: 10, NoAskSize: 10, ScannedAt: time.Now(),
		},
	}
}

func TestNotifyOpportunities_Empty(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleWriter(&buf, false)

	require.NoError(t, c.NotifyOpportunities(context.Background(), nil))
	assert.Contains(t, buf.String(), "no opportunities found")
}

func TestNotifyOpportunities_CompactShowsBestEdgeFirst(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleWriter(&buf, false)

	require.NoError(t, c.NotifyOpportunities(context.Background(), sampleOpps()))

	out := buf.String()
	assert.Contains(t, out, "2 mkts")
	assert.Contains(t, out, "best edge 0.050")
	assert.Contains(t, out, "Will it rain tomorrow ...")
	assert.NotContains(t, out, "cancelled?", "negative-edge markets stay out of the compact line")
}

func TestNotifyOpportunities_TableListsAllMarkets(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleWriter(&buf, true)

	require.NoError(t, c.NotifyOpportunities(context.Background(), sampleOpps()))

	out := buf.String()
	assert.Contains(t, out, "0.950")
	assert.Contains(t, out, "+0.050")
	assert.Contains(t, out, "-0.020")
}

func TestNotifyPortfolio_SummaryLine(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleWriter(&buf, false)

	state := domain.NewPortfolio()
	state.Cash = 90.5
	state.Positions["m1"] = domain.Position{MarketID: "m1", Title: "t", YesShares: 10}

	require.NoError(t, c.NotifyPortfolio(context.Background(), state))
	assert.Contains(t, buf.String(), "cash $90.50")
	assert.Contains(t, buf.String(), "open positions 1")
}

func TestNotifyPortfolio_TableShowsPositionsAndActivity(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsoleWriter(&buf, true)

	state := domain.NewPortfolio()
	state.Positions["m1"] = domain.Position{
		MarketID: "m1", Title: "Will it rain?",
		YesShares: 10, NoShares: 10,
		AveragePriceYes: 0.40, AveragePriceNo: 0.55,
	}
	state = state.AppendLog("m1", "Will it rain?", "Opened hedged position")

	require.NoError(t, c.NotifyPortfolio(context.Background(), state))

	out := buf.String()
	assert.Contains(t, out, "Will it rain?")
	assert.Contains(t, out, "0.400")
	assert.Contains(t, out, "Opened hedged position")
}
