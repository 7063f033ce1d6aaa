package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/alejandrodnm/polypaper/internal/domain"
	"github.com/alejandrodnm/polypaper/internal/engine"
)

const (
	maxCompactOpps = 4
	maxLogLines    = 8
)

// Console implements ports.Notifier on stdout.
type Console struct {
	out   io.Writer
	table bool
}

// NewConsole creates a notifier that writes to stdout. With table=false it
// prints a compact one-liner per cycle instead of full tables.
func NewConsole(table bool) *Console {
	return &Console{out: os.Stdout, table: table}
}

// NewConsoleWriter creates a notifier for tests.
func NewConsoleWriter(w io.Writer, table bool) *Console {
	return &Console{out: w, table: table}
}

// NotifyOpportunities prints the cycle's scanned markets, best edge first.
func (c *Console) NotifyOpportunities(_ context.Context, opps []domain.Opportunity) error {
	if len(opps) == 0 {
		fmt.Fprintf(c.out, "[%s] no opportunities found\n", time.Now().Format("15:04:05"))
		return nil
	}

	sorted := append([]domain.Opportunity(nil), opps...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Edge > sorted[j].Edge })

	if c.table {
		c.printFull(sorted)
	} else {
		c.printCompact(sorted)
	}
	return nil
}

// printCompact prints the essentials in one line.
func (c *Console) printCompact(opps []domain.Opportunity) {
	now := time.Now().Format("15:04:05")
	fmt.Fprintf(c.out, "[%s] %d mkts, best edge %.3f", now, len(opps), opps[0].Edge)

	shown := 0
	for _, opp := range opps {
		if shown >= maxCompactOpps || opp.Edge <= 0 {
			break
		}
		fmt.Fprintf(c.out, " | %s edge %.3f cost %.3f",
			truncate(opp.Title, 25), opp.Edge, opp.BuyCost)
		shown++
	}
	fmt.Fprintln(c.out)
}

// printFull prints the per-market table.
func (c *Console) printFull(opps []domain.Opportunity) {
	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Market", "YES ask", "NO ask", "Cost", "Edge", "Ask sizes")

	for i, opp := range opps {
		table.Append(
			fmt.Sprintf("%d", i+1),
			truncate(opp.Title, 40),
			fmt.Sprintf("%.3f", opp.YesAsk),
			fmt.Sprintf("%.3f", opp.NoAsk),
			fmt.Sprintf("%.3f", opp.BuyCost),
			fmt.Sprintf("%+.3f", opp.Edge),
			fmt.Sprintf("%.0f/%.0f", opp.YesAskSize, opp.NoAskSize),
		)
	}
	table.Render()
}

// NotifyPortfolio prints the summary line, open positions and recent activity.
func (c *Console) NotifyPortfolio(_ context.Context, state domain.PortfolioState) error {
	sum := engine.Summarize(state)
	fmt.Fprintf(c.out, "portfolio: cash $%.2f | realized pnl $%.2f | open positions %d\n",
		sum.Cash, sum.RealizedPnl, sum.OpenPositions)

	if !c.table {
		return nil
	}

	if sum.OpenPositions > 0 {
		table := tablewriter.NewWriter(c.out)
		table.Header("Market", "YES", "Avg YES", "NO", "Avg NO")

		ids := make([]string, 0, len(state.Positions))
		for id := range state.Positions {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		for _, id := range ids {
			pos := state.Positions[id]
			if !pos.Open() {
				continue
			}
			table.Append(
				truncate(pos.Title, 40),
				fmt.Sprintf("%.1f", pos.YesShares),
				fmt.Sprintf("%.3f", pos.AveragePriceYes),
				fmt.Sprintf("%.1f", pos.NoShares),
				fmt.Sprintf("%.3f", pos.AveragePriceNo),
			)
		}
		table.Render()
	}

	for i, entry := range state.Logs {
		if i >= maxLogLines {
			break
		}
		fmt.Fprintf(c.out, "  %s %s: %s\n",
			entry.Timestamp.Format("15:04:05"), truncate(entry.Title, 30), entry.Message)
	}
	return nil
}

// truncate shortens s to maxLen runes with an ellipsis.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
