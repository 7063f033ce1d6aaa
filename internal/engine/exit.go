package engine

import "github.com/alejandrodnm/polypaper/internal/domain"

// ComputeAutoExit reports whether an open hedge should be closed for profit.
//
// A fully hedged pair pays exactly 1 at resolution; once the observable exit
// value (yesBid + noBid, missing bids as 0) recovers that 1 net of a fee
// buffer, the position is worth closing. Advisory only: callers wire the
// signal to ClosePosition.
func ComputeAutoExit(pos *domain.Position, top domain.TopOfBook, exitFeeBuffer float64) bool {
	if pos == nil {
		return false
	}
	return top.SellValue() >= 1-exitFeeBuffer
}

// Summarize returns the read-only projection of a portfolio.
func Summarize(state domain.PortfolioState) domain.Summary {
	return domain.Summary{
		Cash:          state.Cash,
		RealizedPnl:   state.RealizedPnl,
		OpenPositions: state.OpenPositionCount(),
	}
}
