package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	// InitialCash is the paper bankroll every fresh portfolio starts with.
	InitialCash = 100

	// maxHistory bounds the order and activity-log histories.
	maxHistory = 200
)

// Position is the simulated holding in one market. Shares never go negative;
// AveragePriceYes/No are meaningful only while the matching share count is > 0.
type Position struct {
	MarketID        string  `json:"marketId"`
	Title           string  `json:"title"`
	YesShares       float64 `json:"yesShares"`
	NoShares        float64 `json:"noShares"`
	AveragePriceYes float64 `json:"averagePriceYes"`
	AveragePriceNo  float64 `json:"averagePriceNo"`
}

// Open reports whether the position holds shares on either side.
func (p Position) Open() bool {
	return p.YesShares > 0 || p.NoShares > 0
}

// ActivityLogEntry is one line of the append-only audit trail.
type ActivityLogEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	MarketID  string    `json:"marketId"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	PnlImpact float64   `json:"pnlImpact,omitempty"`
}

// PortfolioState is the full simulated portfolio. It is a value: engine
// operations never mutate a state in place, they derive a new one from the
// previous state plus newly appended orders and logs.
type PortfolioState struct {
	Cash        float64             `json:"cash"`
	RealizedPnl float64             `json:"realizedPnl"`
	Positions   map[string]Position `json:"positions"`
	Orders      []Order             `json:"orders"`
	Logs        []ActivityLogEntry  `json:"logs"`
}

// NewPortfolio returns the default portfolio shape: $100 cash, nothing else.
func NewPortfolio() PortfolioState {
	return PortfolioState{
		Cash:      InitialCash,
		Positions: map[string]Position{},
		Orders:    []Order{},
		Logs:      []ActivityLogEntry{},
	}
}

// Clone returns a deep copy sharing nothing with the receiver.
func (s PortfolioState) Clone() PortfolioState {
	next := s
	next.Positions = make(map[string]Position, len(s.Positions))
	for id, pos := range s.Positions {
		next.Positions[id] = pos
	}
	next.Orders = append([]Order(nil), s.Orders...)
	next.Logs = append([]ActivityLogEntry(nil), s.Logs...)
	return next
}

// PositionFor returns the market's position, or a zeroed one if none exists.
func (s PortfolioState) PositionFor(marketID, title string) Position {
	if pos, ok := s.Positions[marketID]; ok {
		return pos
	}
	return Position{MarketID: marketID, Title: title}
}

// AppendLog derives a new state with the entry prepended, keeping the most
// recent maxHistory entries.
func (s PortfolioState) AppendLog(marketID, title, message string) PortfolioState {
	next := s.Clone()
	entry := ActivityLogEntry{
		ID:        uuid.New().String(),
		Timestamp: time.Now().UTC(),
		MarketID:  marketID,
		Title:     title,
		Message:   message,
	}
	next.Logs = append([]ActivityLogEntry{entry}, next.Logs...)
	if len(next.Logs) > maxHistory {
		next.Logs = next.Logs[:maxHistory]
	}
	return next
}

// RecordOrders derives a new state with the orders prepended most-recent-first,
// keeping the most recent maxHistory entries.
func (s PortfolioState) RecordOrders(orders ...Order) PortfolioState {
	if len(orders) == 0 {
		return s
	}
	next := s.Clone()
	next.Orders = append(append([]Order(nil), orders...), next.Orders...)
	if len(next.Orders) > maxHistory {
		next.Orders = next.Orders[:maxHistory]
	}
	return next
}

// OpenPositionCount returns the number of positions still holding shares.
func (s PortfolioState) OpenPositionCount() int {
	n := 0
	for _, pos := range s.Positions {
		if pos.Open() {
			n++
		}
	}
	return n
}

// Summary is the read-only projection of a portfolio.
type Summary struct {
	Cash          float64
	RealizedPnl   float64
	OpenPositions int
}
