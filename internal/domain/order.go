package domain

import "time"

// Side is one of the two complementary outcomes of a binary market.
type Side string

const (
	SideYes Side = "YES"
	SideNo  Side = "NO"
)

// Action is the direction of an order.
type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
)

// OrderStatus represents the lifecycle of a simulated order.
// OPEN is the only non-terminal status; the other three are terminal.
type OrderStatus string

const (
	StatusOpen         OrderStatus = "OPEN"
	StatusFilled       OrderStatus = "FILLED"
	StatusCancelled    OrderStatus = "CANCELLED"
	StatusFailedAtomic OrderStatus = "FAILED_ATOMIC"
)

// Terminal reports whether the status admits no further transition.
func (s OrderStatus) Terminal() bool {
	return s != StatusOpen
}

// Order is a simulated limit order. It is created already carrying its limit
// price (the top-of-book price at proposal time) and is immutable except for
// status and fill metadata.
type Order struct {
	ID        string      `json:"id"`
	MarketID  string      `json:"marketId"`
	Side      Side        `json:"side"`
	Action    Action      `json:"action"`
	Price     float64     `json:"price"`
	Size      float64     `json:"size"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
	FilledAt  *time.Time  `json:"filledAt,omitempty"`
	Note      string      `json:"note,omitempty"`
}
