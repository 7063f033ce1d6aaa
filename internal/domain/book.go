package domain

// QuoteLevel is one side of the book: best price and the size resting at it.
type QuoteLevel struct {
	Price float64 `json:"price"`
	Size  float64 `json:"size"`
}

// BookSide holds the best bid and ask observed for one outcome.
// A nil level means no liquidity was observed, never price zero.
type BookSide struct {
	Bid *QuoteLevel `json:"bid,omitempty"`
	Ask *QuoteLevel `json:"ask,omitempty"`
}

// TopOfBook is the best bid/ask per outcome for one market at one instant.
type TopOfBook struct {
	Yes          BookSide `json:"yes"`
	No           BookSide `json:"no"`
	RequiresAuth bool     `json:"requiresAuth,omitempty"`
}

// Outcome returns the book side matching the given outcome.
func (t TopOfBook) Outcome(side Side) BookSide {
	if side == SideYes {
		return t.Yes
	}
	return t.No
}

// Edge returns 1 - (yesAsk + noAsk), the theoretical profit margin of buying
// both legs. ok is false when either ask is missing.
func (t TopOfBook) Edge() (edge float64, ok bool) {
	if t.Yes.Ask == nil || t.No.Ask == nil {
		return 0, false
	}
	return 1 - (t.Yes.Ask.Price + t.No.Ask.Price), true
}

// BuyCost returns yesAsk + noAsk, the cost of acquiring one hedged pair.
// ok is false when either ask is missing.
func (t TopOfBook) BuyCost() (cost float64, ok bool) {
	if t.Yes.Ask == nil || t.No.Ask == nil {
		return 0, false
	}
	return t.Yes.Ask.Price + t.No.Ask.Price, true
}

// SellValue returns yesBid + noBid, treating a missing bid as 0.
func (t TopOfBook) SellValue() float64 {
	var v float64
	if t.Yes.Bid != nil {
		v += t.Yes.Bid.Price
	}
	if t.No.Bid != nil {
		v += t.No.Bid.Price
	}
	return v
}

// Empty reports whether no level at all was observed.
func (t TopOfBook) Empty() bool {
	return t.Yes.Bid == nil && t.Yes.Ask == nil && t.No.Bid == nil && t.No.Ask == nil
}
