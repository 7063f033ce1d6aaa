package polymarket

import (
	"strings"

	"github.com/alejandrodnm/polypaper/internal/domain"
)

// mapGammaMarket converts a Gamma DTO to domain.Market.
func mapGammaMarket(gm gammaMarket) domain.Market {
	m := domain.Market{
		ID:       gm.ID,
		Question: gm.Question,
		Slug:     gm.Slug,
		Category: gm.Category,
		Closed:   gm.Closed,
		Outcomes: gm.Outcomes,
		Active:   true,
	}
	if gm.Active != nil {
		m.Active = *gm.Active
	}
	if v, err := gm.Volume.Float64(); err == nil {
		m.Volume = v
	}
	if v, err := gm.Liquidity.Float64(); err == nil {
		m.Liquidity = v
	}
	return m
}

// mapTopOfBook reduces raw levels to the best bid/ask per outcome.
func mapTopOfBook(book rawBook) domain.TopOfBook {
	var top domain.TopOfBook
	for _, level := range book.bids() {
		applyLevel(&top, level, true)
	}
	for _, level := range book.asks() {
		applyLevel(&top, level, false)
	}
	return top
}

// applyLevel folds one raw level into the top-of-book, keeping the highest
// bid and lowest ask per outcome. Levels without a price, size, or
// recognizable outcome are dropped.
func applyLevel(top *domain.TopOfBook, level rawLevel, isBid bool) {
	if !level.Price.Valid || !level.Size.Valid {
		return
	}
	side, ok := levelOutcome(level)
	if !ok {
		return
	}

	book := &top.Yes
	if side == domain.SideNo {
		book = &top.No
	}

	quote := &domain.QuoteLevel{Price: level.Price.Value, Size: level.Size.Value}
	if isBid {
		if book.Bid == nil || quote.Price > book.Bid.Price {
			book.Bid = quote
		}
	} else {
		if book.Ask == nil || quote.Price < book.Ask.Price {
			book.Ask = quote
		}
	}
}

// levelOutcome detects which outcome a level belongs to from whichever
// label field the endpoint populated.
func levelOutcome(level rawLevel) (domain.Side, bool) {
	text := level.Outcome
	if text == "" {
		text = level.Ticker
	}
	if text == "" {
		text = level.Side
	}
	text = strings.ToUpper(text)

	switch {
	case strings.Contains(text, "YES"), text == "1", text == "Y":
		return domain.SideYes, true
	case strings.Contains(text, "NO"), text == "0", text == "N":
		return domain.SideNo, true
	}
	return "", false
}
