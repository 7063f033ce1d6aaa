package domain

import "time"

// Opportunity is one market whose books were scanned in a cycle, with the
// hedge economics computed from the snapshot.
type Opportunity struct {
	MarketID   string
	Title      string
	BuyCost    float64 // yesAsk + noAsk
	Edge       float64 // 1 - BuyCost
	YesAsk     float64
	NoAsk      float64
	YesAskSize float64
	NoAskSize  float64
	Top        TopOfBook // snapshot the numbers were computed from
	ScannedAt  time.Time
}
