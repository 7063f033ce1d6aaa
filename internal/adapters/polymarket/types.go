package polymarket

import (
	"bytes"
	"encoding/json"
)

// Raw DTOs for the Polymarket APIs. Only used inside this package;
// conversion to domain entities lives in mapping.go.

// --- Gamma API ---

// gammaMarketsEnvelope tolerates both response shapes Gamma has served:
// a bare array and an object wrapping it in "markets".
type gammaMarketsEnvelope struct {
	Markets []gammaMarket
}

func (e *gammaMarketsEnvelope) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, &e.Markets)
	}
	var wrapped struct {
		Markets []gammaMarket `json:"markets"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return err
	}
	e.Markets = wrapped.Markets
	return nil
}

// gammaMarket is a market listing. Gamma returns several numeric fields as
// JSON strings, hence json.Number.
type gammaMarket struct {
	ID        string      `json:"id"`
	Question  string      `json:"question"`
	Slug      string      `json:"slug"`
	Category  string      `json:"category"`
	Volume    json.Number `json:"volume"`
	Liquidity json.Number `json:"liquidity"`
	Active    *bool       `json:"active"`
	Closed    bool        `json:"closed"`
	Outcomes  []string    `json:"outcomes"`
}

// --- CLOB API ---

// rawBook is an order book response. Older and newer endpoint shapes nest
// the levels differently; mapping normalizes both.
type rawBook struct {
	Bids []rawLevel `json:"bids"`
	Bid  []rawLevel `json:"bid"`
	Asks []rawLevel `json:"asks"`
	Ask  []rawLevel `json:"ask"`
	Data *struct {
		Bids []rawLevel `json:"bids"`
		Asks []rawLevel `json:"asks"`
	} `json:"data"`
}

func (b rawBook) bids() []rawLevel {
	if b.Data != nil {
		return b.Data.Bids
	}
	if len(b.Bids) > 0 {
		return b.Bids
	}
	return b.Bid
}

func (b rawBook) asks() []rawLevel {
	if b.Data != nil {
		return b.Data.Asks
	}
	if len(b.Asks) > 0 {
		return b.Asks
	}
	return b.Ask
}

// rawLevel is one price level. Price and size arrive as either numbers or
// strings; the outcome is spelled in whichever of outcome/ticker/side the
// endpoint populates.
type rawLevel struct {
	Price   flexNumber `json:"price"`
	Size    flexNumber `json:"size"`
	Outcome string     `json:"outcome"`
	Ticker  string     `json:"ticker"`
	Side    string     `json:"side"`
}

// flexNumber decodes a JSON number or a numeric string. Valid reports
// whether a finite value was present at all; absence must never be read
// as price zero.
type flexNumber struct {
	Value float64
	Valid bool
}

func (f *flexNumber) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		trimmed = []byte(s)
	}
	v, err := json.Number(trimmed).Float64()
	if err != nil {
		// Tolerate junk levels instead of failing the whole book.
		return nil
	}
	f.Value = v
	f.Valid = true
	return nil
}
