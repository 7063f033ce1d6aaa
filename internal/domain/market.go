package domain

// Market is the Gamma metadata for a binary prediction market.
type Market struct {
	ID        string
	Question  string
	Slug      string
	Category  string
	Volume    float64
	Liquidity float64
	Active    bool
	Closed    bool
	Outcomes  []string
}

// Open reports whether the market still trades.
func (m Market) Open() bool {
	return !m.Closed && m.Active
}

// Title returns the market question, falling back to the ID when Gamma
// returned no question text.
func (m Market) Title() string {
	if m.Question != "" {
		return m.Question
	}
	return m.ID
}
