package scanner

import (
	"sort"

	"github.com/alejandrodnm/polypaper/internal/domain"
)

// FilterConfig narrows which markets are worth a book fetch.
type FilterConfig struct {
	MinVolume float64
	TopN      int
}

// FilterMarkets keeps open markets above the volume floor, ordered by volume
// descending, truncated to the top N.
func FilterMarkets(markets []domain.Market, cfg FilterConfig) []domain.Market {
	kept := make([]domain.Market, 0, len(markets))
	for _, m := range markets {
		if !m.Open() {
			continue
		}
		if cfg.MinVolume > 0 && m.Volume < cfg.MinVolume {
			continue
		}
		kept = append(kept, m)
	}

	sort.Slice(kept, func(i, j int) bool { return kept[i].Volume > kept[j].Volume })

	if cfg.TopN > 0 && len(kept) > cfg.TopN {
		kept = kept[:cfg.TopN]
	}
	return kept
}
