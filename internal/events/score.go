package events

import (
	"strings"

	"github.com/sieginglion/polymarket/internal/polymarket/gamma"
	"github.com/sieginglion/polymarket/internal/price"
)

const yesOutcome = "yes"

// Score estimates how likely the event's leading outcome is, in [0, 1].
//
// A single-market event scores its highest outcome price. An event with
// several markets is treated as one yes/no market per candidate and scores
// the highest "Yes" price among them. Markets whose outcomes and prices differ
// in length are ignored.
func Score(e Event) price.Price {
	var best price.Price
	switch len(e.Markets) {
	case 0:
		return 0
	case 1:
		best = maxPrice(e.Markets[0].OutcomePrices)
	default:
		for _, m := range e.Markets {
			if p, ok := yesPrice(m); ok && p > best {
				best = p
			}
		}
	}
	return clamp(best)
}

func maxPrice(prices []price.Price) price.Price {
	var best price.Price
	for _, p := range prices {
		if p > best {
			best = p
		}
	}
	return best
}

// yesPrice returns the highest price paired with a "yes" outcome.
func yesPrice(m gamma.Market) (price.Price, bool) {
	if len(m.Outcomes) != len(m.OutcomePrices) {
		return 0, false
	}
	var (
		best  price.Price
		found bool
	)
	for i, outcome := range m.Outcomes {
		if !strings.EqualFold(strings.TrimSpace(outcome), yesOutcome) {
			continue
		}
		if !found || m.OutcomePrices[i] > best {
			best = m.OutcomePrices[i]
			found = true
		}
	}
	return best, found
}

func clamp(p price.Price) price.Price {
	switch {
	case p < 0:
		return 0
	case p > price.One:
		return price.One
	default:
		return p
	}
}
