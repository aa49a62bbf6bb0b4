package events

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sieginglion/polymarket/internal/polymarket/gamma"
	"github.com/sieginglion/polymarket/pkg/hashset"
)

// Aggregate groups markets ending within horizonDays of now into events.
//
// Markets are keyed by their embedded event slug, or by their own slug when
// they carry no event. The first market seen for a key decides the event's
// title, volume and end date; later markets under the same key are only
// attached to Markets. Events come back in first-seen order.
func Aggregate(markets []gamma.Market, horizonDays int, now time.Time) []Event {
	deadline := now.UTC().AddDate(0, 0, horizonDays)

	var out []Event
	index := make(map[string]int)
	attached := hashset.New[string](len(markets))

	for _, m := range markets {
		if !withinHorizon(m.EndDate, deadline) {
			continue
		}

		ev, ok := representative(m)
		if !ok {
			continue
		}

		member := ev.Slug + "\x00" + m.ID
		if i, seen := index[ev.Slug]; seen {
			// The listing can repeat a market; attach it once.
			if m.ID == "" || attached.AddNew(member) {
				out[i].Markets = append(out[i].Markets, m)
			}
			continue
		}

		attached.Add(member)
		ev.Markets = []gamma.Market{m}
		index[ev.Slug] = len(out)
		out = append(out, ev)
	}

	return out
}

// withinHorizon reports whether endDate is a YYYY-MM-DD date (UTC midnight)
// not after deadline.
func withinHorizon(endDate string, deadline time.Time) bool {
	if endDate == "" {
		return false
	}
	end, err := time.ParseInLocation(gamma.DateLayout, endDate, time.UTC)
	if err != nil {
		return false
	}
	return !end.After(deadline)
}

// representative builds the event a market contributes when it is the first
// of its group. ok is false when the market has no grouping key.
func representative(m gamma.Market) (ev Event, ok bool) {
	if summary, has := m.Event(); has && summary.Slug != "" {
		return Event{
			Title:   orDefault(summary.Title, unknownEventTitle),
			Slug:    summary.Slug,
			Volume:  orZero(summary.Volume),
			EndDate: m.EndDate,
			Kind:    KindEvent,
		}, true
	}

	if m.Slug == "" {
		return Event{}, false
	}
	return Event{
		Title:   orDefault(m.Question, unknownMarketTitle),
		Slug:    m.Slug,
		Volume:  orZero(m.Volume),
		EndDate: m.EndDate,
		Kind:    KindMarket,
	}, true
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func orZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
