// Package events turns market listings into ranked events.
package events

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sieginglion/polymarket/internal/polymarket/gamma"
	"github.com/sieginglion/polymarket/internal/price"
)

const (
	unknownEventTitle  = "Unknown Event"
	unknownMarketTitle = "Unknown Market"
)

// Kind records whether an event was grouped by its event slug or stands for a single market.
type Kind int

const (
	KindEvent Kind = iota
	KindMarket
)

func (k Kind) pathSegment() string {
	if k == KindMarket {
		return "market"
	}
	return "event"
}

type Event struct {
	Title   string
	Slug    string
	Volume  decimal.Decimal
	EndDate string
	Kind    Kind
	Markets []gamma.Market
	// Score is set by Rank.
	Score price.Price
}

// URL links to the event page on siteURL, e.g. https://polymarket.com/event/{slug}.
func (e Event) URL(siteURL string) string {
	return strings.TrimRight(siteURL, "/") + "/" + e.Kind.pathSegment() + "/" + e.Slug
}
