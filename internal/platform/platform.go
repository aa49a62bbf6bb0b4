// Package platform describes what the report pipeline needs from a prediction market platform.
package platform

import (
	"context"
	"encoding/json"
	"time"
)

// Query bounds a single listing request.
type Query struct {
	Limit int
	// EndDateMax is an upper bound on market end dates. Zero means unbounded.
	EndDateMax time.Time
}

// MarketSource lists open markets ordered by volume, one raw JSON record per market.
type MarketSource interface {
	FetchMarkets(ctx context.Context, q Query) ([]json.RawMessage, error)
}
