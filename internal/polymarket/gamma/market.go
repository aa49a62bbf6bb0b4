package gamma

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sieginglion/polymarket/internal/price"
)

// DateLayout is the layout of market end dates (endDateIso).
const DateLayout = time.DateOnly

var (
	ErrMalformedRecord = errors.New("gamma: malformed market record")
	ErrMissingIdentity = errors.New("gamma: market record has neither id nor question")
)

// EventSummary is the event a market belongs to, as embedded in the market record.
type EventSummary struct {
	Slug   string
	Title  string
	Volume decimal.Decimal
}

type Market struct {
	ID       string
	Question string
	Slug     string
	Volume   decimal.Decimal
	// EndDate is expected as YYYY-MM-DD. Empty when the record has none.
	EndDate       string
	Outcomes      []string
	OutcomePrices []price.Price
	Events        []EventSummary
}

// Event returns the first embedded event, if any.
func (m Market) Event() (EventSummary, bool) {
	if len(m.Events) == 0 {
		return EventSummary{}, false
	}
	return m.Events[0], true
}

// ParseMarket decodes one raw listing record. Only a record that is not a JSON
// object, or that has neither id nor question, is rejected. Every other field
// falls back to its zero value when missing or malformed.
func ParseMarket(raw json.RawMessage) (Market, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return Market{}, fmt.Errorf("%w: not an object", ErrMalformedRecord)
	}

	m := Market{
		ID:       flexString(fields["id"]),
		Question: flexString(fields["question"]),
		Slug:     flexString(fields["slug"]),
	}
	if m.ID == "" && m.Question == "" {
		return Market{}, ErrMissingIdentity
	}

	m.Volume = volume(fields["volumeNum"])
	if m.Volume.IsZero() {
		m.Volume = volume(fields["volume"])
	}

	m.EndDate = flexString(fields["endDateIso"])
	if m.EndDate == "" {
		m.EndDate = dateFromTimestamp(flexString(fields["endDate"]))
	}

	m.Outcomes = stringList(fields["outcomes"])
	m.OutcomePrices = priceList(fields["outcomePrices"])
	m.Events = eventSummaries(fields["events"])

	return m, nil
}

// ParseMarkets parses every record and drops the ones ParseMarket rejects.
func ParseMarkets(raws []json.RawMessage, logger *slog.Logger) []Market {
	markets := make([]Market, 0, len(raws))
	for i, raw := range raws {
		m, err := ParseMarket(raw)
		if err != nil {
			logger.Debug("skipping market record", "index", i, "error", err)
			continue
		}
		markets = append(markets, m)
	}
	return markets
}

// flexString accepts a JSON string or number. Anything else is "".
func flexString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// volume accepts a JSON number or numeric string. Missing, malformed and
// negative values are zero.
func volume(raw json.RawMessage) decimal.Decimal {
	s := flexString(raw)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// stringList decodes a JSON array of strings, or a string holding one
// (the API double-encodes outcomes). Failures yield nil.
func stringList(raw json.RawMessage) []string {
	var list []string
	if err := decodeArray(raw, &list); err != nil {
		return nil
	}
	return list
}

// priceList decodes each element on its own; an unreadable element becomes 0.
func priceList(raw json.RawMessage) []price.Price {
	var elems []json.RawMessage
	if err := decodeArray(raw, &elems); err != nil {
		return nil
	}
	list := make([]price.Price, len(elems))
	for i, elem := range elems {
		var p price.Price
		if err := p.UnmarshalJSON(elem); err == nil {
			list[i] = p
		}
	}
	return list
}

func decodeArray(raw json.RawMessage, dst any) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return errors.New("empty")
	}
	if raw[0] == '"' {
		var encoded string
		if err := json.Unmarshal(raw, &encoded); err != nil {
			return err
		}
		raw = json.RawMessage(encoded)
	}
	return json.Unmarshal(raw, dst)
}

func eventSummaries(raw json.RawMessage) []EventSummary {
	var objs []map[string]json.RawMessage
	if err := json.Unmarshal(raw, &objs); err != nil {
		return nil
	}
	events := make([]EventSummary, 0, len(objs))
	for _, obj := range objs {
		events = append(events, EventSummary{
			Slug:   flexString(obj["slug"]),
			Title:  flexString(obj["title"]),
			Volume: volume(obj["volume"]),
		})
	}
	return events
}

// dateFromTimestamp reduces a YYYY-MM-DD or RFC 3339 value to its UTC date.
// Other values are passed through so that the aggregator rejects them.
func dateFromTimestamp(s string) string {
	if s == "" {
		return ""
	}
	if _, err := time.Parse(DateLayout, s); err == nil {
		return s
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC().Format(DateLayout)
	}
	return s
}
