// Package render writes ranked events as a terminal table, CSV or JSON.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sieginglion/polymarket/internal/events"
)

type Format string

const (
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatCSV, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, csv or json)", s)
	}
}

// Options selects a format and carries what every format needs.
type Options struct {
	Format  Format
	Title   string
	SiteURL string
	Scored  bool
}

// Write renders evs in opts.Format.
func Write(w io.Writer, evs []events.Event, opts Options) error {
	switch opts.Format {
	case FormatCSV:
		return CSV(w, evs, CSVOptions{SiteURL: opts.SiteURL, Scored: opts.Scored})
	case FormatJSON:
		return JSON(w, evs, opts.SiteURL)
	case FormatTable, "":
		return Table(w, evs, TableOptions{Title: opts.Title, SiteURL: opts.SiteURL, Scored: opts.Scored})
	default:
		return fmt.Errorf("unknown output format %q", opts.Format)
	}
}

// USD formats d as $1,234,567.89.
func USD(d decimal.Decimal) string {
	fixed := d.Abs().StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if d.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// truncate shortens s to limit runes, ending in "..." when cut.
func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-3]) + "..."
}
