package render

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/sieginglion/polymarket/internal/events"
)

type CSVOptions struct {
	SiteURL string
	// Scored switches to Volume, Title, End Date, Event Score, URL with an
	// integer volume and a whole-percent score.
	Scored bool
}

var (
	csvHeader       = []string{"Volume", "End Date", "Event Name", "URL"}
	csvScoredHeader = []string{"Volume", "Title", "End Date", "Event Score", "URL"}
)

// CSV writes a header row followed by one row per event.
func CSV(w io.Writer, evs []events.Event, opts CSVOptions) error {
	cw := csv.NewWriter(w)

	header := csvHeader
	if opts.Scored {
		header = csvScoredHeader
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, e := range evs {
		var row []string
		if opts.Scored {
			row = []string{
				e.Volume.Truncate(0).String(),
				e.Title,
				e.EndDate,
				strconv.FormatInt(e.Score.Percent(), 10),
				e.URL(opts.SiteURL),
			}
		} else {
			row = []string{
				e.Volume.StringFixed(2),
				e.EndDate,
				e.Title,
				e.URL(opts.SiteURL),
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
