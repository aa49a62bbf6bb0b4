package render

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/sieginglion/polymarket/internal/events"
)

const maxTitleRunes = 60

type TableOptions struct {
	// Title is printed above the table. Empty omits it.
	Title   string
	SiteURL string
	// Scored adds a Score column.
	Scored bool
}

// Table writes events as aligned columns: Volume, End Date, Event Name, URL.
func Table(w io.Writer, evs []events.Event, opts TableOptions) error {
	if opts.Title != "" {
		if _, err := fmt.Fprintf(w, "%s\n\n", opts.Title); err != nil {
			return err
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := "Volume\tEnd Date\tEvent Name\tURL"
	if opts.Scored {
		header = "Volume\tEnd Date\tScore\tEvent Name\tURL"
	}
	if _, err := fmt.Fprintln(tw, header); err != nil {
		return err
	}

	for _, e := range evs {
		name := truncate(e.Title, maxTitleRunes)
		var err error
		if opts.Scored {
			_, err = fmt.Fprintf(tw, "%s\t%s\t%d%%\t%s\t%s\n",
				USD(e.Volume), e.EndDate, e.Score.Percent(), name, e.URL(opts.SiteURL))
		} else {
			_, err = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
				USD(e.Volume), e.EndDate, name, e.URL(opts.SiteURL))
		}
		if err != nil {
			return err
		}
	}

	return tw.Flush()
}

// DefaultTitle is the heading used by the CLI.
func DefaultTitle(top int, scored bool) string {
	if scored {
		return fmt.Sprintf("Top %d Polymarket Events (Volume, Scored)", top)
	}
	return fmt.Sprintf("Top %d Polymarket Events (Volume)", top)
}
