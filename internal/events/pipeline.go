package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sieginglion/polymarket/internal/platform"
	"github.com/sieginglion/polymarket/internal/polymarket/gamma"
	"github.com/sieginglion/polymarket/internal/price"
)

type Params struct {
	// Limit is the number of market records requested from the source.
	Limit       int
	HorizonDays int
	MinScore    *price.Price
	Top         int
	// Now defaults to time.Now.
	Now func() time.Time
}

// Report is the outcome of one pipeline run.
type Report struct {
	RunID      string
	Fetched    int
	Parsed     int
	Aggregated int
	Events     []Event
	// FetchErr is set when the source failed; Events is then empty.
	FetchErr error
}

// Pipeline fetches markets once and reduces them to ranked events.
type Pipeline struct {
	source platform.MarketSource
	logger *slog.Logger
}

func NewPipeline(source platform.MarketSource, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		source: source,
		logger: logger.With("component", "pipeline"),
	}
}

// Run never fails: a source error is logged and yields an empty report.
func (p *Pipeline) Run(ctx context.Context, params Params) Report {
	now := time.Now
	if params.Now != nil {
		now = params.Now
	}
	started := now()

	report := Report{RunID: uuid.NewString()}
	log := p.logger.With("run_id", report.RunID)

	q := platform.Query{Limit: params.Limit}
	if params.HorizonDays > 0 {
		q.EndDateMax = endOfDay(started.UTC().AddDate(0, 0, params.HorizonDays))
	}

	raws, err := p.source.FetchMarkets(ctx, q)
	if err != nil {
		log.Warn("fetching markets failed, continuing with no data", "error", err)
		report.FetchErr = err
		raws = nil
	}
	report.Fetched = len(raws)

	markets := gamma.ParseMarkets(raws, log)
	report.Parsed = len(markets)

	grouped := Aggregate(markets, params.HorizonDays, started)
	report.Aggregated = len(grouped)

	report.Events = Rank(grouped, RankOptions{MinScore: params.MinScore, Top: params.Top})

	log.Info("report built",
		"fetched", report.Fetched,
		"parsed", report.Parsed,
		"events", report.Aggregated,
		"returned", len(report.Events),
	)
	return report
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, time.UTC)
}
