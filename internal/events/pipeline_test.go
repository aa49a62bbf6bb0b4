package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/sieginglion/polymarket/internal/platform"
	"github.com/sieginglion/polymarket/internal/price"
)

type fakeSource struct {
	records []string
	err     error
	got     platform.Query
}

func (f *fakeSource) FetchMarkets(_ context.Context, q platform.Query) ([]json.RawMessage, error) {
	f.got = q
	if f.err != nil {
		return nil, f.err
	}
	raws := make([]json.RawMessage, len(f.records))
	for i, r := range f.records {
		raws[i] = json.RawMessage(r)
	}
	return raws, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixedNow() time.Time { return testNow }

func TestPipelineRun(t *testing.T) {
	source := &fakeSource{records: []string{
		`{"id": "1", "question": "A wins?", "slug": "a-wins", "endDateIso": "2026-10-30", "outcomes": "[\"Yes\",\"No\"]", "outcomePrices": "[\"0.6\",\"0.4\"]", "events": [{"slug": "race", "title": "Race", "volume": "500"}]}`,
		`{"id": "2", "question": "B wins?", "slug": "b-wins", "endDateIso": "2026-10-30", "outcomes": "[\"Yes\",\"No\"]", "outcomePrices": "[\"0.9\",\"0.1\"]", "events": [{"slug": "race", "title": "Race", "volume": "500"}]}`,
		`{"id": "3", "question": "Rain?", "slug": "rain", "volumeNum": 800, "endDateIso": "2026-10-18", "outcomes": "[\"Yes\",\"No\"]", "outcomePrices": "[\"0.3\",\"0.7\"]"}`,
		`{"id": "4", "question": "No date", "slug": "no-date", "volumeNum": 9000}`,
		`{"id": "5", "question": "Far away", "slug": "far", "volumeNum": 9000, "endDateIso": "2027-06-01"}`,
		`"not a record"`,
	}}

	p := NewPipeline(source, discardLogger())
	report := p.Run(context.Background(), Params{Limit: 500, HorizonDays: 30, Top: 16, Now: fixedNow})

	if report.FetchErr != nil {
		t.Fatalf("unexpected fetch error: %v", report.FetchErr)
	}
	if report.RunID == "" {
		t.Error("run id missing")
	}
	if report.Fetched != 6 || report.Parsed != 5 || report.Aggregated != 2 {
		t.Errorf("counts = %d/%d/%d, want 6/5/2", report.Fetched, report.Parsed, report.Aggregated)
	}
	if len(report.Events) != 2 {
		t.Fatalf("got %d events, want 2", len(report.Events))
	}
	if report.Events[0].Slug != "rain" || report.Events[1].Slug != "race" {
		t.Errorf("order = %s, %s", report.Events[0].Slug, report.Events[1].Slug)
	}
	if report.Events[0].Score != 700_000 || report.Events[1].Score != 900_000 {
		t.Errorf("scores = %s, %s", report.Events[0].Score, report.Events[1].Score)
	}

	if source.got.Limit != 500 {
		t.Errorf("limit = %d", source.got.Limit)
	}
	wantMax := time.Date(2026, 11, 15, 23, 59, 59, 0, time.UTC)
	if !source.got.EndDateMax.Equal(wantMax) {
		t.Errorf("end date max = %s, want %s", source.got.EndDateMax, wantMax)
	}
}

func TestPipelineMinScore(t *testing.T) {
	source := &fakeSource{records: []string{
		`{"id": "1", "slug": "sure", "volumeNum": 10, "endDateIso": "2026-10-20", "outcomes": ["Yes","No"], "outcomePrices": ["0.95","0.05"]}`,
		`{"id": "2", "slug": "toss", "volumeNum": 20, "endDateIso": "2026-10-20", "outcomes": ["Yes","No"], "outcomePrices": ["0.5","0.5"]}`,
	}}
	minScore := price.FromFloat(0.8)

	report := NewPipeline(source, discardLogger()).Run(context.Background(), Params{
		Limit: 10, HorizonDays: 30, MinScore: &minScore, Top: 16, Now: fixedNow,
	})
	if len(report.Events) != 1 || report.Events[0].Slug != "sure" {
		t.Fatalf("got %+v", report.Events)
	}
}

func TestPipelineFetchFailureYieldsEmptyReport(t *testing.T) {
	source := &fakeSource{err: errors.New("connection refused")}

	report := NewPipeline(source, discardLogger()).Run(context.Background(), Params{Limit: 10, HorizonDays: 30, Top: 16})
	if report.FetchErr == nil {
		t.Error("fetch error not reported")
	}
	if len(report.Events) != 0 || report.Fetched != 0 {
		t.Errorf("report = %+v, want empty", report)
	}
}

func TestPipelineEmptyInput(t *testing.T) {
	report := NewPipeline(&fakeSource{}, discardLogger()).Run(context.Background(), Params{Limit: 10, HorizonDays: 30, Top: 16})
	if report.FetchErr != nil || len(report.Events) != 0 {
		t.Fatalf("report = %+v", report)
	}
}

func TestPipelineZeroHorizonSendsNoBound(t *testing.T) {
	source := &fakeSource{}
	NewPipeline(source, discardLogger()).Run(context.Background(), Params{Limit: 10, Top: 16, Now: fixedNow})
	if !source.got.EndDateMax.IsZero() {
		t.Errorf("end date max = %s, want zero", source.got.EndDateMax)
	}
}
