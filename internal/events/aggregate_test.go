package events

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sieginglion/polymarket/internal/polymarket/gamma"
)

var testNow = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func vol(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func inEvent(id, endDate, eventSlug, eventTitle, eventVolume string) gamma.Market {
	return gamma.Market{
		ID:       id,
		Question: "question " + id,
		Slug:     "market-" + id,
		Volume:   vol("1"),
		EndDate:  endDate,
		Events:   []gamma.EventSummary{{Slug: eventSlug, Title: eventTitle, Volume: vol(eventVolume)}},
	}
}

func standalone(id, endDate, volume string) gamma.Market {
	return gamma.Market{
		ID:       id,
		Question: "question " + id,
		Slug:     "market-" + id,
		Volume:   vol(volume),
		EndDate:  endDate,
	}
}

func TestAggregateGroupsByEventSlug(t *testing.T) {
	markets := []gamma.Market{
		inEvent("1", "2026-10-20", "election", "Election", "900"),
		standalone("2", "2026-10-21", "50"),
		inEvent("3", "2026-10-22", "election", "Election (later)", "100"),
	}

	got := Aggregate(markets, 30, testNow)
	if len(got) != 2 {
		t.Fatalf("got %d events, want 2", len(got))
	}

	election := got[0]
	if election.Slug != "election" || election.Kind != KindEvent {
		t.Fatalf("first event = %+v", election)
	}
	if election.Title != "Election" || !election.Volume.Equal(vol("900")) || election.EndDate != "2026-10-20" {
		t.Errorf("first-seen fields not kept: %+v", election)
	}
	if len(election.Markets) != 2 {
		t.Errorf("election has %d markets, want 2", len(election.Markets))
	}

	single := got[1]
	if single.Slug != "market-2" || single.Kind != KindMarket || single.Title != "question 2" || !single.Volume.Equal(vol("50")) {
		t.Errorf("standalone event = %+v", single)
	}
}

func TestAggregateFirstWins(t *testing.T) {
	markets := []gamma.Market{
		inEvent("1", "2026-10-20", "cup", "Cup winner", "10"),
		inEvent("2", "2026-10-20", "cup", "Cup champion", "99999"),
	}

	got := Aggregate(markets, 30, testNow)
	if len(got) != 1 {
		t.Fatalf("got %d events, want 1", len(got))
	}
	if got[0].Title != "Cup winner" {
		t.Errorf("title = %q, want first seen", got[0].Title)
	}
	if !got[0].Volume.Equal(vol("10")) {
		t.Errorf("volume = %s, volumes must not be summed or replaced", got[0].Volume)
	}
}

func TestAggregateHorizon(t *testing.T) {
	markets := []gamma.Market{
		standalone("missing", "", "1"),
		standalone("garbage", "next week", "1"),
		standalone("timestamp", "2026-10-20T00:00:00Z", "1"),
		standalone("past", "2026-01-01", "1"),
		standalone("today", "2026-10-16", "1"),
		standalone("edge", "2026-10-23", "1"),
		standalone("beyond", "2026-10-24", "1"),
	}

	got := Aggregate(markets, 7, testNow)

	var slugs []string
	for _, e := range got {
		slugs = append(slugs, e.Slug)
	}
	want := []string{"market-past", "market-today", "market-edge"}
	if len(slugs) != len(want) {
		t.Fatalf("slugs = %v, want %v", slugs, want)
	}
	for i := range want {
		if slugs[i] != want[i] {
			t.Fatalf("slugs = %v, want %v", slugs, want)
		}
	}

	deadline := testNow.AddDate(0, 0, 7)
	for _, e := range got {
		end, err := time.Parse(gamma.DateLayout, e.EndDate)
		if err != nil || end.After(deadline) {
			t.Errorf("event %s ends %s, beyond horizon", e.Slug, e.EndDate)
		}
	}
}

func TestAggregateDropsKeyless(t *testing.T) {
	m := standalone("1", "2026-10-20", "5")
	m.Slug = ""
	m.Events = []gamma.EventSummary{{Title: "no slug"}}

	if got := Aggregate([]gamma.Market{m}, 30, testNow); len(got) != 0 {
		t.Fatalf("got %+v, want nothing", got)
	}
}

func TestAggregateEventWithoutSlugFallsBackToMarket(t *testing.T) {
	m := standalone("1", "2026-10-20", "5")
	m.Events = []gamma.EventSummary{{Title: "no slug", Volume: vol("100")}}

	got := Aggregate([]gamma.Market{m}, 30, testNow)
	if len(got) != 1 || got[0].Kind != KindMarket || !got[0].Volume.Equal(vol("5")) {
		t.Fatalf("got %+v", got)
	}
}

func TestAggregateDefaultTitles(t *testing.T) {
	ev := inEvent("1", "2026-10-20", "untitled-event", "", "1")
	mk := standalone("2", "2026-10-20", "1")
	mk.Question = ""

	got := Aggregate([]gamma.Market{ev, mk}, 30, testNow)
	if len(got) != 2 {
		t.Fatalf("got %d events", len(got))
	}
	if got[0].Title != "Unknown Event" {
		t.Errorf("event title = %q", got[0].Title)
	}
	if got[1].Title != "Unknown Market" {
		t.Errorf("market title = %q", got[1].Title)
	}
}

func TestAggregateNoDuplicateSlugs(t *testing.T) {
	markets := []gamma.Market{
		inEvent("1", "2026-10-18", "a", "A", "1"),
		standalone("2", "2026-10-18", "1"),
		inEvent("3", "2026-10-18", "b", "B", "1"),
		inEvent("4", "2026-10-18", "a", "A", "1"),
		standalone("2", "2026-10-18", "1"),
		inEvent("1", "2026-10-18", "a", "A", "1"),
	}

	got := Aggregate(markets, 30, testNow)
	seen := map[string]bool{}
	for _, e := range got {
		if seen[e.Slug] {
			t.Fatalf("duplicate slug %q", e.Slug)
		}
		seen[e.Slug] = true
	}
	if len(got) != 3 {
		t.Fatalf("got %d events, want 3", len(got))
	}
	if n := len(got[0].Markets); n != 2 {
		t.Errorf("event a has %d markets, want 2 (repeated market attached once)", n)
	}
	if n := len(got[1].Markets); n != 1 {
		t.Errorf("market-2 has %d markets, want 1", n)
	}
}

func TestEventURL(t *testing.T) {
	ev := Event{Slug: "us-election", Kind: KindEvent}
	if got := ev.URL("https://polymarket.com/"); got != "https://polymarket.com/event/us-election" {
		t.Errorf("event url = %q", got)
	}
	mk := Event{Slug: "will-it-rain", Kind: KindMarket}
	if got := mk.URL("https://polymarket.com"); got != "https://polymarket.com/market/will-it-rain" {
		t.Errorf("market url = %q", got)
	}
}
