package render

import (
	"encoding/json"
	"io"

	"github.com/sieginglion/polymarket/internal/events"
)

type jsonMarket struct {
	ID            string    `json:"id"`
	Question      string    `json:"question"`
	Slug          string    `json:"slug,omitempty"`
	Outcomes      []string  `json:"outcomes"`
	OutcomePrices []float64 `json:"outcome_prices"`
}

type jsonEvent struct {
	Title   string       `json:"title"`
	Slug    string       `json:"slug"`
	Volume  string       `json:"volume"`
	EndDate string       `json:"end_date"`
	URL     string       `json:"url"`
	Score   float64      `json:"score"`
	Markets []jsonMarket `json:"markets"`
}

// JSON writes events as an indented JSON array.
func JSON(w io.Writer, evs []events.Event, siteURL string) error {
	out := make([]jsonEvent, 0, len(evs))
	for _, e := range evs {
		markets := make([]jsonMarket, 0, len(e.Markets))
		for _, m := range e.Markets {
			prices := make([]float64, len(m.OutcomePrices))
			for i, p := range m.OutcomePrices {
				prices[i] = p.Float64()
			}
			outcomes := m.Outcomes
			if outcomes == nil {
				outcomes = []string{}
			}
			markets = append(markets, jsonMarket{
				ID:            m.ID,
				Question:      m.Question,
				Slug:          m.Slug,
				Outcomes:      outcomes,
				OutcomePrices: prices,
			})
		}
		out = append(out, jsonEvent{
			Title:   e.Title,
			Slug:    e.Slug,
			Volume:  e.Volume.StringFixed(2),
			EndDate: e.EndDate,
			URL:     e.URL(siteURL),
			Score:   e.Score.Float64(),
			Markets: markets,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
