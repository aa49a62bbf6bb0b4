package events

import (
	"github.com/google/btree"

	"github.com/sieginglion/polymarket/internal/price"
)

type RankOptions struct {
	// MinScore drops events scoring below it. Nil keeps every event.
	MinScore *price.Price
	// Top caps the result size. Zero or negative keeps everything.
	Top int
}

// rankItem orders events by volume, highest first, then by input position.
type rankItem struct {
	seq   int
	event Event
}

func lessRanked(a, b rankItem) bool {
	if c := a.event.Volume.Cmp(b.event.Volume); c != 0 {
		return c > 0
	}
	return a.seq < b.seq
}

// Rank scores every event, applies MinScore, sorts by volume descending
// (ties keep input order) and truncates to Top. The input is not modified.
func Rank(evs []Event, opts RankOptions) []Event {
	tree := btree.NewG(32, lessRanked)

	for i, e := range evs {
		e.Score = Score(e)
		if opts.MinScore != nil && e.Score < *opts.MinScore {
			continue
		}
		tree.ReplaceOrInsert(rankItem{seq: i, event: e})
	}

	n := tree.Len()
	if opts.Top > 0 && opts.Top < n {
		n = opts.Top
	}

	ranked := make([]Event, 0, n)
	if n == 0 {
		return ranked
	}
	tree.Ascend(func(item rankItem) bool {
		ranked = append(ranked, item.event)
		return len(ranked) < n
	})
	return ranked
}
