package leitner

import (
	"sort"

	"github.com/vytor/minimalpairs/internal/models"
)

// Rand is the random source used for shuffling. *rand.Rand from math/rand/v2
// satisfies it.
type Rand interface {
	IntN(n int) int
}

// BuildQueue returns the ids to present in session, in order: items due for
// review sorted by box (lowest first, ties in item order), followed by the
// never reviewed items in random order. Items of inactive categories, items
// already answered in this session, and items not yet due are left out.
// The ledger is not modified.
func BuildQueue(items []models.Item, ledger Ledger, active models.CategorySet, session int, answered map[string]struct{}, rng Rand) []string {
	var due, fresh []models.Item
	for _, it := range items {
		if !active.Has(it.Category) {
			continue
		}
		if _, ok := answered[it.ID]; ok {
			continue
		}
		e := ledger.Peek(it.ID)
		switch {
		case e.LastReviewedSession == 0:
			fresh = append(fresh, it)
		case IsDue(e, session):
			due = append(due, it)
		}
	}

	sort.SliceStable(due, func(i, j int) bool {
		return ledger.Peek(due[i].ID).Box < ledger.Peek(due[j].ID).Box
	})
	Shuffle(fresh, rng)

	queue := make([]string, 0, len(due)+len(fresh))
	for _, it := range due {
		queue = append(queue, it.ID)
	}
	for _, it := range fresh {
		queue = append(queue, it.ID)
	}
	return queue
}

// Shuffle permutes s in place with a Fisher–Yates shuffle.
func Shuffle[T any](s []T, rng Rand) {
	for i := len(s) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
