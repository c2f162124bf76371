package quiz

import (
	"github.com/vytor/minimalpairs/internal/leitner"
	"github.com/vytor/minimalpairs/internal/models"
)

// Rebuild recomputes the session queue from the current state.
func (st *State) Rebuild(rng leitner.Rand) {
	st.Queue = leitner.BuildQueue(st.Store.All(), st.Ledger, st.Active, st.SessionNumber, st.Answered, rng)
}

// Next pops the next unanswered item off the queue. It returns nil once the
// queue is exhausted; the queue has to be rebuilt before it yields again.
func (st *State) Next() *models.Item {
	for len(st.Queue) > 0 {
		id := st.Queue[0]
		st.Queue = st.Queue[1:]
		if st.IsAnswered(id) {
			continue
		}
		it, ok := st.Store.Get(id)
		if !ok {
			continue
		}
		return &it
	}
	return nil
}

// StartNewSession begins the next session: answers are forgotten, the
// session counter advances and the queue is rebuilt.
func (st *State) StartNewSession(rng leitner.Rand) {
	st.Answered = make(map[string]struct{})
	st.SessionNumber++
	st.Rebuild(rng)
}

// ChangeCategories replaces the active categories and rebuilds the queue for
// the same session. It reports whether the item on display belongs to a
// category that is no longer active, in which case the caller should advance.
func (st *State) ChangeCategories(active models.CategorySet, rng leitner.Rand) bool {
	st.Active = active.Clone()
	st.Rebuild(rng)
	return st.Current != nil && !st.Active.Has(st.Current.Item.Category)
}

// ExhaustedReason tells an empty active set apart from a finished session.
func (st *State) ExhaustedReason() models.ExhaustedReason {
	if len(st.Active) == 0 {
		return models.ReasonNoActiveCategories
	}
	return models.ReasonAllDone
}

// ResetProgress forgets all learning progress: stats are zeroed, every item
// returns to box 1 as never reviewed and the session counter restarts.
// Active categories are kept.
func (st *State) ResetProgress(rng leitner.Rand) {
	st.Stats = models.NewStats()
	st.Ledger.Reset()
	st.Ledger.Ensure(st.Store.All())
	st.SessionNumber = FirstSession
	st.Answered = make(map[string]struct{})
	st.Current = nil
	st.Rebuild(rng)
}
