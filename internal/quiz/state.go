// Package quiz holds the scheduling core of the minimal pairs quiz: the
// learner's state and the operations that move it forward. Every operation
// works on an explicit *State; nothing in this package persists or notifies.
package quiz

import (
	"github.com/vytor/minimalpairs/internal/items"
	"github.com/vytor/minimalpairs/internal/leitner"
	"github.com/vytor/minimalpairs/internal/models"
)

// FirstSession is the session number of a learner without history.
const FirstSession = 1

// State is everything the quiz knows about the learner. Stats, Ledger,
// Active and SessionNumber are persisted; Answered, Queue and Current live
// only for the current run.
type State struct {
	Store         *items.Store
	Ledger        leitner.Ledger
	Stats         models.Stats
	Active        models.CategorySet
	SessionNumber int

	Answered map[string]struct{}
	Queue    []string
	Current  *Presentation
}

// NewState builds the state for store, applying saved progress over the
// defaults. A nil progress means a learner without history.
func NewState(store *items.Store, progress *models.Progress) *State {
	st := &State{
		Store:         store,
		Ledger:        leitner.Ledger{},
		Stats:         models.NewStats(),
		Active:        models.AllCategories(),
		SessionNumber: FirstSession,
		Answered:      make(map[string]struct{}),
	}

	if progress != nil {
		st.Stats = progress.Stats.Clone()
		if progress.Ledger != nil {
			st.Ledger = leitner.FromMap(progress.Ledger)
		}
		if progress.ActiveCategories != nil {
			st.Active = models.NewCategorySet()
			for _, c := range progress.ActiveCategories {
				if c.Valid() {
					st.Active[c] = struct{}{}
				}
			}
		}
		if progress.SessionNumber > 0 {
			st.SessionNumber = progress.SessionNumber
		}
	}

	st.Ledger.Ensure(store.All())
	return st
}

// Progress returns the persisted part of the state.
func (st *State) Progress() models.Progress {
	return models.Progress{
		Stats:            st.Stats.Clone(),
		Ledger:           st.Ledger.Map(),
		ActiveCategories: st.Active.List(),
		SessionNumber:    st.SessionNumber,
	}
}

// IsAnswered reports whether id was answered in the current session.
func (st *State) IsAnswered(id string) bool {
	_, ok := st.Answered[id]
	return ok
}

// BoxCounts returns how many active items sit in each box.
func (st *State) BoxCounts() [models.MaxBox]int {
	return st.Ledger.BoxCounts(st.Store.All(), st.Active)
}

// SessionProgress returns the number of items answered this session and the
// number of items in the active categories.
func (st *State) SessionProgress() (answered, total int) {
	return len(st.Answered), st.Store.CountActive(st.Active)
}
