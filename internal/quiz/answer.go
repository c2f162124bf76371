package quiz

import (
	"github.com/vytor/minimalpairs/internal/models"
)

// Outcome describes what an answer did to the item.
type Outcome struct {
	IsCorrect bool
	Before    models.LedgerEntry
	After     models.LedgerEntry
}

// Submit records the learner's choice of slot for p. The item must not have
// been answered in this session; callers guard against double submission.
// A correct answer promotes the item one box, a wrong one sends it back to
// box 1.
func Submit(st *State, p Presentation, slot models.Slot) Outcome {
	item := p.Item
	correct := p.IsCorrect(slot)
	out := Outcome{IsCorrect: correct, Before: st.Ledger.Peek(item.ID)}

	st.Answered[item.ID] = struct{}{}
	st.Stats.TotalAnswered++

	if correct {
		st.Stats.TotalCorrect++
		st.Stats.Streak++
		if st.Stats.Streak > st.Stats.MaxStreak {
			st.Stats.MaxStreak = st.Stats.Streak
		}
		out.After = st.Ledger.Promote(item.ID, st.SessionNumber)
	} else {
		st.Stats.Streak = 0
		out.After = st.Ledger.Demote(item.ID, st.SessionNumber)
	}

	if st.Stats.CategoryStats == nil {
		st.Stats.CategoryStats = make(map[models.Category]models.CategoryStat)
	}
	cs := st.Stats.CategoryStats[item.Category]
	cs.Total++
	if correct {
		cs.Correct++
	}
	st.Stats.CategoryStats[item.Category] = cs

	return out
}
