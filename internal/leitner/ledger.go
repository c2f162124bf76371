package leitner

import (
	"github.com/vytor/minimalpairs/internal/models"
)

// reviewIntervals holds the number of sessions that must pass before an item
// in box i+1 is due again.
var reviewIntervals = [models.MaxBox]int{1, 2, 4, 8, 16}

// ReviewInterval returns the session interval for box. Boxes outside the
// valid range are clamped.
func ReviewInterval(box int) int {
	e := models.LedgerEntry{Box: box}.Normalize()
	return reviewIntervals[e.Box-1]
}

// IsDue reports whether a previously reviewed entry should be reviewed again
// in session. Entries that were never reviewed are new, not due.
func IsDue(e models.LedgerEntry, session int) bool {
	if e.LastReviewedSession == 0 {
		return false
	}
	return session-e.LastReviewedSession >= ReviewInterval(e.Box)
}

// Ledger maps item ids to their scheduling record.
type Ledger map[string]*models.LedgerEntry

// FromMap builds a ledger from persisted entries, clamping invalid values.
func FromMap(entries map[string]models.LedgerEntry) Ledger {
	l := make(Ledger, len(entries))
	for id, e := range entries {
		n := e.Normalize()
		l[id] = &n
	}
	return l
}

// Map returns a copy of the ledger suitable for persistence.
func (l Ledger) Map() map[string]models.LedgerEntry {
	out := make(map[string]models.LedgerEntry, len(l))
	for id, e := range l {
		out[id] = *e
	}
	return out
}

// Entry returns the record for id, creating a fresh one on first access.
func (l Ledger) Entry(id string) *models.LedgerEntry {
	if e, ok := l[id]; ok {
		return e
	}
	e := models.NewLedgerEntry()
	l[id] = &e
	return &e
}

// Peek returns the record for id without creating it.
func (l Ledger) Peek(id string) models.LedgerEntry {
	if e, ok := l[id]; ok {
		return *e
	}
	return models.NewLedgerEntry()
}

// Ensure creates records for every item that has none yet.
func (l Ledger) Ensure(items []models.Item) {
	for _, it := range items {
		l.Entry(it.ID)
	}
}

// Promote moves the item one box up (capped at the last box) and marks it
// reviewed in session.
func (l Ledger) Promote(id string, session int) models.LedgerEntry {
	e := l.Entry(id)
	if e.Box < models.MaxBox {
		e.Box++
	}
	e.LastReviewedSession = session
	return *e
}

// Demote sends the item back to the first box and marks it reviewed in
// session. All earlier promotion credit is lost.
func (l Ledger) Demote(id string, session int) models.LedgerEntry {
	e := l.Entry(id)
	e.Box = models.MinBox
	e.LastReviewedSession = session
	return *e
}

// Reset forgets every record.
func (l Ledger) Reset() {
	for id := range l {
		delete(l, id)
	}
}

// BoxCounts counts the items of the active categories per box.
// Index 0 holds box 1.
func (l Ledger) BoxCounts(items []models.Item, active models.CategorySet) [models.MaxBox]int {
	var counts [models.MaxBox]int
	for _, it := range items {
		if !active.Has(it.Category) {
			continue
		}
		counts[l.Peek(it.ID).Box-1]++
	}
	return counts
}
