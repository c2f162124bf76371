package models

const (
	MinBox = 1
	MaxBox = 5
)

// LedgerEntry is the Leitner scheduling record of a single item.
// LastReviewedSession is 0 for items that were never reviewed.
type LedgerEntry struct {
	Box                 int `json:"box"`
	LastReviewedSession int `json:"lastReviewedSession"`
}

// NewLedgerEntry returns the record of an item that was never reviewed.
func NewLedgerEntry() LedgerEntry {
	return LedgerEntry{Box: MinBox, LastReviewedSession: 0}
}

// Normalize clamps the entry back into its valid range.
func (e LedgerEntry) Normalize() LedgerEntry {
	if e.Box < MinBox {
		e.Box = MinBox
	}
	if e.Box > MaxBox {
		e.Box = MaxBox
	}
	if e.LastReviewedSession < 0 {
		e.LastReviewedSession = 0
	}
	return e
}
