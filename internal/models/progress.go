package models

import "time"

// Progress is the persisted record of the learner's state. It is read once
// at startup and overwritten wholesale on every mutation.
type Progress struct {
	Stats            Stats                  `json:"stats"`
	Ledger           map[string]LedgerEntry `json:"ledger"`
	ActiveCategories []Category             `json:"activeCategories"`
	SessionNumber    int                    `json:"sessionNumber"`
}

// AnswerRecord is one row of the answer history.
type AnswerRecord struct {
	ID         int64     `json:"id"`
	ItemID     string    `json:"item_id"`
	Category   Category  `json:"category"`
	Correct    bool      `json:"correct"`
	BoxBefore  int       `json:"box_before"`
	BoxAfter   int       `json:"box_after"`
	Session    int       `json:"session"`
	AnsweredAt time.Time `json:"answered_at"`
}
