package models

// Item is one minimal pair: a grammatically correct sentence and its
// incorrect twin. Items are loaded once and never mutated.
type Item struct {
	ID          string   `json:"id"`
	Category    Category `json:"category"`
	Correct     string   `json:"correct"`
	Incorrect   string   `json:"incorrect"`
	Highlight   []string `json:"highlight"`
	Explanation string   `json:"explanation"`
}

// Slot is one of the two answer positions an item is presented in.
type Slot string

const (
	SlotA Slot = "A"
	SlotB Slot = "B"
)

func (s Slot) Valid() bool {
	return s == SlotA || s == SlotB
}

// Other returns the opposite slot.
func (s Slot) Other() Slot {
	if s == SlotA {
		return SlotB
	}
	return SlotA
}

// ExhaustedReason explains why no further item can be presented.
type ExhaustedReason string

const (
	ReasonNoActiveCategories ExhaustedReason = "noActiveCategories"
	ReasonAllDone            ExhaustedReason = "allDone"
)
