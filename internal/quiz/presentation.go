package quiz

import (
	"github.com/vytor/minimalpairs/internal/leitner"
	"github.com/vytor/minimalpairs/internal/models"
)

// Presentation is an item as shown to the learner, with the correct
// sentence placed in one of the two answer slots.
type Presentation struct {
	Item        models.Item
	CorrectSlot models.Slot
}

// Present places the correct sentence of item in slot A or B with a fair
// coin flip.
func Present(item models.Item, rng leitner.Rand) Presentation {
	slot := models.SlotA
	if rng.IntN(2) == 1 {
		slot = models.SlotB
	}
	return Presentation{Item: item, CorrectSlot: slot}
}

// Text returns the sentence shown in slot.
func (p Presentation) Text(slot models.Slot) string {
	if slot == p.CorrectSlot {
		return p.Item.Correct
	}
	return p.Item.Incorrect
}

// Options returns the sentences in slot A and slot B.
func (p Presentation) Options() (a, b string) {
	return p.Text(models.SlotA), p.Text(models.SlotB)
}

func (p Presentation) IsCorrect(slot models.Slot) bool {
	return slot == p.CorrectSlot
}
