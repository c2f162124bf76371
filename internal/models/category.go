package models

import "fmt"

// Category identifies one of the fixed grammar topics an item belongs to.
type Category string

const (
	CategoryWechselpraepositionen Category = "wechselpraepositionen"
	CategoryDativVerben           Category = "dativ-verben"
	CategoryKasus                 Category = "kasus"
	CategoryKommasetzung          Category = "kommasetzung"
	CategoryWortstellung          Category = "wortstellung"
	CategoryAdjektivendungen      Category = "adjektivendungen"
	CategoryKonjunktivII          Category = "konjunktiv-ii"
	CategoryVergleiche            Category = "vergleiche"
	CategoryPassiv                Category = "passiv"
	CategoryRelativpronomen       Category = "relativpronomen"
)

// Categories lists every category in load order.
var Categories = []Category{
	CategoryWechselpraepositionen,
	CategoryDativVerben,
	CategoryKasus,
	CategoryKommasetzung,
	CategoryWortstellung,
	CategoryAdjektivendungen,
	CategoryKonjunktivII,
	CategoryVergleiche,
	CategoryPassiv,
	CategoryRelativpronomen,
}

var categoryNames = map[Category]string{
	CategoryWechselpraepositionen: "Wechselpräpositionen",
	CategoryDativVerben:           "Dativ-Verben",
	CategoryKasus:                 "Kasus (Fälle)",
	CategoryKommasetzung:          "Kommasetzung",
	CategoryWortstellung:          "Wortstellung",
	CategoryAdjektivendungen:      "Adjektivendungen",
	CategoryKonjunktivII:          "Konjunktiv II",
	CategoryVergleiche:            "Vergleiche",
	CategoryPassiv:                "Passiv",
	CategoryRelativpronomen:       "Relativpronomen",
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

// DisplayName returns the human readable topic name, or the slug itself for
// unknown categories.
func (c Category) DisplayName() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return string(c)
}

// ParseCategory converts a slug into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

// CategorySet is the set of categories the learner has enabled.
type CategorySet map[Category]struct{}

// NewCategorySet builds a set from the given categories.
func NewCategorySet(cats ...Category) CategorySet {
	set := make(CategorySet, len(cats))
	for _, c := range cats {
		set[c] = struct{}{}
	}
	return set
}

// AllCategories returns a set with every category enabled.
func AllCategories() CategorySet {
	return NewCategorySet(Categories...)
}

func (s CategorySet) Has(c Category) bool {
	_, ok := s[c]
	return ok
}

// Clone returns an independent copy of the set.
func (s CategorySet) Clone() CategorySet {
	out := make(CategorySet, len(s))
	for c := range s {
		out[c] = struct{}{}
	}
	return out
}

// List returns the members in canonical category order.
func (s CategorySet) List() []Category {
	out := make([]Category, 0, len(s))
	for _, c := range Categories {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}
