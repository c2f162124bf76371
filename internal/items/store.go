package items

import (
	"slices"

	"github.com/vytor/minimalpairs/internal/logger"
	"github.com/vytor/minimalpairs/internal/models"
)

// Store is the immutable collection of quiz items. Items keep their load
// order, which is the tie-breaking order used by the scheduler.
type Store struct {
	items []models.Item
	byID  map[string]int
}

// NewStore builds a store from items. When ids collide the first item wins.
func NewStore(items []models.Item) *Store {
	s := &Store{
		items: make([]models.Item, 0, len(items)),
		byID:  make(map[string]int, len(items)),
	}
	for _, it := range items {
		if _, dup := s.byID[it.ID]; dup {
			logger.Default().WithPrefix("items").Warn("duplicate item id %q in %s, keeping first", it.ID, it.Category)
			continue
		}
		s.byID[it.ID] = len(s.items)
		s.items = append(s.items, it)
	}
	return s
}

// All returns every item in load order.
func (s *Store) All() []models.Item {
	return slices.Clone(s.items)
}

func (s *Store) Get(id string) (models.Item, bool) {
	i, ok := s.byID[id]
	if !ok {
		return models.Item{}, false
	}
	return s.items[i], true
}

func (s *Store) Len() int {
	return len(s.items)
}

// CountActive returns how many items belong to an active category.
func (s *Store) CountActive(active models.CategorySet) int {
	n := 0
	for _, it := range s.items {
		if active.Has(it.Category) {
			n++
		}
	}
	return n
}

// CountByCategory returns the number of items per category.
func (s *Store) CountByCategory() map[models.Category]int {
	out := make(map[models.Category]int)
	for _, it := range s.items {
		out[it.Category]++
	}
	return out
}
