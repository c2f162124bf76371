package testutil

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vytor/minimalpairs/internal/db"
	"github.com/vytor/minimalpairs/internal/items"
	"github.com/vytor/minimalpairs/internal/models"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// It is closed when the test ends.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()
	database, err := db.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

// NewRand returns a deterministic random source.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Item builds a quiz item whose sentences are derived from id.
func Item(id string, category models.Category) models.Item {
	return models.Item{
		ID:          id,
		Category:    category,
		Correct:     id + ": richtig",
		Incorrect:   id + ": falsch",
		Highlight:   []string{id},
		Explanation: "explanation of " + id,
	}
}

// NewStore builds an item store holding two kasus items and one passiv item.
func NewStore() *items.Store {
	return items.NewStore([]models.Item{
		Item("kasus-1", models.CategoryKasus),
		Item("kasus-2", models.CategoryKasus),
		Item("passiv-1", models.CategoryPassiv),
	})
}
