package items

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vytor/minimalpairs/internal/logger"
	"github.com/vytor/minimalpairs/internal/models"
	"github.com/vytor/minimalpairs/internal/worker"
)

// document is the on-disk shape of one category file. The category itself
// is implied by the file name.
type document struct {
	Items []struct {
		ID          string   `json:"id"`
		Correct     string   `json:"correct"`
		Incorrect   string   `json:"incorrect"`
		Highlight   []string `json:"highlight"`
		Explanation string   `json:"explanation"`
	} `json:"items"`
}

// Loader reads the item documents of all categories.
type Loader struct {
	source  Source
	workers int
}

func NewLoader(source Source, workers int) *Loader {
	return &Loader{source: source, workers: workers}
}

// Load reads every category and returns the resulting store. A category whose
// document is missing or malformed contributes no items; Load itself never
// fails.
func (l *Loader) Load(ctx context.Context) *Store {
	log := logger.FromContext(ctx).WithPrefix("items")
	start := time.Now()

	results := make([][]models.Item, len(models.Categories))

	pool := worker.NewPool(l.workers, len(models.Categories))
	pool.Start(ctx)
	for i, cat := range models.Categories {
		job := &loadJob{source: l.source, category: cat, out: &results[i]}
		if err := pool.Submit(job); err != nil {
			log.Warn("could not schedule %s: %v", cat, err)
		}
	}
	if ctx.Err() != nil {
		log.Warn("loading cancelled: %v", ctx.Err())
		pool.Stop()
	} else {
		pool.Close()
	}

	var all []models.Item
	for _, res := range results {
		all = append(all, res...)
	}
	store := NewStore(all)
	log.Info("loaded %d items from %d categories in %v", store.Len(), len(models.Categories), time.Since(start))
	return store
}

type loadJob struct {
	source   Source
	category models.Category
	out      *[]models.Item
}

func (j *loadJob) Name() string {
	return "load:" + string(j.category)
}

func (j *loadJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("category", j.category)

	items, err := readCategory(ctx, j.source, j.category)
	if err != nil {
		return err
	}
	*j.out = items
	log.Debug("loaded %d items", len(items))
	return nil
}

func readCategory(ctx context.Context, source Source, category models.Category) ([]models.Item, error) {
	rc, err := source.Open(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", category, err)
	}
	defer rc.Close()

	var doc document
	if err := json.NewDecoder(rc).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", category, err)
	}

	items := make([]models.Item, 0, len(doc.Items))
	for _, raw := range doc.Items {
		if raw.ID == "" {
			logger.FromContext(ctx).Warn("skipping item without id in %s", category)
			continue
		}
		items = append(items, models.Item{
			ID:          raw.ID,
			Category:    category,
			Correct:     raw.Correct,
			Incorrect:   raw.Incorrect,
			Highlight:   raw.Highlight,
			Explanation: raw.Explanation,
		})
	}
	return items, nil
}
