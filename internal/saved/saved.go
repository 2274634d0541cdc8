package saved

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/spigell/job-tracker/internal/jobs"
	"github.com/spigell/job-tracker/internal/storage"
)

// StorageKey is the key the saved job ids are persisted under.
const StorageKey = "savedJobs"

// Jobs is the set of job ids the user bookmarked, in the order they were saved.
// Every change is written through to the store.
type Jobs struct {
	store storage.Store
	ids   []int
}

// Load reads the saved set. A missing key is an empty set.
func Load(ctx context.Context, store storage.Store) (*Jobs, error) {
	saved := &Jobs{store: store, ids: []int{}}

	data, err := store.Get(ctx, StorageKey)
	if errors.Is(err, storage.ErrNotFound) {
		return saved, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load saved jobs: %w", err)
	}

	var ids []int
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("decode saved jobs: %w", err)
	}
	for _, id := range ids {
		if !slices.Contains(saved.ids, id) {
			saved.ids = append(saved.ids, id)
		}
	}

	return saved, nil
}

// Save adds id to the set. Saving an already saved job is a no-op.
func (s *Jobs) Save(ctx context.Context, id int) error {
	if s.IsSaved(id) {
		return nil
	}
	return s.persist(ctx, append(slices.Clone(s.ids), id))
}

func (s *Jobs) Unsave(ctx context.Context, id int) error {
	if !s.IsSaved(id) {
		return nil
	}
	next := slices.DeleteFunc(slices.Clone(s.ids), func(saved int) bool { return saved == id })
	return s.persist(ctx, next)
}

// Toggle flips the saved state of id and reports the new state. On error the
// state is unchanged and reported as is.
func (s *Jobs) Toggle(ctx context.Context, id int) (bool, error) {
	if s.IsSaved(id) {
		if err := s.Unsave(ctx, id); err != nil {
			return true, err
		}
		return false, nil
	}

	if err := s.Save(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Jobs) IsSaved(id int) bool {
	return slices.Contains(s.ids, id)
}

func (s *Jobs) IDs() []int {
	return slices.Clone(s.ids)
}

func (s *Jobs) Len() int {
	return len(s.ids)
}

// Select returns the saved jobs from items, keeping the order of items.
func (s *Jobs) Select(items []*jobs.Job) []*jobs.Job {
	selected := make([]*jobs.Job, 0, len(s.ids))
	for _, job := range items {
		if s.IsSaved(job.ID) {
			selected = append(selected, job)
		}
	}
	return selected
}

func (s *Jobs) persist(ctx context.Context, ids []int) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode saved jobs: %w", err)
	}
	if err := s.store.Set(ctx, StorageKey, data); err != nil {
		return fmt.Errorf("store saved jobs: %w", err)
	}
	s.ids = ids
	return nil
}
