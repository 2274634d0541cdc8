package saved

import (
	"context"
	"errors"
	"path/filepath"
	"slices"
	"testing"

	"github.com/spigell/job-tracker/internal/jobs"
	"github.com/spigell/job-tracker/internal/storage"
)

// failingStore rejects every write.
type failingStore struct {
	*storage.Memory
}

func (failingStore) Set(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func TestSaveUnsaveRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	stores := map[string]func(t *testing.T) storage.Store{
		"memory": func(*testing.T) storage.Store { return storage.NewMemory() },
		"sqlite": func(t *testing.T) storage.Store {
			store, err := storage.OpenSQLite(ctx, filepath.Join(t.TempDir(), "saved.db"))
			if err != nil {
				t.Fatalf("open sqlite: %v", err)
			}
			return store
		},
	}

	for name, open := range stores {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			store := open(t)
			defer store.Close()

			set, err := Load(ctx, store)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if set.Len() != 0 {
				t.Fatalf("expected empty set, got %v", set.IDs())
			}

			for _, id := range []int{3, 1, 3} {
				if err := set.Save(ctx, id); err != nil {
					t.Fatalf("save %d: %v", id, err)
				}
			}
			if !slices.Equal(set.IDs(), []int{3, 1}) {
				t.Fatalf("expected [3 1], got %v", set.IDs())
			}

			reloaded, err := Load(ctx, store)
			if err != nil {
				t.Fatalf("reload: %v", err)
			}
			if !slices.Equal(reloaded.IDs(), []int{3, 1}) {
				t.Fatalf("expected persisted [3 1], got %v", reloaded.IDs())
			}

			if err := reloaded.Unsave(ctx, 3); err != nil {
				t.Fatalf("unsave: %v", err)
			}
			if err := reloaded.Unsave(ctx, 42); err != nil {
				t.Fatalf("unsave unknown: %v", err)
			}
			if reloaded.IsSaved(3) || !reloaded.IsSaved(1) {
				t.Fatalf("unexpected state: %v", reloaded.IDs())
			}

			again, err := Load(ctx, store)
			if err != nil {
				t.Fatalf("load again: %v", err)
			}
			if !slices.Equal(again.IDs(), []int{1}) {
				t.Fatalf("expected persisted [1], got %v", again.IDs())
			}
		})
	}
}

func TestToggle(t *testing.T) {
	ctx := context.Background()
	set, err := Load(ctx, storage.NewMemory())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	state, err := set.Toggle(ctx, 5)
	if err != nil || !state {
		t.Fatalf("expected saved, got %v, %v", state, err)
	}
	state, err = set.Toggle(ctx, 5)
	if err != nil || state {
		t.Fatalf("expected unsaved, got %v, %v", state, err)
	}
}

func TestSelectKeepsCollectionOrder(t *testing.T) {
	ctx := context.Background()
	set, err := Load(ctx, storage.NewMemory())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for _, id := range []int{3, 1} {
		if err := set.Save(ctx, id); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	items := []*jobs.Job{{ID: 1}, {ID: 2}, {ID: 3}}
	selected := set.Select(items)
	if len(selected) != 2 || selected[0].ID != 1 || selected[1].ID != 3 {
		t.Fatalf("unexpected selection: %+v", selected)
	}
}

func TestLoadMalformed(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()
	if err := store.Set(ctx, StorageKey, []byte(`{"ids":[1]}`)); err != nil {
		t.Fatalf("set: %v", err)
	}

	if _, err := Load(ctx, store); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestFailedWriteKeepsState(t *testing.T) {
	ctx := context.Background()
	set, err := Load(ctx, failingStore{storage.NewMemory()})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if err := set.Save(ctx, 1); err == nil {
		t.Fatalf("expected write error")
	}
	if set.IsSaved(1) {
		t.Fatalf("state must not change when the write fails")
	}
}

func TestToggleFailedWriteReportsCurrentState(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mem := storage.NewMemory()
	if err := mem.Set(ctx, StorageKey, []byte("[7]")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	set, err := Load(ctx, failingStore{mem})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	state, err := set.Toggle(ctx, 7)
	if err == nil || !state || !set.IsSaved(7) {
		t.Fatalf("expected job 7 to stay saved, got state=%v err=%v", state, err)
	}

	state, err = set.Toggle(ctx, 8)
	if err == nil || state || set.IsSaved(8) {
		t.Fatalf("expected job 8 to stay unsaved, got state=%v err=%v", state, err)
	}
}
