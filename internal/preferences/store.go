package preferences

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spigell/job-tracker/internal/storage"
)

// StorageKey is the key the profile is persisted under.
const StorageKey = "jobTrackerPreferences"

// ErrMalformed is returned by Load when the stored document is not a JSON object.
var ErrMalformed = errors.New("stored preferences are malformed")

// Load returns the stored profile or nil when no preferences were saved.
// Field level problems are reported through the error alongside a usable profile,
// the same way Decode does.
func Load(ctx context.Context, store storage.Store) (*Profile, error) {
	data, err := store.Get(ctx, StorageKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load preferences: %w", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if raw == nil {
		return nil, nil
	}

	return Decode(raw)
}

func Save(ctx context.Context, store storage.Store, profile *Profile) error {
	if profile == nil {
		return Clear(ctx, store)
	}

	data, err := json.Marshal(profile.ToMap())
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}

	if err := store.Set(ctx, StorageKey, data); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}

func Clear(ctx context.Context, store storage.Store) error {
	if err := store.Delete(ctx, StorageKey); err != nil {
		return fmt.Errorf("clear preferences: %w", err)
	}
	return nil
}
