package functions

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/crowmatic/perch/internal/storage"
)

// MaxTestDataInlineLength is the largest test data payload delivered inline
// in a descriptor. Larger payloads are fetched out-of-band via testDataHref.
const MaxTestDataInlineLength = 4 * 1024

// TestDataCache lazily materializes per-function test data files. The file
// is created empty on first access; concurrent first-access races overwrite
// empty with empty and are benign.
type TestDataCache struct {
	store storage.Store
}

func NewTestDataCache(store storage.Store) *TestDataCache {
	return &TestDataCache{store: store}
}

// GetOrCreate returns the content of the test data file at path, creating it
// empty if absent. When capping is enabled and the content exceeds capLength,
// nil is returned and the caller is expected to expose an href instead.
// Storage failures propagate: silently losing an I/O fault here would hide a
// real problem, unlike the config resolution fallback.
func (c *TestDataCache) GetOrCreate(ctx context.Context, path string, cappingEnabled bool, capLength int) (*string, error) {
	exists, err := c.store.Exists(ctx, path)
	if err != nil {
		return nil, err
	}

	if !exists {
		if err := c.store.WriteFile(ctx, path, []byte{}); err != nil {
			return nil, err
		}
		log.Debug().Str("path", path).Msg("Created empty test data file")
	}

	data, err := c.store.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	if cappingEnabled && len(data) > capLength {
		log.Debug().Str("path", path).Int("length", len(data)).Int("cap", capLength).Msg("Test data exceeds inline cap")
		return nil, nil
	}

	content := string(data)
	return &content, nil
}
