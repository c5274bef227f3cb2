package file

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aretw0/depsnap/pkg/domain"
	"github.com/aretw0/depsnap/pkg/snapshot"
)

const ext = ".json"

// Store implements ports.SnapshotStore using the local filesystem.
// Each snapshot is one JSON file whose name encodes the key.
type Store struct {
	BasePath string
}

// NewStore creates a new Store with the given base path.
// If basePath is empty, it defaults to ".depsnap/snapshots".
func NewStore(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".depsnap", "snapshots")
	}
	return &Store{BasePath: basePath}
}

// Keys hold path separators, so file names carry them base64url-encoded.
func (f *Store) path(key string) string {
	return filepath.Join(f.BasePath, base64.RawURLEncoding.EncodeToString([]byte(key))+ext)
}

// Save persists the snapshot to a JSON file.
func (f *Store) Save(ctx context.Context, key string, snap *snapshot.Snapshot) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}

	if err := os.MkdirAll(f.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure snapshot directory: %w", err)
	}

	data, err := json.MarshalIndent(snap.View(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	// Write then rename so readers never see a partial file.
	tmp, err := os.CreateTemp(f.BasePath, "snapshot-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path(key)); err != nil {
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}
	return nil
}

// Load retrieves the snapshot from its JSON file.
func (f *Store) Load(ctx context.Context, key string) (*snapshot.Snapshot, error) {
	if key == "" {
		return nil, fmt.Errorf("key cannot be empty")
	}

	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	var view snapshot.View
	if err := json.Unmarshal(data, &view); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return snapshot.FromView(view)
}

// Delete removes the snapshot file. Missing keys are not an error.
func (f *Store) Delete(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}

	err := os.Remove(f.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete snapshot file: %w", err)
	}
	return nil
}

// List returns the stored keys in ascending order.
func (f *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(f.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}

	keys := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ext) {
			continue
		}
		raw, err := base64.RawURLEncoding.DecodeString(strings.TrimSuffix(name, ext))
		if err != nil {
			// Not ours.
			continue
		}
		keys = append(keys, string(raw))
	}
	slices.Sort(keys)
	return keys, nil
}
