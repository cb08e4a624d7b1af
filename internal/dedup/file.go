package dedup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
)

// FileStore is the durable local dedup tier: an in-memory set of processed
// event ids backed by a JSON-array file. The file is loaded once at startup
// and rewritten wholesale on every mark, so a crash right after MarkProcessed
// cannot lose the mark.
type FileStore struct {
	path string

	mu  sync.Mutex
	ids map[string]struct{}
}

// NewFileStore loads the processed-event set from path, creating an empty
// store when the file does not exist yet.
func NewFileStore(path string) (*FileStore, error) {
	store := &FileStore{
		path: path,
		ids:  make(map[string]struct{}),
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return store, nil
		}
		return nil, fmt.Errorf("read dedup file: %w", err)
	}

	var ids []string
	if err := json.Unmarshal(content, &ids); err != nil {
		return nil, fmt.Errorf("decode dedup file: %w", err)
	}
	for _, id := range ids {
		store.ids[id] = struct{}{}
	}
	return store, nil
}

// IsProcessed reports whether eventID was already marked.
func (s *FileStore) IsProcessed(_ context.Context, eventID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[eventID]
	return ok, nil
}

// MarkProcessed records eventID and flushes the full set to disk before
// returning. The raw payload is not persisted locally; presence is enough.
func (s *FileStore) MarkProcessed(_ context.Context, eventID string, _ []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ids[eventID] = struct{}{}
	return s.flushLocked()
}

func (s *FileStore) flushLocked() error {
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	content, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode dedup file: %w", err)
	}
	if err := os.WriteFile(s.path, content, 0o600); err != nil {
		return fmt.Errorf("write dedup file: %w", err)
	}
	return nil
}
