package hub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// InMemoryWidgetStore keeps widgets in process memory.
type InMemoryWidgetStore struct {
	mu      sync.RWMutex
	widgets []WidgetConfig
}

// NewInMemoryWidgetStore creates a store seeded with widgets.
func NewInMemoryWidgetStore(widgets ...WidgetConfig) *InMemoryWidgetStore {
	return &InMemoryWidgetStore{widgets: cloneWidgets(widgets)}
}

// Load returns a copy of the stored widgets.
func (s *InMemoryWidgetStore) Load(_ context.Context) ([]WidgetConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneWidgets(s.widgets), nil
}

// Save replaces the stored widgets.
func (s *InMemoryWidgetStore) Save(_ context.Context, widgets []WidgetConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.widgets = cloneWidgets(widgets)
	return nil
}

// FileWidgetStore keeps widgets in a single JSON file.
type FileWidgetStore struct {
	Path string

	mu sync.Mutex
}

// NewFileWidgetStore builds a store backed by path.
func NewFileWidgetStore(path string) *FileWidgetStore {
	return &FileWidgetStore{Path: path}
}

// Load reads the file. A missing file is an empty list.
func (s *FileWidgetStore) Load(_ context.Context) ([]WidgetConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []WidgetConfig{}, nil
		}
		return nil, fmt.Errorf("hub: read store %s: %w", s.Path, err)
	}
	var widgets []WidgetConfig
	if err := json.Unmarshal(data, &widgets); err != nil {
		return nil, fmt.Errorf("hub: parse store %s: %w", s.Path, err)
	}
	return widgets, nil
}

// Save writes the file atomically.
func (s *FileWidgetStore) Save(_ context.Context, widgets []WidgetConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if widgets == nil {
		widgets = []WidgetConfig{}
	}
	data, err := json.MarshalIndent(widgets, "", "  ")
	if err != nil {
		return fmt.Errorf("hub: encode store: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("hub: mkdir %s: %w", filepath.Dir(s.Path), err)
	}
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("hub: write store: %w", err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		return fmt.Errorf("hub: replace store: %w", err)
	}
	return nil
}

func cloneWidgets(widgets []WidgetConfig) []WidgetConfig {
	out := make([]WidgetConfig, len(widgets))
	for i, w := range widgets {
		out[i] = w.Clone()
	}
	return out
}
