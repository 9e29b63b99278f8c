package content

import (
	"sync"
	"time"

	"cawver-web/pkg/logger"
)

// Store serves the current Site to request handlers and swaps it atomically
// when the backing file changes.
type Store struct {
	mu       sync.RWMutex
	site     *Site
	loadedAt time.Time
	source   string
	adjust   func(*Site)
}

// NewStore wraps an already loaded site. source is the file it came from, or
// empty for embedded content. adjust, when set, runs on every loaded site
// before it becomes visible.
func NewStore(site *Site, source string, adjust func(*Site)) *Store {
	if adjust != nil && site != nil {
		adjust(site)
	}
	return &Store{site: site, loadedAt: time.Now(), source: source, adjust: adjust}
}

// Open loads content from path, or the embedded default when path is empty.
func Open(path string, adjust func(*Site)) (*Store, error) {
	var (
		site *Site
		err  error
	)
	if path == "" {
		site, err = Default()
	} else {
		site, err = LoadFile(path)
	}
	if err != nil {
		return nil, err
	}
	return NewStore(site, path, adjust), nil
}

func (s *Store) Site() *Site {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.site
}

// LoadedAt reports when the current site became visible.
func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}

func (s *Store) Source() string {
	return s.source
}

// Reload re-reads the source file. On failure the previous content stays in
// place and the error is returned.
func (s *Store) Reload() error {
	if s.source == "" {
		return nil
	}

	site, err := LoadFile(s.source)
	if err != nil {
		return err
	}
	if s.adjust != nil {
		s.adjust(site)
	}

	s.mu.Lock()
	s.site = site
	s.loadedAt = time.Now()
	s.mu.Unlock()

	logger.Info("Site content reloaded", map[string]interface{}{"file": s.source})
	return nil
}
