// Package persist writes game snapshots to a flat JSON file. Writes are
// debounced so a burst of dashboard actions produces one disk write, and
// go through a temp-file rename so a crash mid-write never leaves a
// half-written save.
package persist

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Saver owns the save file. Schedule is called after every state change;
// Flush is called on shutdown for a final synchronous write.
type Saver struct {
	mu       sync.Mutex
	path     string
	debounce time.Duration
	timer    *time.Timer
	snapshot func() ([]byte, error)
	logger   *log.Logger
}

func NewSaver(path string, debounce time.Duration, snapshot func() ([]byte, error), logger *log.Logger) *Saver {
	return &Saver{
		path:     path,
		debounce: debounce,
		snapshot: snapshot,
		logger:   logger,
	}
}

// Schedule arms (or re-arms) the debounce timer. Only the last call in a
// burst results in a write.
func (s *Saver) Schedule() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if err := s.write(); err != nil {
			s.logger.Printf("auto-save failed: %v", err)
		}
	})
}

// Flush cancels any pending timer and writes immediately.
func (s *Saver) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	return s.write()
}

func (s *Saver) write() error {
	data, err := s.snapshot()
	if err != nil {
		return fmt.Errorf("snapshot state: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create save dir: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write save file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("install save file: %w", err)
	}
	return nil
}

// Load reads the save file. A missing file is not an error; it returns
// (nil, nil) so the caller seeds a fresh world.
func Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read save file: %w", err)
	}
	return data, nil
}
