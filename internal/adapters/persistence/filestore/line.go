package filestore

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
)

// Record is one line-delimited structured record with a free-form field set
type Record map[string]any

// LineStore persists records as one JSON object per line. Records keep
// their exact field set across a load/save cycle: fields this version of
// the code does not model still come back out.
type LineStore struct {
	path string

	mu sync.Mutex
}

// NewLineStore creates a line store for path
func NewLineStore(path string) *LineStore {
	return &LineStore{path: path}
}

// Path returns the backing file path
func (s *LineStore) Path() string {
	return s.path
}

// Ensure creates the backing file empty when missing
func (s *LineStore) Ensure() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensure()
}

// LoadAll reads every record from the backing store, skipping blank lines
func (s *LineStore) LoadAll() ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadAll()
}

// Update runs fn over the full collection and rewrites the backing store
// with whatever fn returns, holding the store lock throughout.
func (s *LineStore) Update(fn func(recs []Record) ([]Record, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs, err := s.loadAll()
	if err != nil {
		return err
	}
	recs, err = fn(recs)
	if err != nil {
		return err
	}
	return s.saveAll(recs)
}

func (s *LineStore) ensure() error {
	return ensureFile(s.path, "")
}

func (s *LineStore) loadAll() ([]Record, error) {
	if err := s.ensure(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	var recs []Record
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var rec Record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, fmt.Errorf("decode %s: %w", s.path, err)
		}
		recs = append(recs, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	return recs, nil
}

func (s *LineStore) saveAll(recs []Record) error {
	var b strings.Builder
	for _, rec := range recs {
		line, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encode %s: %w", s.path, err)
		}
		b.Write(line)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(s.path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}
