package filestore

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"sync"
)

// Row is one tabular record keyed by column name
type Row map[string]string

// TableStore persists rows as delimited text under a fixed column header.
// The header is written when the backing file is first created and rows
// round-trip through the declared column order.
type TableStore struct {
	path    string
	columns []string

	mu sync.Mutex
}

// NewTableStore creates a table store for path with the given column schema
func NewTableStore(path string, columns []string) *TableStore {
	return &TableStore{path: path, columns: columns}
}

// Path returns the backing file path
func (s *TableStore) Path() string {
	return s.path
}

// Ensure creates the backing file with its header when missing
func (s *TableStore) Ensure() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensure()
}

// LoadAll reads every row from the backing store
func (s *TableStore) LoadAll() ([]Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadAll()
}

// Update runs fn over the full collection and rewrites the backing store
// with whatever fn returns. The store lock is held for the whole
// load-modify-save sequence.
func (s *TableStore) Update(fn func(rows []Row) ([]Row, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.loadAll()
	if err != nil {
		return err
	}
	rows, err = fn(rows)
	if err != nil {
		return err
	}
	return s.saveAll(rows)
}

func (s *TableStore) ensure() error {
	return ensureFile(s.path, strings.Join(s.columns, ",")+"\n")
}

func (s *TableStore) loadAll() ([]Row, error) {
	if err := s.ensure(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	// First record is the header; map the remaining records through it so
	// column order in the file never matters on the way in.
	header := records[0]
	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := Row{}
		for i, col := range header {
			if i < len(rec) {
				row[col] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *TableStore) saveAll(rows []Row) error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create %s: %w", s.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(s.columns); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	for _, row := range rows {
		rec := make([]string, len(s.columns))
		for i, col := range s.columns {
			rec[i] = row[col]
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write %s: %w", s.path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", s.path, err)
	}
	return nil
}
