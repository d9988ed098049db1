// Package allowlist holds the set of pre-vetted URLs that bypass classification.
package allowlist

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrNoURLColumn is returned when the allowlist CSV has no url column.
var ErrNoURLColumn = errors.New("allowlist: no url column")

// Set is an immutable exact-match URL set. The zero value is empty.
type Set struct {
	urls map[string]struct{}
}

// New builds a set from urls. Entries are stored verbatim.
func New(urls ...string) *Set {
	s := &Set{urls: make(map[string]struct{}, len(urls))}
	for _, u := range urls {
		s.urls[u] = struct{}{}
	}
	return s
}

// Contains reports an exact, case-sensitive match.
func (s *Set) Contains(url string) bool {
	if s == nil {
		return false
	}
	_, ok := s.urls[url]
	return ok
}

// Len returns the number of entries.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.urls)
}

// Read loads the url column of a CSV. Other columns (aliases, names) are ignored.
func Read(r io.Reader) (*Set, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrNoURLColumn
	}
	if err != nil {
		return nil, fmt.Errorf("reading allowlist header: %w", err)
	}
	col := -1
	for i, h := range header {
		if strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")) == "url" {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, ErrNoURLColumn
	}

	var urls []string
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading allowlist: %w", err)
		}
		if col < len(rec) && rec[col] != "" {
			urls = append(urls, rec[col])
		}
	}
	return New(urls...), nil
}

// LoadFile reads an allowlist CSV from path.
func LoadFile(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening allowlist: %w", err)
	}
	defer f.Close()
	return Read(f)
}
