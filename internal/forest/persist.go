package forest

import (
	"encoding/gob"
	"fmt"
	"io"
	"os"
)

// Save gob-encodes the forest to w.
func (f *Forest) Save(w io.Writer) error {
	if len(f.Trees) == 0 {
		return ErrNotTrained
	}
	if err := gob.NewEncoder(w).Encode(f); err != nil {
		return fmt.Errorf("encoding forest: %w", err)
	}
	return nil
}

// SaveFile writes the forest to path, replacing any existing file.
func (f *Forest) SaveFile(path string) error {
	tmp := path + ".tmp"
	file, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating model file: %w", err)
	}
	if err := f.Save(file); err != nil {
		file.Close()
		os.Remove(tmp)
		return err
	}
	if err := file.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("closing model file: %w", err)
	}
	return os.Rename(tmp, path)
}

// Load decodes a forest written by Save.
func Load(r io.Reader) (*Forest, error) {
	var f Forest
	if err := gob.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding forest: %w", err)
	}
	if len(f.Trees) == 0 || f.NFeatures <= 0 || len(f.Classes) == 0 {
		return nil, ErrNotTrained
	}
	return &f, nil
}

// LoadFile reads a forest from path.
func LoadFile(path string) (*Forest, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening model file: %w", err)
	}
	defer file.Close()
	return Load(file)
}
