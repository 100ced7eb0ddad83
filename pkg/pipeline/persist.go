package pipeline

import (
	"encoding/gob"
	"fmt"
	"io"
	"os"
)

// Encode writes the transformer to w with encoding/gob.
func (ct *ColumnTransformer) Encode(w io.Writer) error {
	return gob.NewEncoder(w).Encode(ct)
}

// Decode reads a transformer written by Encode.
func Decode(r io.Reader) (*ColumnTransformer, error) {
	var ct ColumnTransformer
	if err := gob.NewDecoder(r).Decode(&ct); err != nil {
		return nil, fmt.Errorf("decoding transformer: %w", err)
	}
	return &ct, nil
}

// Save writes the transformer to path, replacing any existing file.
func Save(path string, ct *ColumnTransformer) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := ct.Encode(file); err != nil {
		_ = file.Close()
		return fmt.Errorf("encoding transformer: %w", err)
	}
	return file.Close()
}

// Load reads a transformer saved by Save.
func Load(path string) (*ColumnTransformer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Decode(file)
}
