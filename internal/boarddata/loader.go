package boarddata

import (
	"encoding/json"
	"fmt"
	"io/fs"
)

// Load decodes a JSON file from the embedded board data.
func Load[T any](name string) (T, error) {
	return LoadFS[T](dataFS, name)
}

// LoadFS decodes a JSON file from fsys. Fields the target type does not
// know are rejected, so a typo in a data file fails loudly.
func LoadFS[T any](fsys fs.FS, name string) (T, error) {
	var result T

	f, err := fsys.Open(name)
	if err != nil {
		return result, fmt.Errorf("open board data %s: %w", name, err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&result); err != nil {
		return result, fmt.Errorf("decode board data %s: %w", name, err)
	}
	return result, nil
}

// MustLoad is Load, panicking on error.
func MustLoad[T any](name string) T {
	result, err := Load[T](name)
	if err != nil {
		panic(err)
	}
	return result
}
