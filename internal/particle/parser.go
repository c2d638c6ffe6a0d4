package particle

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// ParseEffectLibrary parses and validates a YAML effect library.
//
// Unknown keys are rejected so typos in effect files surface as errors
// instead of silently falling back to defaults.
func ParseEffectLibrary(data []byte) (*Library, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var lib Library
	if err := dec.Decode(&lib); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("effect library is empty")
		}
		return nil, fmt.Errorf("failed to parse effect library: %w", err)
	}

	if err := lib.Validate(); err != nil {
		return nil, err
	}
	return &lib, nil
}

// ParseEffectFile reads path from fsys and parses it as an effect library.
//
// Example usage:
//
//	lib, err := ParseEffectFile(embedded.FS(), "data/effects/basic.yaml")
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("Loaded %d effects\n", len(lib.Effects))
func ParseEffectFile(fsys fs.FS, path string) (*Library, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read effect file %s: %w", path, err)
	}

	lib, err := ParseEffectLibrary(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lib, nil
}
