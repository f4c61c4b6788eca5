// Package overrides loads the manual per-repository policy overrides.
//
// The file maps repository names to optional category, status and
// defaultEnabled values. JSON is the default format; files ending in .yaml or
// .yml are decoded as YAML.
package overrides

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/inovacc/envsync/internal/encoding"
	"github.com/inovacc/envsync/internal/model"
	"gopkg.in/yaml.v3"
)

// Store reads overrides from a single file.
type Store struct {
	path string
}

// NewStore creates a Store for the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the override file. A missing file yields an empty mapping.
// A file that is not a valid mapping returns a *ConfigError.
func (s *Store) Load() (model.Overrides, error) {
	data, err := encoding.ReadFile(s.path)
	if err != nil {
		return nil, &ConfigError{Path: s.path, Err: err}
	}

	if data == nil {
		return model.Overrides{}, nil
	}

	overrides, err := decode(s.path, data)
	if err != nil {
		return nil, &ConfigError{Path: s.path, Err: err}
	}

	if err := validate(overrides); err != nil {
		return nil, &ConfigError{Path: s.path, Err: err}
	}

	return overrides, nil
}

func decode(path string, data []byte) (model.Overrides, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("file is empty")
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var out model.Overrides
		if err := yaml.Unmarshal(data, &out); err != nil {
			return nil, err
		}

		if out == nil {
			return nil, errors.New("top-level value must be a mapping")
		}

		return out, nil
	default:
		out, err := encoding.ParseJSON[model.Overrides](data)
		if err != nil {
			return nil, err
		}

		if *out == nil {
			return nil, errors.New("top-level value must be an object")
		}

		return *out, nil
	}
}

func validate(overrides model.Overrides) error {
	for name, o := range overrides {
		if name == "" {
			return errors.New("override with empty repository name")
		}

		if o.Status != "" && !o.Status.Valid() {
			return fmt.Errorf("override %q: unknown status %q (want active, dormant or archived)", name, o.Status)
		}
	}

	return nil
}
