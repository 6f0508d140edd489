package priority

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader loads and validates batch files
type Loader struct{}

// NewLoader creates a new batch loader
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and parses a batch file. Relative project dirs are resolved
// against the file's directory, then project patterns are expanded.
func (l *Loader) Load(path string) (*Batch, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	batch, err := l.LoadFromBytes(data, filepath.Ext(path))
	if err != nil {
		return nil, err
	}

	batch.ResolveDirs(filepath.Dir(path))
	if err := batch.Expand(); err != nil {
		return nil, err
	}
	return batch, nil
}

// LoadFromBytes parses a batch from raw bytes
func (l *Loader) LoadFromBytes(data []byte, ext string) (*Batch, error) {
	ext = strings.ToLower(ext)

	var batch Batch
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &batch); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &batch); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedExt, ext)
	}

	l.applyDefaults(&batch)

	if err := batch.Validate(); err != nil {
		return nil, err
	}

	return &batch, nil
}

func (l *Loader) applyDefaults(b *Batch) {
	if b.Options.Concurrency <= 0 {
		b.Options.Concurrency = DefaultOptions().Concurrency
	}
}
