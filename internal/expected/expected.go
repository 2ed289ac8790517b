// Package expected loads the expected-value tables that extracted files are
// compared against. Expectations are plain structured data, never code.
package expected

import (
	"os"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"
)

// Table maps a source file's stem (e.g. "PDF7") to its field → expected
// string entries.
type Table map[string]map[string]string

// Load reads the YAML expectations file. Any failure — missing file, invalid
// YAML, wrong shape — degrades to an empty table with a diagnostic so that
// evaluation proceeds with every comparison skipped instead of crashing.
func Load(path string, log *zap.Logger) Table {
	if path == "" {
		log.Warn("no expectations file configured, all field comparisons will be skipped")
		return Table{}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn("reading expectations file", zap.String("path", path), zap.Error(err))
		return Table{}
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		log.Warn("parsing expectations file", zap.String("path", path), zap.Error(err))
		return Table{}
	}

	var table Table
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &table,
		WeaklyTypedInput: true,
	})
	if err != nil {
		log.Warn("building expectations decoder", zap.Error(err))
		return Table{}
	}
	if err := decoder.Decode(raw); err != nil {
		log.Warn("expectations file has unexpected shape", zap.String("path", path), zap.Error(err))
		return Table{}
	}

	if table == nil {
		table = Table{}
	}
	return table
}

// ForFile returns the expected field values for one source file. A missing
// entry yields an empty map, which downgrades every comparison to skipped.
func (t Table) ForFile(stem string, log *zap.Logger) map[string]string {
	entry, ok := t[stem]
	if !ok {
		log.Warn("no expectations defined for file", zap.String("file", stem))
		return map[string]string{}
	}
	return entry
}
