package language

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/codeintel/internal/log"
)

// ParseDefinition decodes a single YAML language definition.
func ParseDefinition(data []byte) (Definition, error) {
	var d Definition
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Definition{}, fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}
	if err := d.Validate(); err != nil {
		return Definition{}, err
	}
	return d, nil
}

// LoadDefinitions reads every .yaml and .yml file in dir of fsys as a
// language definition, in file name order. Files that cannot be read or
// parsed are skipped with a warning; only a missing or unreadable dir is an
// error.
func LoadDefinitions(fsys fs.FS, dir string, logger *log.Logger) ([]Definition, error) {
	if logger == nil {
		logger = log.Default().WithComponent("language")
	}
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read language pack %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(path.Ext(e.Name())) {
		case ".yaml", ".yml":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	defs := make([]Definition, 0, len(names))
	for _, name := range names {
		data, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			logger.Warn("skipping language file %s: %v", name, err)
			continue
		}
		d, err := ParseDefinition(data)
		if err != nil {
			logger.Warn("skipping language file %s: %v", name, err)
			continue
		}
		defs = append(defs, d)
	}
	return defs, nil
}

// WithDefinitions returns a registry extended by the language files in dir.
// A loaded language with the ID of a registered one replaces it.
func (r *Registry) WithDefinitions(fsys fs.FS, dir string, logger *log.Logger) (*Registry, error) {
	defs, err := LoadDefinitions(fsys, dir, logger)
	if err != nil {
		return nil, err
	}
	langs := make([]*Language, 0, len(defs))
	for _, d := range defs {
		l, err := Build(d, logger)
		if err != nil {
			return nil, err
		}
		langs = append(langs, l)
	}
	return r.With(langs...), nil
}

// MarshalDefinition encodes a definition as YAML. It is used to export the
// built-in languages as a starting point for custom definition files.
func MarshalDefinition(d Definition) ([]byte, error) {
	return yaml.Marshal(d)
}
