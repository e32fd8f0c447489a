package loader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// IncludeKey names the top-level key listing files merged beneath a
// configuration file.
const IncludeKey = "include"

// ErrIncludeDepthExceeded indicates too many nested includes.
var ErrIncludeDepthExceeded = errors.New("include depth exceeded")

// TOMLLoader reads a codeintel TOML settings file into a map.
type TOMLLoader struct {
	fs   FileSystem
	path string
}

// NewTOMLLoader reads path from the OS file system.
func NewTOMLLoader(path string) *TOMLLoader {
	return NewTOMLLoaderWithFS(DefaultFS(), path)
}

// NewTOMLLoaderWithFS reads path from fs.
func NewTOMLLoaderWithFS(fs FileSystem, path string) *TOMLLoader {
	return &TOMLLoader{fs: fs, path: path}
}

// Load reads the loader's file. A missing file yields nil, nil.
func (l *TOMLLoader) Load() (map[string]any, error) {
	return l.read(l.path)
}

func (l *TOMLLoader) read(path string) (map[string]any, error) {
	data, err := l.fs.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse decodes TOML settings. source names the data in a *ParseError.
func Parse(source string, data []byte) (map[string]any, error) {
	var settings map[string]any
	err := toml.Unmarshal(data, &settings)
	if err == nil {
		return settings, nil
	}
	perr := &ParseError{Path: source, Message: err.Error(), Err: err}
	var derr *toml.DecodeError
	if errors.As(err, &derr) {
		perr.Line, perr.Column = derr.Position()
	}
	return nil, perr
}

// LoadWithIncludes reads path and merges the files named by its include
// key beneath it, so the including file wins. Relative includes resolve
// against the including file's directory; maxDepth bounds nesting.
func (l *TOMLLoader) LoadWithIncludes(path string, maxDepth int) (map[string]any, error) {
	if maxDepth <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrIncludeDepthExceeded, path)
	}
	settings, err := l.read(path)
	if err != nil || settings == nil {
		return settings, err
	}

	raw, ok := settings[IncludeKey]
	if !ok {
		return settings, nil
	}
	delete(settings, IncludeKey)

	paths, err := includePaths(path, raw)
	if err != nil {
		return nil, err
	}
	layers := make([]map[string]any, 0, len(paths)+1)
	for _, p := range paths {
		inc, err := l.LoadWithIncludes(p, maxDepth-1)
		if err != nil {
			return nil, fmt.Errorf("loading include %s: %w", p, err)
		}
		layers = append(layers, inc)
	}
	return Merge(append(layers, settings)...), nil
}

// includePaths resolves an include value, a string or a list of strings,
// against the directory of from.
func includePaths(from string, raw any) ([]string, error) {
	var names []string
	switch v := raw.(type) {
	case string:
		names = []string{v}
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s: %s entries must be strings, got %T", from, IncludeKey, item)
			}
			names = append(names, s)
		}
	default:
		return nil, fmt.Errorf("%s: %s must be a string or a list of strings, got %T", from, IncludeKey, raw)
	}

	dir := filepath.Dir(from)
	for i, n := range names {
		if !filepath.IsAbs(n) {
			names[i] = filepath.Join(dir, n)
		}
	}
	return names, nil
}

// ParseError reports invalid TOML with its position when known.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	where := e.Path
	switch {
	case e.Line > 0 && e.Column > 0:
		where = fmt.Sprintf("%s at line %d, column %d", e.Path, e.Line, e.Column)
	case e.Line > 0:
		where = fmt.Sprintf("%s at line %d", e.Path, e.Line)
	}
	return "parse error in " + where + ": " + e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Merge combines settings layers, later layers winning. Nested tables merge
// key by key; any other value replaces what lies beneath it. The inputs are
// not modified.
func Merge(layers ...map[string]any) map[string]any {
	out := make(map[string]any)
	for _, layer := range layers {
		mergeInto(out, layer)
	}
	return out
}

func mergeInto(dst, src map[string]any) {
	for k, v := range src {
		table, ok := v.(map[string]any)
		if !ok {
			dst[k] = v
			continue
		}
		sub, ok := dst[k].(map[string]any)
		if !ok {
			sub = make(map[string]any, len(table))
			dst[k] = sub
		}
		mergeInto(sub, table)
	}
}
