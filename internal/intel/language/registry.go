package language

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/dshills/codeintel/internal/log"
)

// Registry maps file extensions and identifiers to languages.
//
// A Registry is immutable once built; With and WithOverrides return new
// registries, so a Registry can be shared freely across goroutines.
type Registry struct {
	byID    map[string]*Language
	byAlias map[string]*Language
	byExt   map[string]*Language
	plain   *Language
}

// NewRegistry creates a registry from langs. Later languages win when two
// claim the same extension or alias.
func NewRegistry(langs ...*Language) *Registry {
	r := &Registry{
		byID:    make(map[string]*Language),
		byAlias: make(map[string]*Language),
		byExt:   make(map[string]*Language),
		plain:   Plain(),
	}
	r.add(r.plain)
	for _, l := range langs {
		if l != nil {
			r.add(l)
		}
	}
	return r
}

func (r *Registry) add(l *Language) {
	r.byID[l.ID] = l
	r.byAlias[l.ID] = l
	for _, a := range l.Aliases {
		r.byAlias[a] = l
	}
	for _, e := range l.Extensions {
		r.byExt[e] = l
	}
	if l.ID == "plain" {
		r.plain = l
	}
}

// BuildRegistry compiles defs into a registry.
func BuildRegistry(defs []Definition, logger *log.Logger) (*Registry, error) {
	seen := make(map[string]bool, len(defs))
	langs := make([]*Language, 0, len(defs))
	for _, d := range defs {
		id := strings.ToLower(d.ID)
		if seen[id] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateLanguage, id)
		}
		seen[id] = true
		l, err := Build(d, logger)
		if err != nil {
			return nil, err
		}
		langs = append(langs, l)
	}
	return NewRegistry(langs...), nil
}

// Default returns a registry holding the built-in languages.
func Default() *Registry {
	r, err := BuildRegistry(Builtin(), nil)
	if err != nil {
		// Built-in definitions are fixed; a failure here is a programming error.
		panic(err)
	}
	return r
}

// Resolve returns the language for a file extension. The extension may carry
// a leading dot and is matched case-insensitively. Unknown extensions return
// the plain language, never nil.
func (r *Registry) Resolve(ext string) *Language {
	if l, ok := r.byExt[normalizeExt(ext)]; ok {
		return l
	}
	return r.plain
}

// ResolveFilename resolves a path by extension first and then by asking
// chroma's lexer registry, which knows special names such as "Makefile" or
// "Dockerfile", for a matching alias.
func (r *Registry) ResolveFilename(name string) *Language {
	if ext := filepath.Ext(name); ext != "" {
		if l, ok := r.byExt[normalizeExt(ext)]; ok {
			return l
		}
	}
	lexer := lexers.Match(filepath.Base(name))
	if lexer == nil {
		return r.plain
	}
	cfg := lexer.Config()
	candidates := append([]string{cfg.Name}, cfg.Aliases...)
	for _, c := range candidates {
		if l, ok := r.byAlias[strings.ToLower(c)]; ok {
			return l
		}
	}
	return r.plain
}

// ByID returns the language with the given ID or alias.
func (r *Registry) ByID(id string) (*Language, bool) {
	l, ok := r.byAlias[strings.ToLower(strings.TrimSpace(id))]
	return l, ok
}

// Plain returns the fallback language.
func (r *Registry) Plain() *Language {
	return r.plain
}

// Languages returns every registered language sorted by ID.
func (r *Registry) Languages() []*Language {
	out := make([]*Language, 0, len(r.byID))
	for _, l := range r.byID {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Extensions returns every registered extension sorted.
func (r *Registry) Extensions() []string {
	out := make([]string, 0, len(r.byExt))
	for e := range r.byExt {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}

// With returns a registry with langs added on top of r.
func (r *Registry) With(langs ...*Language) *Registry {
	return NewRegistry(append(r.Languages(), langs...)...)
}

// Override adjusts a registered language. Nil fields are left untouched.
type Override struct {
	IndentSize *int
	UseTabs    *bool
	TabWidth   *int
	// Extensions are added to the language's own extensions.
	Extensions []string
}

// WithOverrides returns a registry where the languages named in overrides
// carry the given adjustments. Unknown IDs are ignored.
func (r *Registry) WithOverrides(overrides map[string]Override) *Registry {
	if len(overrides) == 0 {
		return r
	}
	langs := r.Languages()
	for i, l := range langs {
		o, ok := overrides[l.ID]
		if !ok {
			continue
		}
		c := l.clone()
		if o.IndentSize != nil && *o.IndentSize > 0 {
			c.Indent.Size = *o.IndentSize
		}
		if o.UseTabs != nil {
			c.Indent.UseTabs = *o.UseTabs
		}
		if o.TabWidth != nil && *o.TabWidth > 0 {
			c.Indent.TabWidth = *o.TabWidth
		}
		for _, e := range o.Extensions {
			if !c.HasExtension(e) {
				c.Extensions = append(c.Extensions, normalizeExt(e))
			}
		}
		langs[i] = c
	}
	return NewRegistry(langs...)
}
