package highlight

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/dshills/codeintel/internal/intel/language"
)

// DefaultCacheTTL is how long a cached highlight survives without use.
const DefaultCacheTTL = 5 * time.Minute

// Cache memoizes highlight results by language, theme and text content.
//
// Thread-safety: All methods are safe for concurrent use. A nil Cache
// computes every result.
type Cache struct {
	cache *gocache.Cache
	ttl   time.Duration
}

// NewCache creates a cache whose entries expire after ttl. A non-positive
// ttl uses DefaultCacheTTL.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{
		cache: gocache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

// Highlight returns the cached spans for (text, lang, theme), computing and
// storing them on a miss. The returned slice is the caller's to modify.
func (c *Cache) Highlight(text string, lang *language.Language, theme *Theme) []Span {
	if c == nil {
		return Highlight(text, lang, theme)
	}
	if theme == nil {
		theme = DefaultTheme()
	}

	key := cacheKey(text, lang, theme)
	if v, ok := c.cache.Get(key); ok {
		if spans, ok := v.([]Span); ok {
			c.cache.Set(key, spans, c.ttl)
			return slices.Clone(spans)
		}
	}

	spans := Highlight(text, lang, theme)
	c.cache.Set(key, spans, c.ttl)
	return slices.Clone(spans)
}

// Len returns the number of cached results, including expired ones not yet
// cleaned up.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.cache.ItemCount()
}

// Flush drops every cached result.
func (c *Cache) Flush() {
	if c != nil {
		c.cache.Flush()
	}
}

// cacheKey identifies a result by language, the theme's full palette and a
// digest of the text. Themes sharing a name still get distinct keys.
func cacheKey(text string, lang *language.Language, theme *Theme) string {
	id := ""
	if lang != nil {
		id = lang.ID
	}
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%+v\x00", id, *theme)
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}
