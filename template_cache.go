package pave

import (
	"sync"
	"text/template"
)

// TemplateCache provides thread-safe caching of compiled message templates.
// Entries are keyed by message key and are compiled at most once.
type TemplateCache struct {
	cache sync.Map // map[string]*templateEntry
}

// templateEntry holds one compiled template, or the error compiling it.
type templateEntry struct {
	once sync.Once
	tmpl *template.Template
	err  error
}

// NewTemplateCache creates an empty cache.
func NewTemplateCache() *TemplateCache {
	return &TemplateCache{}
}

// GetOrCreate returns the template stored under key, compiling text on
// first use. Concurrent callers for the same key share one compilation.
func (tc *TemplateCache) GetOrCreate(key, text string) (*template.Template, error) {
	v, _ := tc.cache.LoadOrStore(key, &templateEntry{})
	entry := v.(*templateEntry)

	entry.once.Do(func() {
		entry.tmpl, entry.err = template.New(key).Option("missingkey=zero").Parse(text)
	})

	return entry.tmpl, entry.err
}

// Delete removes the entry for key.
func (tc *TemplateCache) Delete(key string) {
	tc.cache.Delete(key)
}

// Clear removes all entries.
func (tc *TemplateCache) Clear() {
	tc.cache.Range(func(k, _ any) bool {
		tc.cache.Delete(k)
		return true
	})
}
