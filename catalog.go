package pave

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Translator turns a message key and its interpolation data into display
// text. Data keys are MsgDataParam, MsgDataValue and MsgDataType.
type Translator interface {
	Translate(key string, data map[string]any) string
}

// TranslatorFunc adapts a plain function to Translator.
type TranslatorFunc func(key string, data map[string]any) string

// Translate implements Translator.
func (f TranslatorFunc) Translate(key string, data map[string]any) string {
	return f(key, data)
}

// Format is the encoding of a catalog file.
type Format int

const (
	FormatAuto Format = iota
	FormatYAML
	FormatTOML
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	case FormatAuto:
		return "auto"
	default:
		return "unknown"
	}
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return FormatAuto, fmt.Errorf("%w: %s", ErrCatalogFormat, path)
	}
}

// CatalogOpts configures a Catalog.
type CatalogOpts struct {
	// Locale selects the top-level section of loaded files. Files without a
	// section for the locale are read as-is. Defaults to "en".
	Locale string
	// Fallback answers keys this catalog does not know. Nil falls back to
	// the embedded English catalog; use NoFallback to disable.
	Fallback Translator
}

// NoFallback makes a Catalog answer unknown keys with the key itself.
var NoFallback Translator = TranslatorFunc(func(key string, _ map[string]any) string {
	return key
})

// Catalog is a Translator backed by YAML or TOML message files. Nested keys
// are flattened with dots and messages are text/template strings.
type Catalog struct {
	mu        sync.RWMutex
	locale    string
	messages  map[string]string
	templates *TemplateCache
	fallback  Translator
}

// NewCatalog creates an empty catalog.
func NewCatalog(opts CatalogOpts) *Catalog {
	locale := opts.Locale
	if locale == "" {
		locale = "en"
	}

	fallback := opts.Fallback
	if fallback == nil {
		fallback = DefaultCatalog()
	}

	return &Catalog{
		locale:    locale,
		messages:  make(map[string]string),
		templates: NewTemplateCache(),
		fallback:  fallback,
	}
}

//go:embed locales/en.yaml
var defaultCatalogYAML []byte

var (
	defaultCatalog     *Catalog
	defaultCatalogOnce sync.Once
)

// DefaultCatalog returns the embedded English catalog.
func DefaultCatalog() *Catalog {
	defaultCatalogOnce.Do(func() {
		c := &Catalog{
			locale:    "en",
			messages:  make(map[string]string),
			templates: NewTemplateCache(),
			fallback:  NoFallback,
		}
		if err := c.Load(bytes.NewReader(defaultCatalogYAML), FormatYAML); err != nil {
			panic(fmt.Sprintf("pave: embedded catalog: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Locale returns the catalog's locale.
func (c *Catalog) Locale() string {
	return c.locale
}

// LoadFile loads messages from a .yaml, .yml or .toml file.
func (c *Catalog) LoadFile(path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open catalog %s: %w", path, err)
	}
	defer f.Close()

	return c.Load(f, format)
}

// Load reads messages in the given format. FormatAuto tries YAML.
func (c *Catalog) Load(r io.Reader, format Format) error {
	raw := make(map[string]any)

	switch format {
	case FormatAuto, FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&raw); err != nil && err != io.EOF {
			return fmt.Errorf("error decoding yaml catalog: %w", err)
		}
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&raw); err != nil {
			return fmt.Errorf("error decoding toml catalog: %w", err)
		}
	default:
		return fmt.Errorf("%w: %s", ErrCatalogFormat, format)
	}

	if section, ok := raw[c.locale]; ok && len(raw) == 1 {
		nested, ok := section.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: locale section %q is not a mapping", ErrCatalogFormat, c.locale)
		}
		raw = nested
	}

	c.Add(raw)
	return nil
}

// Add merges nested messages into the catalog.
func (c *Catalog) Add(messages map[string]any) {
	flat := make(map[string]string)
	flatten("", messages, flat)

	c.mu.Lock()
	defer c.mu.Unlock()
	for k, v := range flat {
		c.messages[k] = v
		c.templates.Delete(k)
	}
}

// Has reports whether the catalog itself defines key.
func (c *Catalog) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.messages[key]
	return ok
}

// Translate implements Translator.
func (c *Catalog) Translate(key string, data map[string]any) string {
	c.mu.RLock()
	text, ok := c.messages[key]
	c.mu.RUnlock()

	if !ok {
		return c.fallback.Translate(key, data)
	}

	tmpl, err := c.templates.GetOrCreate(key, text)
	if err != nil {
		return text
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return text
	}
	return buf.String()
}

func flatten(prefix string, in map[string]any, out map[string]string) {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case map[any]any:
			nested := make(map[string]any, len(val))
			for nk, nv := range val {
				nested[fmt.Sprint(nk)] = nv
			}
			flatten(key, nested, out)
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}
