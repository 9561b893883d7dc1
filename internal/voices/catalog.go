// Package voices owns the process-lifetime catalog of synthetic TTS voices.
package voices

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
)

// Voice describes one synthetic voice as shipped in the voices data file.
// ShortName is the stable identifier requests match against
// (e.g. "en-US-GuyNeural").
type Voice struct {
	Name      string `json:"Name"`
	ShortName string `json:"ShortName"`
	Gender    string `json:"Gender"`
	Locale    string `json:"Locale"`
}

// Language returns the language portion of the locale ("pt" for "pt-BR").
func (v Voice) Language() string {
	if lang, _, ok := strings.Cut(v.Locale, "-"); ok {
		return lang
	}
	return v.Locale
}

// Catalog loads the voice list once and serves it read-only for the rest of
// the process lifetime. There is no invalidation path: picking up catalog
// changes requires a restart. Safe for concurrent use; the underlying slice
// is never mutated after the first load.
type Catalog struct {
	path string

	once   sync.Once
	voices []Voice
	err    error
}

// NewCatalog creates a catalog backed by a JSON voices file. Nothing is read
// until the first access.
func NewCatalog(path string) *Catalog {
	return &Catalog{path: path}
}

func (c *Catalog) load() {
	data, err := os.ReadFile(c.path)
	if err != nil {
		c.err = fmt.Errorf("read voices file: %w", err)
		return
	}
	if err := json.Unmarshal(data, &c.voices); err != nil {
		c.err = fmt.Errorf("parse voices file %s: %w", c.path, err)
	}
}

// All returns every voice in catalog order. The first call loads the file;
// a load failure is cached and returned on every subsequent call.
func (c *Catalog) All() ([]Voice, error) {
	c.once.Do(c.load)
	return c.voices, c.err
}

// Filter returns voices whose short name contains the given language code,
// case-insensitively. An empty filter returns the full catalog.
func (c *Catalog) Filter(language string) ([]Voice, error) {
	all, err := c.All()
	if err != nil {
		return nil, err
	}
	if language == "" {
		return all, nil
	}

	needle := strings.ToLower(language)
	var out []Voice
	for _, v := range all {
		if strings.Contains(strings.ToLower(v.ShortName), needle) {
			out = append(out, v)
		}
	}
	return out, nil
}

// Contains reports whether a voice with the given short name exists.
func (c *Catalog) Contains(shortName string) (bool, error) {
	all, err := c.All()
	if err != nil {
		return false, err
	}
	for _, v := range all {
		if v.ShortName == shortName {
			return true, nil
		}
	}
	return false, nil
}
