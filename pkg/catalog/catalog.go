// Package catalog holds the ordered list of models the showcase can display.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var (
	ErrEmptyCatalog  = errors.New("catalog has no models")
	ErrEmptyName     = errors.New("model name is empty")
	ErrEmptyFile     = errors.New("model file is empty")
	ErrDuplicateName = errors.New("duplicate model name")
)

// Descriptor names one model and the file it loads from. Name is the key
// sections refer to; File is relative to the models directory.
type Descriptor struct {
	Name  string `yaml:"name" toml:"name"`
	File  string `yaml:"file" toml:"file"`
	Title string `yaml:"title,omitempty" toml:"title,omitempty"`
}

// Label returns the text shown on the model's button.
func (d Descriptor) Label() string {
	if d.Title != "" {
		return d.Title
	}
	return d.Name
}

// Catalog is an ordered, read-only list of descriptors with unique names.
type Catalog struct {
	entries []Descriptor
	index   map[string]int
}

type document struct {
	Models []Descriptor `yaml:"models" toml:"models"`
}

// New validates entries and builds a catalog from them.
func New(entries []Descriptor) (*Catalog, error) {
	c := &Catalog{
		entries: append([]Descriptor(nil), entries...),
		index:   make(map[string]int, len(entries)),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	for i, d := range c.entries {
		c.index[d.Name] = i
	}
	return c, nil
}

// DefaultSize is the number of models in the built-in catalog.
const DefaultSize = 6

// Default returns the built-in catalog: models "1" through "6" loading
// model<N>.glb.
func Default() *Catalog {
	entries := make([]Descriptor, DefaultSize)
	for i := range entries {
		n := strconv.Itoa(i + 1)
		entries[i] = Descriptor{Name: n, File: "model" + n + ".glb"}
	}
	c, _ := New(entries)
	return c
}

// Load reads a catalog file. Files ending in .toml are TOML; anything else
// is YAML. Both hold a top-level "models" list.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a catalog document. ext selects the format (".toml" or
// YAML for anything else).
func Parse(data []byte, ext string) (*Catalog, error) {
	var doc document
	var err error
	if strings.EqualFold(ext, ".toml") {
		err = toml.Unmarshal(data, &doc)
	} else {
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return New(doc.Models)
}

// Validate checks that the catalog is non-empty and every entry has a
// unique name and a file.
func (c *Catalog) Validate() error {
	if len(c.entries) == 0 {
		return ErrEmptyCatalog
	}
	seen := make(map[string]struct{}, len(c.entries))
	for i, d := range c.entries {
		if strings.TrimSpace(d.Name) == "" {
			return fmt.Errorf("entry %d: %w", i, ErrEmptyName)
		}
		if strings.TrimSpace(d.File) == "" {
			return fmt.Errorf("entry %d (%s): %w", i, d.Name, ErrEmptyFile)
		}
		if _, dup := seen[d.Name]; dup {
			return fmt.Errorf("entry %d: %w %q", i, ErrDuplicateName, d.Name)
		}
		seen[d.Name] = struct{}{}
	}
	return nil
}

// Lookup returns the descriptor named name.
func (c *Catalog) Lookup(name string) (Descriptor, bool) {
	i, ok := c.index[name]
	if !ok {
		return Descriptor{}, false
	}
	return c.entries[i], true
}

// IndexOf returns the position of name in the catalog, or -1.
func (c *Catalog) IndexOf(name string) int {
	if i, ok := c.index[name]; ok {
		return i
	}
	return -1
}

// Entries returns a copy of the descriptors in catalog order.
func (c *Catalog) Entries() []Descriptor {
	return append([]Descriptor(nil), c.entries...)
}

// Len returns the number of models.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Path resolves d's file against modelsDir.
func Path(modelsDir string, d Descriptor) string {
	return filepath.Join(modelsDir, filepath.FromSlash(d.File))
}

// Missing returns the descriptors whose files do not exist in modelsDir.
func (c *Catalog) Missing(modelsDir string) []Descriptor {
	var missing []Descriptor
	for _, d := range c.entries {
		if _, err := os.Stat(Path(modelsDir, d)); err != nil {
			missing = append(missing, d)
		}
	}
	return missing
}
