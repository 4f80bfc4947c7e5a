package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed default.toml
var defaultCatalog []byte

// Category is a deck-role tag used to group and filter cards
type Category string

const (
	Commander     Category = "commander"
	GraveyardHate Category = "graveyard_hate"
	AntiCast      Category = "anti_cast"
	AntiWheel     Category = "anti_wheel"
	Stax          Category = "stax"
	Removal       Category = "removal"
	CardAdvantage Category = "card_advantage"
	Ramp          Category = "ramp"
	WinConditions Category = "win_conditions"
	Lands         Category = "lands"
)

// Categories lists every category in display order
var Categories = []Category{
	Commander,
	GraveyardHate,
	AntiCast,
	AntiWheel,
	Stax,
	Removal,
	CardAdvantage,
	Ramp,
	WinConditions,
	Lands,
}

var labels = map[Category]string{
	Commander:     "Commander",
	GraveyardHate: "GY Hate",
	AntiCast:      "Anti-Cast",
	AntiWheel:     "Anti-Wheel",
	Stax:          "Stax",
	Removal:       "Removal",
	CardAdvantage: "Draw",
	Ramp:          "Ramp",
	WinConditions: "Win Con",
	Lands:         "Land",
}

// Label returns the human-readable badge text for the category
func (c Category) Label() string {
	if label, ok := labels[c]; ok {
		return label
	}
	return string(c)
}

// Valid reports whether c is one of the fixed categories
func (c Category) Valid() bool {
	_, ok := labels[c]
	return ok
}

// ParseCategory converts a raw tag into a Category
func ParseCategory(s string) (Category, error) {
	c := Category(strings.TrimSpace(s))
	if !c.Valid() {
		return "", fmt.Errorf("unknown category: %q", s)
	}
	return c, nil
}

// Entry is a single card name within a category
type Entry struct {
	Category Category
	Name     string
	Copies   int
}

// Section holds the ordered card names of one category
type Section struct {
	Category Category
	Cards    []string
	copies   map[string]int
}

// Copies returns how many physical copies a name in this section stands for
func (s Section) Copies(name string) int {
	if n, ok := s.copies[name]; ok {
		return n
	}
	return 1
}

// Catalog represents a deck list grouped by category
type Catalog struct {
	ID          string
	Name        string
	Description string
	Path        string

	Sections []Section
}

// Entries flattens the catalog in traversal order
func (c *Catalog) Entries() []Entry {
	var entries []Entry
	for _, s := range c.Sections {
		for _, name := range s.Cards {
			entries = append(entries, Entry{Category: s.Category, Name: name, Copies: s.Copies(name)})
		}
	}
	return entries
}

// Section returns the section for a category
func (c *Catalog) Section(cat Category) (Section, bool) {
	for _, s := range c.Sections {
		if s.Category == cat {
			return s, true
		}
	}
	return Section{}, false
}

// Cardinality is the number of physical cards the catalog describes
func (c *Catalog) Cardinality() int {
	total := 0
	for _, e := range c.Entries() {
		total += e.Copies
	}
	return total
}

// Load loads a catalog from a TOML file
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading catalog: %w", err)
	}

	c, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("error loading %s: %w", path, err)
	}
	c.Path = path
	return c, nil
}

// Decode parses a catalog document
func Decode(r io.Reader) (*Catalog, error) {
	var f File
	if _, err := toml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("error parsing catalog: %w", err)
	}
	return FromFile(&f)
}

// FromFile builds a Catalog from its raw TOML structure. The first problem found is returned.
func FromFile(f *File) (*Catalog, error) {
	c := &Catalog{
		ID:          f.Catalog.ID,
		Name:        f.Catalog.Name,
		Description: f.Catalog.Description,
	}

	seen := make(map[Category]bool)
	for i, raw := range f.Sections {
		cat, err := ParseCategory(raw.Category)
		if err != nil {
			return nil, fmt.Errorf("section %d: %w", i+1, err)
		}
		if seen[cat] {
			return nil, fmt.Errorf("section %d: duplicate category %s", i+1, cat)
		}
		seen[cat] = true

		names := make(map[string]bool, len(raw.Cards))
		for _, name := range raw.Cards {
			if strings.TrimSpace(name) == "" {
				return nil, fmt.Errorf("section %s: empty card name", cat)
			}
			names[name] = true
		}
		for name, n := range raw.Copies {
			if !names[name] {
				return nil, fmt.Errorf("section %s: copies given for unlisted card %q", cat, name)
			}
			if n < 1 {
				return nil, fmt.Errorf("section %s: copies for %q must be at least 1", cat, name)
			}
		}

		c.Sections = append(c.Sections, Section{
			Category: cat,
			Cards:    append([]string(nil), raw.Cards...),
			copies:   raw.Copies,
		})
	}

	return c, nil
}

// Default returns the built-in deck
func Default() *Catalog {
	c, err := Decode(bytes.NewReader(defaultCatalog))
	if err != nil {
		panic(fmt.Sprintf("built-in catalog: %v", err))
	}
	return c
}

// DefaultTOML returns the built-in deck document
func DefaultTOML() []byte {
	return append([]byte(nil), defaultCatalog...)
}

// Catalog file structures
type File struct {
	Catalog  Header        `toml:"catalog"`
	Sections []SectionFile `toml:"section"`
}

type Header struct {
	ID          string `toml:"id"`
	Name        string `toml:"name"`
	Description string `toml:"description"`
}

type SectionFile struct {
	Category string         `toml:"category"`
	Cards    []string       `toml:"cards"`
	Copies   map[string]int `toml:"copies"`
}
