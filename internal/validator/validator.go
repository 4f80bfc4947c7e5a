package validator

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/arcanaland/deckview/internal/catalog"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

type Validator struct {
	CatalogPath string
	Results     ValidationResults

	file *catalog.File
}

func NewValidator(catalogPath string) *Validator {
	return &Validator{
		CatalogPath: catalogPath,
		Results:     ValidationResults{},
	}
}

// Validate reports every problem in the catalog file. The error is only set
// when the file cannot be read or parsed at all.
func (v *Validator) Validate() (ValidationResults, error) {
	if err := v.decode(); err != nil {
		return v.Results, err
	}

	v.validateHeader()
	v.validateSections()
	v.validateCommander()
	v.validateDuplicates()

	return v.Results, nil
}

func (v *Validator) decode() error {
	if _, err := os.Stat(v.CatalogPath); os.IsNotExist(err) {
		return fmt.Errorf("catalog not found: %s", v.CatalogPath)
	}

	var f catalog.File
	md, err := toml.DecodeFile(v.CatalogPath, &f)
	if err != nil {
		return fmt.Errorf("error parsing catalog: %w", err)
	}

	for _, key := range md.Undecoded() {
		v.addWarning("unknown key: %s", key.String())
	}

	v.file = &f
	return nil
}

func (v *Validator) validateHeader() {
	if v.file.Catalog.Name == "" {
		v.addWarning("catalog.name is not set; the page title falls back to the catalog id")
	}
	if len(v.file.Sections) == 0 {
		v.addError("no [[section]] tables found")
	}
}

// validateSections checks categories, names and copy counts
func (v *Validator) validateSections() {
	seen := make(map[catalog.Category]bool)

	for i, s := range v.file.Sections {
		cat, err := catalog.ParseCategory(s.Category)
		if err != nil {
			v.addError("section %d: %v (expected one of %s)", i+1, err, categoryList())
			continue
		}
		if seen[cat] {
			v.addError("section %d: duplicate category %s", i+1, cat)
		}
		seen[cat] = true

		if len(s.Cards) == 0 {
			v.addWarning("section %s has no cards", cat)
		}

		names := make(map[string]bool)
		for j, name := range s.Cards {
			if strings.TrimSpace(name) == "" {
				v.addError("section %s: card %d has an empty name", cat, j+1)
				continue
			}
			if name != strings.TrimSpace(name) {
				v.addWarning("section %s: %q has surrounding whitespace", cat, name)
			}
			if names[name] {
				v.addWarning("section %s: %q is listed twice; use copies instead", cat, name)
			}
			names[name] = true
		}

		for name, n := range s.Copies {
			if !names[name] {
				v.addError("section %s: copies given for unlisted card %q", cat, name)
			}
			if n < 1 {
				v.addError("section %s: copies for %q must be at least 1", cat, name)
			}
		}
	}

	for _, cat := range catalog.Categories {
		if !seen[cat] {
			v.addWarning("category %s has no section", cat)
		}
	}
}

func (v *Validator) validateCommander() {
	for _, s := range v.file.Sections {
		if s.Category != string(catalog.Commander) {
			continue
		}
		switch {
		case len(s.Cards) == 0:
			v.addWarning("no commander listed")
		case len(s.Cards) > 1:
			v.addWarning("%d commanders listed; all of them are pinned to the front", len(s.Cards))
		}
		return
	}
}

// validateDuplicates flags names shared across categories; each is fetched once and shown once per category
func (v *Validator) validateDuplicates() {
	where := make(map[string][]string)
	var order []string
	for _, s := range v.file.Sections {
		for _, name := range s.Cards {
			if _, ok := where[name]; !ok {
				order = append(order, name)
			}
			where[name] = append(where[name], s.Category)
		}
	}

	for _, name := range order {
		if cats := where[name]; len(cats) > 1 {
			v.addWarning("%q appears in several categories: %s", name, strings.Join(cats, ", "))
		}
	}
}

func (v *Validator) addError(format string, args ...interface{}) {
	v.Results.Errors = append(v.Results.Errors, fmt.Sprintf(format, args...))
}

func (v *Validator) addWarning(format string, args ...interface{}) {
	v.Results.Warnings = append(v.Results.Warnings, fmt.Sprintf(format, args...))
}

func categoryList() string {
	tags := make([]string, len(catalog.Categories))
	for i, c := range catalog.Categories {
		tags[i] = string(c)
	}
	return strings.Join(tags, ", ")
}
