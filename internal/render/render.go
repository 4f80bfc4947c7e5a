package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/arcanaland/deckview/internal/card"
	"github.com/arcanaland/deckview/internal/catalog"
	"github.com/arcanaland/deckview/internal/interact"
	"github.com/arcanaland/deckview/internal/loader"
)

//go:embed templates/page.html
var templateFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templateFS, "templates/page.html"))

// Tile is one card in the grid
type Tile struct {
	Index     int
	Name      string
	Category  string
	Label     string
	ImageURL  string
	Commander bool

	Href   string
	Hidden bool
}

// Detail is the content of the card modal
type Detail struct {
	Name           string
	ManaCost       string
	TypeLine       string
	OracleText     string
	PowerToughness string
	Label          string
	ScryfallURI    string
	ImageURL       string
}

// Control is a filter or view button
type Control struct {
	Value  string
	Label  string
	Href   string
	Active bool
}

// Linker turns state transitions into URLs the page can follow
type Linker interface {
	Filter(f interact.Filter) string
	View(v interact.View) string
	Open(i int) string
	Dismiss(e interact.Event) string
}

// PageData feeds the page template
type PageData struct {
	Title       string
	Description string
	Count       int
	Loading     bool
	ListView    bool

	Filters []Control
	Views   []Control
	Tiles   []Tile

	Modal       *Detail
	CloseHref   string
	OutsideHref string
	EscapeHref  string
}

// ToTile builds the grid tile for the card at index i
func ToTile(i int, c *card.Card) Tile {
	return Tile{
		Index:     i,
		Name:      c.Name,
		Category:  string(c.Category),
		Label:     c.Category.Label(),
		ImageURL:  c.ImageURL(),
		Commander: c.IsCommander(),
	}
}

// ToDetail builds the modal content for a card
func ToDetail(c *card.Card) Detail {
	d := Detail{
		Name:        c.Name,
		ManaCost:    c.ManaCost,
		TypeLine:    c.TypeLine,
		OracleText:  c.OracleText,
		Label:       c.Category.Label(),
		ScryfallURI: c.ScryfallURI,
		ImageURL:    c.DetailImageURL(),
	}
	if d.ManaCost == "" {
		d.ManaCost = "N/A"
	}
	if pt, ok := c.PowerToughness(); ok {
		d.PowerToughness = pt
	}
	return d
}

// Build assembles the page for a render set as seen in state st
func Build(title, description string, set *loader.RenderSet, st interact.State, links Linker) PageData {
	data := PageData{
		Title:       title,
		Description: description,
		ListView:    st.View == interact.List,
	}

	if set == nil {
		data.Loading = true
	} else {
		data.Count = set.DisplayCount
		for i, c := range set.Cards {
			tile := ToTile(i, c)
			tile.Href = links.Open(i)
			tile.Hidden = !st.Visible(c.Category)
			data.Tiles = append(data.Tiles, tile)
		}
		if st.Modal.Open && st.Modal.Card < len(set.Cards) {
			detail := ToDetail(set.Cards[st.Modal.Card])
			data.Modal = &detail
			data.CloseHref = links.Dismiss(interact.CloseControl)
			data.OutsideHref = links.Dismiss(interact.OutsideClick)
			data.EscapeHref = links.Dismiss(interact.EscapeKey)
		}
	}

	for _, f := range interact.Filters() {
		label := "All"
		if f != interact.FilterAll {
			label = catalog.Category(f).Label()
		}
		data.Filters = append(data.Filters, Control{
			Value:  string(f),
			Label:  label,
			Href:   links.Filter(f),
			Active: st.FilterActive(f),
		})
	}
	for _, v := range interact.Views {
		data.Views = append(data.Views, Control{
			Value:  string(v),
			Label:  viewLabel(v),
			Href:   links.View(v),
			Active: st.ViewActive(v),
		})
	}

	return data
}

// Page writes the full HTML document
func Page(w io.Writer, data PageData) error {
	if err := pageTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("error rendering page: %w", err)
	}
	return nil
}

func viewLabel(v interact.View) string {
	switch v {
	case interact.List:
		return "List"
	default:
		return "Grid"
	}
}
