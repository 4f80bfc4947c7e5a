package card

import "github.com/arcanaland/deckview/internal/catalog"

// PlaceholderImage is shown for cards without any usable image
const PlaceholderImage = "https://via.placeholder.com/200x280?text=No+Image"

// ImageURIs is the set of image sizes Scryfall serves for a card or face
type ImageURIs struct {
	Small      string `json:"small"`
	Normal     string `json:"normal"`
	Large      string `json:"large"`
	PNG        string `json:"png"`
	ArtCrop    string `json:"art_crop"`
	BorderCrop string `json:"border_crop"`
}

// Face is one side of a multi-faced card
type Face struct {
	Name       string     `json:"name"`
	ManaCost   string     `json:"mana_cost"`
	TypeLine   string     `json:"type_line"`
	OracleText string     `json:"oracle_text"`
	Power      string     `json:"power"`
	Toughness  string     `json:"toughness"`
	ImageURIs  *ImageURIs `json:"image_uris"`
}

// Card represents a resolved Magic card
type Card struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	ManaCost    string     `json:"mana_cost"`
	TypeLine    string     `json:"type_line"`
	OracleText  string     `json:"oracle_text"`
	Power       string     `json:"power"`
	Toughness   string     `json:"toughness"`
	ImageURIs   *ImageURIs `json:"image_uris"`
	Faces       []Face     `json:"card_faces"`
	ScryfallURI string     `json:"scryfall_uri"`

	// Category the card was listed under; set by the loader, not by Scryfall
	Category catalog.Category `json:"-"`
}

// WithCategory returns a copy of c tagged with a source category
func (c *Card) WithCategory(cat catalog.Category) *Card {
	cp := *c
	cp.Category = cat
	return &cp
}

// IsCommander reports whether the card was listed as the commander
func (c *Card) IsCommander() bool {
	return c.Category == catalog.Commander
}

// MultiFaced reports whether the card carries more than one face
func (c *Card) MultiFaced() bool {
	return len(c.Faces) > 1
}

// PowerToughness returns "P/T" when both values are present
func (c *Card) PowerToughness() (string, bool) {
	if c.Power == "" || c.Toughness == "" {
		return "", false
	}
	return c.Power + "/" + c.Toughness, true
}

// ImageURL returns the grid image: the card's own normal image, then the first
// face's, then the placeholder
func (c *Card) ImageURL() string {
	if c.ImageURIs != nil {
		if c.ImageURIs.Normal != "" {
			return c.ImageURIs.Normal
		}
		if c.ImageURIs.Small != "" {
			return c.ImageURIs.Small
		}
	}
	if face := c.firstFaceImages(); face != nil && face.Normal != "" {
		return face.Normal
	}
	return PlaceholderImage
}

// DetailImageURL returns the highest resolution image available, or "" when there is none
func (c *Card) DetailImageURL() string {
	if c.ImageURIs != nil {
		if c.ImageURIs.Large != "" {
			return c.ImageURIs.Large
		}
		if c.ImageURIs.Normal != "" {
			return c.ImageURIs.Normal
		}
	}
	if face := c.firstFaceImages(); face != nil {
		if face.Large != "" {
			return face.Large
		}
		return face.Normal
	}
	return ""
}

func (c *Card) firstFaceImages() *ImageURIs {
	if len(c.Faces) == 0 {
		return nil
	}
	return c.Faces[0].ImageURIs
}
