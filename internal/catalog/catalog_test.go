package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()

	require.Len(t, c.Sections, len(Categories))
	for i, s := range c.Sections {
		assert.Equal(t, Categories[i], s.Category, "section %d out of order", i)
	}

	commander, ok := c.Section(Commander)
	require.True(t, ok)
	assert.Equal(t, []string{"Grand Arbiter Augustin IV"}, commander.Cards)

	lands, ok := c.Section(Lands)
	require.True(t, ok)
	assert.Equal(t, 5, lands.Copies("Island"))
	assert.Equal(t, 2, lands.Copies("Plains"))
	assert.Equal(t, 1, lands.Copies("Tundra"))

	assert.Len(t, c.Entries(), 95)
	assert.Equal(t, 100, c.Cardinality())
}

func TestEntriesFollowDefinitionOrder(t *testing.T) {
	doc := `
[[section]]
category = "removal"
cards = ["Swords to Plowshares", "Counterspell"]

[[section]]
category = "commander"
cards = ["Grand Arbiter Augustin IV"]
`
	c, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)

	entries := c.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, Entry{Category: Removal, Name: "Swords to Plowshares", Copies: 1}, entries[0])
	assert.Equal(t, Entry{Category: Removal, Name: "Counterspell", Copies: 1}, entries[1])
	assert.Equal(t, Entry{Category: Commander, Name: "Grand Arbiter Augustin IV", Copies: 1}, entries[2])
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "unknown category",
			doc:  "[[section]]\ncategory = \"tribal\"\ncards = [\"Goblin Guide\"]\n",
			want: "unknown category",
		},
		{
			name: "duplicate category",
			doc:  "[[section]]\ncategory = \"ramp\"\ncards = [\"Sol Ring\"]\n[[section]]\ncategory = \"ramp\"\ncards = [\"Mind Stone\"]\n",
			want: "duplicate category",
		},
		{
			name: "empty name",
			doc:  "[[section]]\ncategory = \"ramp\"\ncards = [\" \"]\n",
			want: "empty card name",
		},
		{
			name: "copies for unlisted card",
			doc:  "[[section]]\ncategory = \"lands\"\ncards = [\"Island\"]\n[section.copies]\nPlains = 2\n",
			want: "unlisted card",
		},
		{
			name: "zero copies",
			doc:  "[[section]]\ncategory = \"lands\"\ncards = [\"Island\"]\n[section.copies]\nIsland = 0\n",
			want: "at least 1",
		},
		{
			name: "malformed toml",
			doc:  "[[section]\n",
			want: "error parsing catalog",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.toml")
	require.NoError(t, os.WriteFile(path, DefaultTOML(), 0644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, c.Path)
	assert.Equal(t, "Beating Shawn", c.Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestCategoryLabels(t *testing.T) {
	assert.Equal(t, "GY Hate", GraveyardHate.Label())
	assert.Equal(t, "Draw", CardAdvantage.Label())
	assert.Equal(t, "Land", Lands.Label())

	for _, c := range Categories {
		assert.True(t, c.Valid())
	}

	_, err := ParseCategory("sideboard")
	assert.Error(t, err)

	c, err := ParseCategory(" stax ")
	require.NoError(t, err)
	assert.Equal(t, Stax, c)
}
