package cmd

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	colorize "github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/deckview/internal/card"
	"github.com/arcanaland/deckview/internal/catalog"
)

const testCatalog = `
[catalog]
id = "test-deck"
name = "Test Deck"

[[section]]
category = "commander"
cards = ["Grand Arbiter Augustin IV"]

[[section]]
category = "removal"
cards = ["Swords to Plowshares", "Missing Card"]
`

func TestWrapText(t *testing.T) {
	lines := wrapText("Flying\nWhenever a creature enters, draw a card.", 20)
	assert.Equal(t, []string{"Flying", "Whenever a creature", "enters, draw a card."}, lines)

	assert.Equal(t, []string{""}, wrapText("", 20))
}

func TestCatalogName(t *testing.T) {
	assert.Equal(t, "Beating Shawn", catalogName(&catalog.Catalog{ID: "beating-shawn", Name: "Beating Shawn"}))
	assert.Equal(t, "beating-shawn", catalogName(&catalog.Catalog{ID: "beating-shawn"}))
	assert.Equal(t, "Deck", catalogName(&catalog.Catalog{}))
}

func TestFindEntry(t *testing.T) {
	c := catalog.Default()

	e, ok := findEntry(c, "rhystic study")
	require.True(t, ok)
	assert.Equal(t, "Rhystic Study", e.Name)

	e, ok = findEntry(c, "rhystic", "Rhystic Study")
	require.True(t, ok, "the resolved name is tried after the typed one")
	assert.Equal(t, catalog.Stax, e.Category)

	_, ok = findEntry(c, "Black Lotus")
	assert.False(t, ok)
}

func TestInfoLines(t *testing.T) {
	colorize.NoColor = true
	t.Cleanup(func() { colorize.NoColor = false })

	c := (&card.Card{
		Name:       "Esper Sentinel",
		TypeLine:   "Artifact Creature",
		OracleText: "Whenever an opponent casts their first noncreature spell each turn, draw a card.",
		Power:      "1",
		Toughness:  "1",
	}).WithCategory(catalog.CardAdvantage)

	lines := infoLines(c, 40)
	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "Mana Cost: N/A")
	assert.Contains(t, joined, "P/T:       1/1")
	assert.Contains(t, joined, "Category:  Draw")
	for _, l := range lines {
		assert.LessOrEqual(t, len(l), 40)
	}
}

func TestExportCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("fuzzy")
		if name == "Missing Card" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"object":"error","status":404,"code":"not_found","details":"No card found"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(card.Card{
			Name:      name,
			TypeLine:  "Legendary Creature",
			ImageURIs: &card.ImageURIs{Normal: "https://img.example/" + strings.ReplaceAll(name, " ", "_") + ".jpg"},
		})
	}))
	defer srv.Close()

	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config", "deckview"), 0755))
	cfg := "api_base_url = \"" + srv.URL + "\"\nrequest_interval = \"0s\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "deckview", "config.toml"), []byte(cfg), 0644))

	catalogPath := filepath.Join(dir, "deck.toml")
	require.NoError(t, os.WriteFile(catalogPath, []byte(testCatalog), 0644))

	out := filepath.Join(dir, "deck.html")
	RootCmd.SetArgs([]string{"export", "--catalog", catalogPath, "-o", out, "--filter", "removal"})
	require.NoError(t, RootCmd.Execute())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	page := string(data)

	assert.Contains(t, page, "Test Deck")
	assert.Contains(t, page, "Grand Arbiter Augustin IV")
	assert.Contains(t, page, "Swords to Plowshares")
	assert.NotContains(t, page, "Missing Card")
	assert.NotContains(t, page, `href="/?`, "exported controls must not point at a server")
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deck.html")

	require.NoError(t, writeFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "<html></html>")
		return err
	}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(data))

	boom := errors.New("template failed")
	err = writeFile(path, func(w io.Writer) error {
		_, _ = io.WriteString(w, "<html><bo")
		return boom
	})
	require.ErrorIs(t, err, boom)

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(data), "a failed render keeps the previous file")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary file is left behind")

	missing := filepath.Join(dir, "fresh.html")
	require.Error(t, writeFile(missing, func(io.Writer) error { return boom }))
	_, err = os.Stat(missing)
	assert.True(t, os.IsNotExist(err))
}
