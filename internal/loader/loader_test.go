package loader

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/arcanaland/deckview/internal/card"
	"github.com/arcanaland/deckview/internal/catalog"
	"github.com/arcanaland/deckview/internal/lookup"
)

type countingGate struct {
	waits int
	err   error
}

func (g *countingGate) Wait(ctx context.Context) error {
	g.waits++
	return g.err
}

type stubFetcher struct {
	known map[string]*card.Card
	calls []string
}

func (f *stubFetcher) Named(ctx context.Context, name string) (*card.Card, error) {
	f.calls = append(f.calls, name)
	if c, ok := f.known[name]; ok {
		return c, nil
	}
	return nil, errors.New("card not found")
}

func newFetcher(names ...string) *stubFetcher {
	f := &stubFetcher{known: make(map[string]*card.Card)}
	for _, n := range names {
		f.known[n] = &card.Card{Name: n, TypeLine: "Test"}
	}
	return f
}

func mustDecode(t *testing.T, doc string) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Decode(strings.NewReader(doc))
	require.NoError(t, err)
	return c
}

func names(cards []*card.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Name
	}
	return out
}

const exampleDeck = `
[[section]]
category = "commander"
cards = ["Grand Arbiter Augustin IV"]

[[section]]
category = "removal"
cards = ["Swords to Plowshares", "Counterspell"]
`

func TestLoadAll_Example(t *testing.T) {
	f := newFetcher("Grand Arbiter Augustin IV", "Swords to Plowshares", "Counterspell")
	gate := &countingGate{}
	l := New(lookup.NewClient(f, nil, zap.NewNop()), gate, zap.NewNop())

	set, err := l.LoadAll(context.Background(), mustDecode(t, exampleDeck))
	require.NoError(t, err)

	assert.Equal(t, []string{"Grand Arbiter Augustin IV", "Swords to Plowshares", "Counterspell"}, names(set.Cards))
	assert.Equal(t, catalog.Commander, set.Cards[0].Category)
	assert.Equal(t, catalog.Removal, set.Cards[1].Category)
	assert.Equal(t, catalog.Removal, set.Cards[2].Category)
	assert.Equal(t, 3, set.DisplayCount)

	// one wait between the two removal lookups, none before the first of a category
	assert.Equal(t, 1, gate.waits)
}

func TestLoadAll_CommanderPinnedFirst(t *testing.T) {
	doc := `
[[section]]
category = "ramp"
cards = ["Sol Ring", "Mana Crypt"]

[[section]]
category = "commander"
cards = ["Grand Arbiter Augustin IV"]

[[section]]
category = "stax"
cards = ["Winter Orb"]
`
	f := newFetcher("Sol Ring", "Mana Crypt", "Grand Arbiter Augustin IV", "Winter Orb")
	l := New(lookup.NewClient(f, nil, zap.NewNop()), &countingGate{}, zap.NewNop())

	set, err := l.LoadAll(context.Background(), mustDecode(t, doc))
	require.NoError(t, err)

	assert.Equal(t, []string{"Grand Arbiter Augustin IV", "Sol Ring", "Mana Crypt", "Winter Orb"}, names(set.Cards))
	assert.Equal(t, []string{"Sol Ring", "Mana Crypt", "Grand Arbiter Augustin IV", "Winter Orb"}, f.calls)
}

func TestLoadAll_DropsUnresolved(t *testing.T) {
	doc := `
[[section]]
category = "removal"
cards = ["Swords to Plowshares", "Xyzzy the Unfindable", "Counterspell"]
`
	f := newFetcher("Swords to Plowshares", "Counterspell")
	gate := &countingGate{}
	l := New(lookup.NewClient(f, nil, zap.NewNop()), gate, zap.NewNop())

	set, err := l.LoadAll(context.Background(), mustDecode(t, doc))
	require.NoError(t, err)

	assert.Equal(t, []string{"Swords to Plowshares", "Counterspell"}, names(set.Cards))
	assert.Equal(t, 2, gate.waits, "delay placement does not depend on hit or miss")
	assert.Equal(t, 3, set.DisplayCount)
}

func TestLoadAll_SharedNameFetchedOnce(t *testing.T) {
	doc := `
[[section]]
category = "stax"
cards = ["Esper Sentinel"]

[[section]]
category = "card_advantage"
cards = ["Esper Sentinel"]
`
	f := newFetcher("Esper Sentinel")
	l := New(lookup.NewClient(f, nil, zap.NewNop()), &countingGate{}, zap.NewNop())

	set, err := l.LoadAll(context.Background(), mustDecode(t, doc))
	require.NoError(t, err)

	assert.Equal(t, []string{"Esper Sentinel"}, f.calls)
	require.Len(t, set.Cards, 2)
	assert.Equal(t, catalog.Stax, set.Cards[0].Category)
	assert.Equal(t, catalog.CardAdvantage, set.Cards[1].Category)
	assert.NotSame(t, set.Cards[0], set.Cards[1])
}

func TestLoadAll_DisplayCountCountsCopies(t *testing.T) {
	doc := `
[[section]]
category = "lands"
cards = ["Command Tower", "Island", "Plains"]

[section.copies]
Island = 5
Plains = 2
`
	f := newFetcher("Command Tower", "Island", "Plains")
	l := New(lookup.NewClient(f, nil, zap.NewNop()), &countingGate{}, zap.NewNop())

	set, err := l.LoadAll(context.Background(), mustDecode(t, doc))
	require.NoError(t, err)
	assert.Len(t, set.Cards, 3)
	assert.Equal(t, 8, set.DisplayCount)
}

func TestLoadAll_GateCancelled(t *testing.T) {
	f := newFetcher("Grand Arbiter Augustin IV", "Swords to Plowshares", "Counterspell")
	gate := &countingGate{err: context.Canceled}
	l := New(lookup.NewClient(f, nil, zap.NewNop()), gate, zap.NewNop())

	_, err := l.LoadAll(context.Background(), mustDecode(t, exampleDeck))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewGate(t *testing.T) {
	ctx := context.Background()

	g := NewGate(20 * time.Millisecond)
	for i := 0; i < 3; i++ {
		start := time.Now()
		require.NoError(t, g.Wait(ctx))
		assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond, "wait %d", i)
	}

	open := NewGate(0)
	start := time.Now()
	for i := 0; i < 100; i++ {
		require.NoError(t, open.Wait(ctx))
	}
	assert.Less(t, time.Since(start), 20*time.Millisecond)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	assert.ErrorIs(t, NewGate(time.Hour).Wait(cancelled), context.Canceled)
}

type timedFetcher struct {
	at map[string]time.Time
}

func (f *timedFetcher) Named(ctx context.Context, name string) (*card.Card, error) {
	f.at[name] = time.Now()
	return &card.Card{Name: name}, nil
}

func TestLoadAll_SpacesLookupsWithinCategory(t *testing.T) {
	doc := `
[[section]]
category = "removal"
cards = ["A", "B", "C"]

[[section]]
category = "ramp"
cards = ["D", "E"]
`
	const interval = 30 * time.Millisecond
	f := &timedFetcher{at: make(map[string]time.Time)}
	l := New(lookup.NewClient(f, nil, zap.NewNop()), NewGate(interval), zap.NewNop())

	set, err := l.LoadAll(context.Background(), mustDecode(t, doc))
	require.NoError(t, err)
	require.Len(t, set.Cards, 5)

	for _, pair := range [][2]string{{"A", "B"}, {"B", "C"}, {"D", "E"}} {
		gap := f.at[pair[1]].Sub(f.at[pair[0]])
		assert.GreaterOrEqual(t, gap, interval, "%s -> %s", pair[0], pair[1])
	}
}

func TestCommanderFirst(t *testing.T) {
	in := []*card.Card{
		{Name: "A", Category: catalog.Ramp},
		{Name: "B", Category: catalog.Stax},
		{Name: "C", Category: catalog.Commander},
		{Name: "D", Category: catalog.Ramp},
	}
	assert.Equal(t, []string{"C", "A", "B", "D"}, names(CommanderFirst(in)))
	assert.Empty(t, CommanderFirst(nil))
}
