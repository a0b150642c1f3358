package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `[
  {"title": "Figurine", "prompt": "turn the subject into a collectible figurine"},
  {"title": "Sketch", "prompt": "redraw as a pencil sketch"},
  {"title": "Figurine", "prompt": "duplicate title"}
]`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prompts.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParse(t *testing.T) {
	c, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)

	assert.Equal(t, 3, c.Len())
	assert.Equal(t, []string{"Figurine", "Sketch", "Figurine"}, c.Titles())
	assert.Equal(t, "turn the subject into a collectible figurine", c.DefaultPrompt())
}

func TestParse_ReportsIncompleteEntries(t *testing.T) {
	c, err := Parse([]byte(`[{"title":"","prompt":"x"},{"title":"A","prompt":""},{"title":"B","prompt":"b"}]`))

	require.Error(t, err)
	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 2)

	// Untitled entries are dropped; blank prompts are kept.
	assert.Equal(t, []Entry{{Title: "A", Prompt: ""}, {Title: "B", Prompt: "b"}}, c.Entries())
}

func TestResolve_BlankPromptEntry(t *testing.T) {
	c, _ := Parse([]byte(`[{"title":"A","prompt":"pa"},{"title":"Blank","prompt":""}]`))

	assert.True(t, c.IsDefault(""))
	assert.Equal(t, "pa", c.Resolve("A", ""), "a cleared prompt matches the blank entry's default")
	assert.Equal(t, "", c.Resolve("Blank", ""))
	assert.Equal(t, "custom", c.Resolve("Blank", "custom"))
}

func TestParse_Malformed(t *testing.T) {
	for _, doc := range []string{`{`, `{"title":"a"}`, `"x"`} {
		c, err := Parse([]byte(doc))
		assert.Error(t, err, doc)
		assert.Equal(t, 0, c.Len(), doc)
	}
}

func TestLoad(t *testing.T) {
	c := Load(writeFile(t, sampleCatalog))
	assert.Equal(t, 3, c.Len())
}

func TestLoad_DegradesToEmpty(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		c := Load(filepath.Join(t.TempDir(), "absent.json"))
		assert.Equal(t, 0, c.Len())
		assert.Equal(t, []string{EmptyTitle}, c.Titles())
		assert.Equal(t, "", c.DefaultPrompt())
		assert.Equal(t, []Entry{}, c.Entries())
	})

	t.Run("malformed file", func(t *testing.T) {
		c := Load(writeFile(t, `not json`))
		assert.Equal(t, 0, c.Len())
	})
}

func TestLookup(t *testing.T) {
	c, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)

	p, ok := c.Lookup("Sketch")
	assert.True(t, ok)
	assert.Equal(t, "redraw as a pencil sketch", p)

	p, ok = c.Lookup("Figurine")
	assert.True(t, ok)
	assert.Equal(t, "turn the subject into a collectible figurine", p, "first entry wins")

	_, ok = c.Lookup("sketch")
	assert.False(t, ok, "lookup is case sensitive")
}

func TestResolve(t *testing.T) {
	c, err := Parse([]byte(sampleCatalog))
	require.NoError(t, err)

	tests := []struct {
		name   string
		title  string
		prompt string
		want   string
	}{
		{"default text", "Sketch", "redraw as a pencil sketch", "redraw as a pencil sketch"},
		{"user edited", "Sketch", "redraw as charcoal", "redraw as charcoal"},
		{"stale default from another title", "Sketch", "turn the subject into a collectible figurine", "redraw as a pencil sketch"},
		{"cleared prompt passes through", "Sketch", "", ""},
		{"unknown title with custom text", "Nope", "custom", "custom"},
		{"unknown title with a default", "Nope", "redraw as a pencil sketch", ""},
		{"unknown title empty prompt", "Nope", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Resolve(tt.title, tt.prompt))
		})
	}
}

func TestNilCatalog(t *testing.T) {
	var c *Catalog
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, []Entry{}, c.Entries())
	assert.Equal(t, []string{EmptyTitle}, c.Titles())
	assert.Equal(t, "custom", c.Resolve("x", "custom"))
	_, ok := c.Lookup("x")
	assert.False(t, ok)
}

func TestEntries_ReturnsCopy(t *testing.T) {
	c := New([]Entry{{Title: "A", Prompt: "a"}})
	entries := c.Entries()
	entries[0].Prompt = "changed"

	p, _ := c.Lookup("A")
	assert.Equal(t, "a", p)
}
