// Package catalog holds the read-only prompt catalog.
//
// The catalog is a JSON array of {"title", "prompt"} entries loaded once at
// startup. A missing or malformed file yields an empty catalog rather than an
// error, so the tools keep working without presets.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/samber/lo"
)

// EmptyTitle is offered as the only title when the catalog has no entries.
const EmptyTitle = "(no prompts)"

// Entry is a named preset prompt.
type Entry struct {
	Title  string `json:"title"`
	Prompt string `json:"prompt"`
}

// Catalog is an immutable list of entries. A nil *Catalog behaves as empty.
type Catalog struct {
	entries []Entry
}

// New builds a catalog from entries, copying the slice.
func New(entries []Entry) *Catalog {
	return &Catalog{entries: append([]Entry(nil), entries...)}
}

// Parse decodes a catalog document.
//
// Entries with an empty title are skipped. Entries with an empty prompt are
// kept, so "" counts as a catalog default. Both problems are returned as a
// multierror alongside the usable catalog. A document that is not a JSON array
// of objects returns an empty catalog and an error.
func Parse(data []byte) (*Catalog, error) {
	var raw []Entry
	if err := json.Unmarshal(data, &raw); err != nil {
		return New(nil), fmt.Errorf("failed to parse prompt catalog: %w", err)
	}

	var errs *multierror.Error
	entries := lo.Filter(raw, func(e Entry, i int) bool {
		switch {
		case e.Title == "":
			errs = multierror.Append(errs, fmt.Errorf("entry %d: missing title", i))
			return false
		case e.Prompt == "":
			errs = multierror.Append(errs, fmt.Errorf("entry %d (%q): empty prompt", i, e.Title))
		}
		return true
	})

	return &Catalog{entries: entries}, errs.ErrorOrNil()
}

// Load reads the catalog at path. Failures are logged and produce an empty
// catalog; skipped entries are logged and the rest are kept.
func Load(path string) *Catalog {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Warn("prompt catalog not found, using empty catalog", "path", path)
		} else {
			slog.Warn("failed to read prompt catalog, using empty catalog", "path", path, "error", err)
		}
		return New(nil)
	}

	c, err := Parse(data)
	if err != nil {
		slog.Warn("prompt catalog has problems", "path", path, "error", err, "entries", c.Len())
	}
	slog.Info("prompt catalog loaded", "path", path, "entries", c.Len())
	return c
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Entries returns a copy of the entries in file order. Never nil.
func (c *Catalog) Entries() []Entry {
	if c == nil {
		return []Entry{}
	}
	return append([]Entry{}, c.entries...)
}

// Titles lists entry titles in file order, or EmptyTitle alone when empty.
func (c *Catalog) Titles() []string {
	if c.Len() == 0 {
		return []string{EmptyTitle}
	}
	return lo.Map(c.entries, func(e Entry, _ int) string { return e.Title })
}

// DefaultPrompt is the prompt of the first entry, or "".
func (c *Catalog) DefaultPrompt() string {
	if c.Len() == 0 {
		return ""
	}
	return c.entries[0].Prompt
}

// Lookup returns the prompt stored under the exact title. The first entry wins
// when titles repeat.
func (c *Catalog) Lookup(title string) (string, bool) {
	if c == nil {
		return "", false
	}
	e, ok := lo.Find(c.entries, func(e Entry) bool { return e.Title == title })
	return e.Prompt, ok
}

// IsDefault reports whether prompt is the stored text of any entry.
func (c *Catalog) IsDefault(prompt string) bool {
	if c == nil {
		return false
	}
	return lo.ContainsBy(c.entries, func(e Entry) bool { return e.Prompt == prompt })
}

// Resolve picks the prompt for a selector with a chosen title and an editable
// prompt text.
//
// The catalog prompt for title is used unless the user edited the text: a
// prompt that differs from the title's default and matches no catalog default
// is passed through unchanged. A prompt equal to some other entry's default is
// stale text from an earlier selection and is ignored.
func (c *Catalog) Resolve(title, prompt string) string {
	final, _ := c.Lookup(title)
	if prompt != final && !c.IsDefault(prompt) {
		return prompt
	}
	return final
}
