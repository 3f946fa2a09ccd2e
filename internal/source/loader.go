package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
)

// DefaultJSONPath selects page bodies in a JSON pages file.
const DefaultJSONPath = "pages.#.body"

// Separator divides pages in a plain text pages file.
const Separator = "---"

// ErrNoPages is returned when a source yields no pages.
var ErrNoPages = errors.New("source has no pages")

// Loader produces a fresh set of pages.
type Loader interface {
	Load(ctx context.Context) ([]string, error)
}

// LoaderFunc adapts a function to a Loader.
type LoaderFunc func(ctx context.Context) ([]string, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context) ([]string, error) {
	return f(ctx)
}

// Static returns a loader that always yields pages.
func Static(pages ...string) Loader {
	return LoaderFunc(func(context.Context) ([]string, error) {
		return append([]string(nil), pages...), nil
	})
}

// FileLoader reads pages from a file on every Load.
type FileLoader struct {
	Path string
	// JSONPath is used for .json files. Defaults to DefaultJSONPath.
	JSONPath string
}

// Load reads and parses the file.
func (l *FileLoader) Load(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("reading pages %s: %w", l.Path, err)
	}

	if strings.EqualFold(filepath.Ext(l.Path), ".json") {
		path := l.JSONPath
		if path == "" {
			path = DefaultJSONPath
		}
		return ParseJSON(data, path)
	}
	return ParseText(string(data))
}

// ParseText splits text into pages on separator lines.
func ParseText(text string) ([]string, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var pages []string
	var cur []string
	flush := func() {
		page := strings.Trim(strings.Join(cur, "\n"), "\n")
		if page != "" {
			pages = append(pages, page)
		}
		cur = cur[:0]
	}
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == Separator {
			flush()
			continue
		}
		cur = append(cur, line)
	}
	flush()

	if len(pages) == 0 {
		return nil, ErrNoPages
	}
	return pages, nil
}

// ParseJSON extracts pages from JSON with a gjson path.
func ParseJSON(data []byte, path string) ([]string, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON pages document")
	}
	res := gjson.GetBytes(data, path)
	if !res.Exists() {
		return nil, fmt.Errorf("%w: path %q matched nothing", ErrNoPages, path)
	}

	var pages []string
	if res.IsArray() {
		for _, v := range res.Array() {
			pages = append(pages, v.String())
		}
	} else {
		pages = append(pages, res.String())
	}
	if len(pages) == 0 {
		return nil, ErrNoPages
	}
	return pages, nil
}

// Sample returns the built-in pages shown when no source is configured.
func Sample() []string {
	return []string{
		"Welcome to tactile.\n\nDrag left or right to change pages.\nDrag down from the top to refresh.\nPress i to edit and Esc to stop. Ctrl+Z undoes, Ctrl+Y redoes.",
		"Page two.\n\nEvery edit and page change is an undo step.\nOnly the last few steps are kept.",
		"Page three.\n\nA refresh reloads the pages and clears the history.",
	}
}
