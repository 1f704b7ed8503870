package sources

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/kerbaras/mangaverse/pkg/data"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

const sourceStatic = "static"

type catalog struct {
	Pages int            `yaml:"pages"`
	Manga []catalogEntry `yaml:"manga"`
}

type catalogEntry struct {
	data.Manga `yaml:",inline"`
	Titles     map[int]string `yaml:"titles"`
}

// Static serves the embedded catalog. Every chapter has the same number of
// placeholder pages.
type Static struct {
	pages   int
	order   []string
	entries map[string]catalogEntry
}

func NewStatic() (*Static, error) {
	return ParseStatic(catalogYAML)
}

// ParseStatic builds a Static provider from a YAML catalog.
func ParseStatic(raw []byte) (*Static, error) {
	var c catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, errors.Wrap(err, "failed to parse catalog")
	}
	if c.Pages < 1 {
		return nil, errors.Errorf("catalog pages must be positive, got %d", c.Pages)
	}

	s := &Static{pages: c.Pages, entries: make(map[string]catalogEntry, len(c.Manga))}
	for _, entry := range c.Manga {
		if entry.Slug == "" {
			return nil, errors.Errorf("catalog entry %q has no slug", entry.Title)
		}
		if entry.ChapterCount < 1 {
			return nil, errors.Errorf("catalog entry %s has no chapters", entry.Slug)
		}
		if _, dup := s.entries[entry.Slug]; dup {
			return nil, errors.Errorf("duplicate catalog entry %s", entry.Slug)
		}
		entry.Source = sourceStatic
		s.order = append(s.order, entry.Slug)
		s.entries[entry.Slug] = entry
	}
	return s, nil
}

// Search matches query case-insensitively against titles, slugs and genres.
func (s *Static) Search(ctx context.Context, query string) ([]*data.Manga, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	out := []*data.Manga{}
	for _, slug := range s.order {
		entry := s.entries[slug]
		if matches(&entry.Manga, q) {
			out = append(out, clone(&entry.Manga))
		}
	}
	return out, ctx.Err()
}

func (s *Static) GetManga(ctx context.Context, slug string) (*data.Manga, error) {
	entry, ok := s.entries[slug]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "manga %s", slug)
	}
	return clone(&entry.Manga), ctx.Err()
}

func (s *Static) GetChapter(ctx context.Context, slug string, number int) (*data.Chapter, error) {
	entry, ok := s.entries[slug]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "manga %s", slug)
	}
	if number < 1 || number > entry.ChapterCount {
		return nil, errors.Wrapf(ErrNotFound, "%s chapter %d", slug, number)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ch := &data.Chapter{
		MangaSlug:  slug,
		MangaTitle: entry.Title,
		Number:     number,
		Title:      entry.Titles[number],
		PageCount:  s.pages,
		Pages:      make([]string, s.pages),
	}
	if ch.Title == "" {
		ch.Title = fmt.Sprintf("Chapter %d", number)
	}
	if number > 1 {
		ch.PrevChapter = number - 1
	}
	if number < entry.ChapterCount {
		ch.NextChapter = number + 1
	}
	for i := range ch.Pages {
		ch.Pages[i] = fmt.Sprintf("/placeholder.svg?height=1200&width=800&text=%s+%d+Page+%d", slug, number, i+1)
	}
	return ch, nil
}

func matches(m *data.Manga, q string) bool {
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(m.Title), q) || strings.Contains(m.Slug, q) {
		return true
	}
	for _, g := range m.Genres {
		if strings.Contains(strings.ToLower(g), q) {
			return true
		}
	}
	return false
}

func clone(m *data.Manga) *data.Manga {
	out := *m
	out.Genres = append([]string(nil), m.Genres...)
	return &out
}
