package data

import "github.com/pkg/errors"

type Manga struct {
	Slug         string   `yaml:"slug"`
	Title        string   `yaml:"title"`
	Description  string   `yaml:"description"`
	Cover        string   `yaml:"cover"`
	Author       string   `yaml:"author"`
	Status       string   `yaml:"status"` // "ongoing", "completed", "hiatus"
	Rating       float64  `yaml:"rating"`
	Genres       []string `yaml:"genres"`
	ChapterCount int      `yaml:"chapters"`
	Source       string   `yaml:"-"`
}

// Chapter is a single chapter as handed out by a source. PrevChapter and
// NextChapter are 0 at the first and last chapter of the series.
type Chapter struct {
	MangaSlug   string
	MangaTitle  string
	Number      int
	Title       string
	PageCount   int
	PrevChapter int
	NextChapter int
	Pages       []string // page image references, PageCount long when known
}

func (c *Chapter) HasPrev() bool { return c.PrevChapter > 0 }
func (c *Chapter) HasNext() bool { return c.NextChapter > 0 }

// Validate checks the invariants readers rely on.
func (c *Chapter) Validate() error {
	if c == nil {
		return errors.New("chapter cannot be nil")
	}
	if c.Number < 1 {
		return errors.Errorf("invalid chapter number %d", c.Number)
	}
	if c.PageCount < 1 {
		return errors.Errorf("chapter %d has no pages", c.Number)
	}
	if c.PrevChapter < 0 || c.NextChapter < 0 {
		return errors.Errorf("chapter %d has negative neighbour", c.Number)
	}
	if len(c.Pages) != 0 && len(c.Pages) != c.PageCount {
		return errors.Errorf("chapter %d lists %d pages, expected %d", c.Number, len(c.Pages), c.PageCount)
	}
	return nil
}

// Page returns the image reference for a 1-based page number.
func (c *Chapter) Page(n int) string {
	if n < 1 || n > len(c.Pages) {
		return ""
	}
	return c.Pages[n-1]
}

type Bookmark struct {
	Title   string   `json:"title"`
	Slug    string   `json:"slug"`
	Cover   string   `json:"cover"`
	Chapter string   `json:"chapter"` // e.g. "Chapter 1088"
	Rating  float64  `json:"rating"`
	Genres  []string `json:"genres"`
}

type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Session is persisted as a single record so the flag and the profile
// can never disagree.
type Session struct {
	LoggedIn bool     `json:"loggedIn"`
	Profile  *Profile `json:"profile"`
}
