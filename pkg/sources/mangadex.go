package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"github.com/kerbaras/mangaverse/pkg/data"
	"github.com/kerbaras/mangaverse/pkg/utils"
	"github.com/pkg/errors"
)

const sourceMangaDex = "mangadex"

type Manga struct {
	ID         string `json:"id"`
	Attributes struct {
		Title       map[string]string `json:"title"`
		Description map[string]string `json:"description"`
		Status      string            `json:"status"`
		LastChapter string            `json:"lastChapter"`
		Tags        []struct {
			Attributes struct {
				Name  map[string]string `json:"name"`
				Group string            `json:"group"`
			} `json:"attributes"`
		} `json:"tags"`
	} `json:"attributes"`
}

func (m *Manga) ToManga(lang string) *data.Manga {
	out := &data.Manga{
		Slug:        m.ID,
		Title:       localized(m.Attributes.Title, lang),
		Description: localized(m.Attributes.Description, lang),
		Status:      m.Attributes.Status,
		Source:      sourceMangaDex,
	}
	if n, err := strconv.Atoi(m.Attributes.LastChapter); err == nil {
		out.ChapterCount = n
	}
	for _, tag := range m.Attributes.Tags {
		if tag.Attributes.Group != "genre" {
			continue
		}
		out.Genres = append(out.Genres, localized(tag.Attributes.Name, lang))
	}
	return out
}

// localized prefers lang, then English, then whatever is there.
func localized(values map[string]string, lang string) string {
	if v, ok := values[lang]; ok {
		return v
	}
	if v, ok := values["en"]; ok {
		return v
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) == 0 {
		return ""
	}
	return values[keys[0]]
}

type aggregateChapter struct {
	Chapter string `json:"chapter"`
	ID      string `json:"id"`
}

type aggregateVolume struct {
	Chapters map[string]aggregateChapter `json:"chapters"`
}

// MangaDex reads from the public MangaDex API. Slugs are MangaDex manga ids.
type MangaDex struct {
	api  *utils.API
	lang string
}

func NewMangaDex(baseURL, lang string) *MangaDex {
	return &MangaDex{api: utils.NewAPI(baseURL), lang: lang}
}

func NewMangaDexWithClient(baseURL, lang string, client *http.Client) *MangaDex {
	return &MangaDex{api: utils.NewAPIWithClient(baseURL, client), lang: lang}
}

func (m *MangaDex) get(ctx context.Context, path string, params url.Values, v any) error {
	err := m.api.Get(ctx, path, params, v)
	var status *utils.StatusError
	if errors.As(err, &status) && status.Code == http.StatusNotFound {
		return errors.Wrap(ErrNotFound, path)
	}
	return err
}

func (m *MangaDex) Search(ctx context.Context, query string) ([]*data.Manga, error) {
	params := url.Values{}
	params.Set("title", query)
	params.Set("limit", "20")
	params.Add("availableTranslatedLanguage[]", m.lang)

	var mangas struct {
		Data []Manga `json:"data"`
	}
	if err := m.get(ctx, "/manga", params, &mangas); err != nil {
		return nil, err
	}
	out := make([]*data.Manga, len(mangas.Data))
	for i := range mangas.Data {
		out[i] = mangas.Data[i].ToManga(m.lang)
	}
	return out, nil
}

func (m *MangaDex) GetManga(ctx context.Context, id string) (*data.Manga, error) {
	var manga struct {
		Data Manga `json:"data"`
	}
	if err := m.get(ctx, fmt.Sprintf("/manga/%s", id), nil, &manga); err != nil {
		return nil, err
	}
	return manga.Data.ToManga(m.lang), nil
}

// GetChapter resolves chapter number of manga id. Neighbours come from the
// aggregate listing, so gaps in the numbering are skipped.
func (m *MangaDex) GetChapter(ctx context.Context, id string, number int) (*data.Chapter, error) {
	manga, err := m.GetManga(ctx, id)
	if err != nil {
		return nil, err
	}

	chapters, err := m.aggregate(ctx, id)
	if err != nil {
		return nil, err
	}
	numbers := make([]int, 0, len(chapters))
	for n := range chapters {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	idx := sort.SearchInts(numbers, number)
	if idx == len(numbers) || numbers[idx] != number {
		return nil, errors.Wrapf(ErrNotFound, "%s chapter %d", id, number)
	}

	pages, err := m.pages(ctx, chapters[number])
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, errors.Errorf("%s chapter %d has no pages", id, number)
	}

	ch := &data.Chapter{
		MangaSlug:  id,
		MangaTitle: manga.Title,
		Number:     number,
		Title:      fmt.Sprintf("Chapter %d", number),
		PageCount:  len(pages),
		Pages:      pages,
	}
	if idx > 0 {
		ch.PrevChapter = numbers[idx-1]
	}
	if idx < len(numbers)-1 {
		ch.NextChapter = numbers[idx+1]
	}
	return ch, nil
}

// aggregate maps integral chapter numbers to chapter ids.
func (m *MangaDex) aggregate(ctx context.Context, id string) (map[int]string, error) {
	params := url.Values{}
	params.Add("translatedLanguage[]", m.lang)

	var agg struct {
		Volumes json.RawMessage `json:"volumes"`
	}
	if err := m.get(ctx, fmt.Sprintf("/manga/%s/aggregate", id), params, &agg); err != nil {
		return nil, err
	}

	out := map[int]string{}
	// an empty aggregate comes back as [] instead of {}
	if len(agg.Volumes) == 0 || bytes.HasPrefix(bytes.TrimSpace(agg.Volumes), []byte("[")) {
		return out, nil
	}
	var volumes map[string]aggregateVolume
	if err := json.Unmarshal(agg.Volumes, &volumes); err != nil {
		return nil, errors.Wrap(err, "failed to decode aggregate volumes")
	}
	for _, volume := range volumes {
		for _, c := range volume.Chapters {
			n, err := strconv.Atoi(c.Chapter)
			if err != nil || n < 1 {
				continue
			}
			if _, seen := out[n]; !seen {
				out[n] = c.ID
			}
		}
	}
	return out, nil
}

func (m *MangaDex) pages(ctx context.Context, chapterID string) ([]string, error) {
	var server struct {
		BaseURL string `json:"baseUrl"`
		Chapter struct {
			Hash string   `json:"hash"`
			Data []string `json:"data"`
		} `json:"chapter"`
	}
	if err := m.get(ctx, fmt.Sprintf("/at-home/server/%s", chapterID), nil, &server); err != nil {
		return nil, err
	}
	pages := make([]string, len(server.Chapter.Data))
	for i, file := range server.Chapter.Data {
		pages[i] = fmt.Sprintf("%s/data/%s/%s", server.BaseURL, server.Chapter.Hash, file)
	}
	return pages, nil
}
