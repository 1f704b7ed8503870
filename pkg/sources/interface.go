package sources

import (
	"context"
	"net/http"
	"time"

	"github.com/kerbaras/mangaverse/pkg/config"
	"github.com/kerbaras/mangaverse/pkg/data"
	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("not found")

// Provider hands out manga metadata and chapters. Chapters returned by a
// Provider always satisfy data.Chapter.Validate.
type Provider interface {
	Search(ctx context.Context, query string) ([]*data.Manga, error)
	GetManga(ctx context.Context, slug string) (*data.Manga, error)
	GetChapter(ctx context.Context, slug string, number int) (*data.Chapter, error)
}

// New builds the provider selected by cfg.Source.
func New(cfg *config.Config) (Provider, error) {
	switch cfg.Source {
	case config.SourceStatic, "":
		return NewStatic()
	case config.SourceMangaDex:
		client := &http.Client{Timeout: cfg.Reader.FetchTimeout}
		if client.Timeout <= 0 {
			client.Timeout = 10 * time.Second
		}
		return NewMangaDexWithClient(cfg.MangaDex.URL, cfg.MangaDex.Language, client), nil
	default:
		return nil, errors.Wrapf(config.ErrInvalid, "unknown source %q", cfg.Source)
	}
}
