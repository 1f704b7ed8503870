package services

import (
	"context"

	"github.com/kerbaras/mangaverse/pkg/data"
	"github.com/pkg/errors"
)

type mockSource struct {
	searchFunc     func(query string) ([]*data.Manga, error)
	getMangaFunc   func(slug string) (*data.Manga, error)
	getChapterFunc func(slug string, number int) (*data.Chapter, error)
}

func (m *mockSource) Search(_ context.Context, query string) ([]*data.Manga, error) {
	if m.searchFunc != nil {
		return m.searchFunc(query)
	}
	return nil, nil
}

func (m *mockSource) GetManga(_ context.Context, slug string) (*data.Manga, error) {
	if m.getMangaFunc != nil {
		return m.getMangaFunc(slug)
	}
	return nil, errors.New("not implemented")
}

func (m *mockSource) GetChapter(_ context.Context, slug string, number int) (*data.Chapter, error) {
	if m.getChapterFunc != nil {
		return m.getChapterFunc(slug, number)
	}
	return nil, errors.New("not implemented")
}

// failingKV wraps a MemoryStore and fails writes while failSet is true.
type failingKV struct {
	*data.MemoryStore
	failSet bool
	failGet bool
}

func (f *failingKV) Get(ctx context.Context, key string) (string, bool, error) {
	if f.failGet {
		return "", false, errors.New("disk on fire")
	}
	return f.MemoryStore.Get(ctx, key)
}

func (f *failingKV) Set(ctx context.Context, key, value string) error {
	if f.failSet {
		return errors.New("disk full")
	}
	return f.MemoryStore.Set(ctx, key, value)
}
