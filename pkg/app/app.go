package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/mangaverse/pkg/app/screens"
	"github.com/kerbaras/mangaverse/pkg/reader"
	"github.com/kerbaras/mangaverse/pkg/services"
)

type App struct {
	controller *services.MangaController
	opts       screens.Options
}

func NewApp(controller *services.MangaController, opts screens.Options) *App {
	return &App{controller: controller, opts: opts}
}

// OpenAt makes the app start on the given chapter instead of the library.
func (a *App) OpenAt(in reader.Intent) *App {
	a.opts.Intent = &in
	return a
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := screens.NewRootScreen(ctx, a.controller, a.opts)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
