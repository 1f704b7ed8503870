package cmd

import (
	"context"
	"strconv"

	"github.com/kerbaras/mangaverse/pkg/config"
	"github.com/kerbaras/mangaverse/pkg/reader"
	"github.com/kerbaras/mangaverse/pkg/services"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	readPage int
	readMode string
	readLast bool
)

var readCmd = &cobra.Command{
	Use:   "read <manga> <chapter>",
	Short: "Open a chapter in the reader",
	Long: `Open a chapter straight in the reader.

<manga> is a slug or a title. Use --mode infinite to scroll through the series.`,
	Example: `  mangaverse read one-piece 1088
  mangaverse read "Chainsaw Man" 12 --page 5
  mangaverse read spy-x-family 92 --mode infinite`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		number, err := strconv.Atoi(args[1])
		if err != nil || number < 1 {
			return errors.Errorf("invalid chapter number %q", args[1])
		}
		return runTUI(cmd.Context(), func(ctx context.Context, cfg *config.Config, controller *services.MangaController) (*reader.Intent, error) {
			return readIntent(ctx, cfg, controller, args[0], number)
		})
	},
}

func init() {
	readCmd.Flags().IntVarP(&readPage, "page", "p", 1, "page to open on")
	readCmd.Flags().BoolVar(&readLast, "last", false, "open on the last page of the chapter")
	readCmd.Flags().StringVarP(&readMode, "mode", "m", "", "reader mode: 'paged' or 'infinite' (default from config)")
	rootCmd.AddCommand(readCmd)
}

func readIntent(ctx context.Context, cfg *config.Config, controller *services.MangaController, name string, number int) (*reader.Intent, error) {
	mode := readMode
	if mode == "" {
		mode = cfg.Reader.Mode
	}
	m, err := reader.ParseMode(mode)
	if err != nil {
		return nil, err
	}

	manga, err := controller.FindMangaByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if number > manga.ChapterCount && manga.ChapterCount > 0 {
		return nil, errors.Errorf("%s has %d chapters", manga.Title, manga.ChapterCount)
	}

	page := readPage
	if readLast {
		page = reader.LastPage
	}
	return &reader.Intent{
		Kind:      reader.NavigateToChapter,
		MangaSlug: manga.Slug,
		Chapter:   number,
		Page:      page,
		Mode:      m,
	}, nil
}
