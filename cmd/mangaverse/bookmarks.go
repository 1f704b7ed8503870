package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/mangaverse/pkg/data"
	"github.com/kerbaras/mangaverse/pkg/services"
	"github.com/spf13/cobra"
)

var bookmarkChapter int

var bookmarksCmd = &cobra.Command{
	Use:     "bookmarks",
	Aliases: []string{"bm"},
	Short:   "Manage bookmarked manga",
}

var bookmarksListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List bookmarked manga",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, controller, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer controller.Close()

		if !controller.Session().LoggedIn() {
			return services.ErrLoginRequired
		}
		list := controller.Bookmarks().List()
		if len(list) == 0 {
			fmt.Println("No bookmarks yet. Use 'mangaverse bookmarks toggle <manga>' to add one.")
			return nil
		}
		fmt.Println(bookmarksTable(list).View())
		return nil
	},
}

var bookmarksToggleCmd = &cobra.Command{
	Use:   "toggle <manga>",
	Short: "Add or remove a bookmark",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		_, controller, err := setup(ctx)
		if err != nil {
			return err
		}
		defer controller.Close()

		m, err := controller.FindMangaByName(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		on, err := controller.ToggleBookmark(ctx, m.Slug, bookmarkChapter)
		if err != nil {
			return err
		}
		if on {
			fmt.Printf("Bookmarked %s\n", m.Title)
		} else {
			fmt.Printf("Removed %s from bookmarks\n", m.Title)
		}
		return nil
	},
}

func init() {
	bookmarksToggleCmd.Flags().IntVarP(&bookmarkChapter, "chapter", "c", 0, "chapter to record (default latest)")
	bookmarksCmd.AddCommand(bookmarksListCmd, bookmarksToggleCmd)
	rootCmd.AddCommand(bookmarksCmd)
}

func bookmarksTable(list []data.Bookmark) table.Model {
	columns := []table.Column{
		{Title: "Slug", Width: 20},
		{Title: "Title", Width: 30},
		{Title: "Chapter", Width: 14},
		{Title: "Rating", Width: 6},
		{Title: "Genres", Width: 30},
	}

	rows := make([]table.Row, 0, len(list))
	for _, b := range list {
		rows = append(rows, table.Row{
			b.Slug,
			truncateString(b.Title, 30),
			b.Chapter,
			fmt.Sprintf("%.1f", b.Rating),
			truncateString(strings.Join(b.Genres, ", "), 30),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Cell
	t.SetStyles(s)
	return t
}
