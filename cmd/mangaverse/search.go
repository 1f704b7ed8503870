package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/kerbaras/mangaverse/pkg/data"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search for manga",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, controller, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer controller.Close()

		query := strings.Join(args, " ")
		results, err := controller.SearchManga(cmd.Context(), query)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Printf("No manga found for %q\n", query)
			return nil
		}

		bookmarks := controller.Bookmarks()
		fmt.Println(searchTable(results, bookmarks.IsBookmarked))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func searchTable(results []*data.Manga, bookmarked func(string) bool) *table.Table {
	var (
		purple    = lipgloss.Color("99")
		gray      = lipgloss.Color("245")
		lightGray = lipgloss.Color("241")

		headerStyle  = lipgloss.NewStyle().Foreground(purple).Bold(true).Align(lipgloss.Center)
		cellStyle    = lipgloss.NewStyle().Padding(0, 1)
		oddRowStyle  = cellStyle.Foreground(gray)
		evenRowStyle = cellStyle.Foreground(lightGray)
	)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(purple)).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row%2 == 0:
				return evenRowStyle
			default:
				return oddRowStyle
			}
		}).
		Headers("", "SLUG", "TITLE", "STATUS", "CHAPTERS", "RATING", "GENRES")

	for _, m := range results {
		mark := ""
		if bookmarked(m.Slug) {
			mark = "★"
		}
		t.Row(
			mark,
			m.Slug,
			truncateString(m.Title, 30),
			m.Status,
			fmt.Sprintf("%d", m.ChapterCount),
			fmt.Sprintf("%.1f", m.Rating),
			truncateString(strings.Join(m.Genres, ", "), 30),
		)
	}
	return t
}
