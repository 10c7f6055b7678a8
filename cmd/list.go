package cmd

import (
	"fmt"
	"os"
	"strconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hmans/bookshelf/internal/model"
	"github.com/hmans/bookshelf/internal/ui"
)

var (
	listJSON   bool
	listAuthor []int
	listQuiet  bool
	listSort   string
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List authors and their books",
	Long: `Lists all authors with their books as a tree.

Books whose author does not exist are grouped under a "(missing author)" entry.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		authors := store.Authors()
		books := store.Books()

		// Apply filters
		authors, books = filterByAuthor(authors, books, listAuthor)

		sortFn, err := bookSorter(listSort)
		if err != nil {
			return err
		}

		tree := ui.BuildTree(authors, books, sortFn)

		if listJSON {
			out := lo.Map(tree, func(n *ui.TreeNode, _ int) *ui.TreeNodeJSON { return n.ToJSON() })
			data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(out, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding JSON: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		// Quiet mode: just book IDs
		if listQuiet {
			sortFn(books)
			for _, b := range books {
				fmt.Println(b.ID)
			}
			return nil
		}

		if len(tree) == 0 {
			fmt.Println(ui.Muted.Render("No authors or books found."))
			return nil
		}

		fmt.Print(ui.RenderTree(tree, titleWidth(os.Stdout)))
		return nil
	},
}

// titleWidth sizes the name column to the terminal, leaving room for the
// id and kind columns. Output that is not a terminal gets the default width.
func titleWidth(f *os.File) int {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return ui.DefaultTitleWidth
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width < 40 {
		return ui.DefaultTitleWidth
	}
	return min(width-24, 80)
}

// filterByAuthor keeps the given authors and their books. An empty filter
// keeps everything.
func filterByAuthor(authors []*model.Author, books []*model.Book, authorIDs []int) ([]*model.Author, []*model.Book) {
	if len(authorIDs) == 0 {
		return authors, books
	}

	authors = lo.Filter(authors, func(a *model.Author, _ int) bool {
		return lo.Contains(authorIDs, a.ID)
	})
	books = lo.Filter(books, func(b *model.Book, _ int) bool {
		return b.AuthorID != nil && lo.Contains(authorIDs, *b.AuthorID)
	})
	return authors, books
}

func bookSorter(sortBy string) (func([]*model.Book), error) {
	switch sortBy {
	case "", "id":
		return model.SortBooks, nil
	case "name":
		return model.SortBooksByName, nil
	default:
		return nil, fmt.Errorf("invalid sort order %s (want id or name)", strconv.Quote(sortBy))
	}
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
	listCmd.Flags().IntSliceVarP(&listAuthor, "author", "a", nil, "Only show these author ids (can be repeated)")
	listCmd.Flags().BoolVarP(&listQuiet, "quiet", "q", false, "Only output book IDs (one per line)")
	listCmd.Flags().StringVarP(&listSort, "sort", "s", "id", "Sort books by: id, name")
	rootCmd.AddCommand(listCmd)
}
