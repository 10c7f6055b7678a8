package cmd

import (
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/hmans/bookshelf/internal/config"
	"github.com/hmans/bookshelf/internal/library"
	"github.com/hmans/bookshelf/internal/model"
	"github.com/hmans/bookshelf/internal/ui"
)

var checkJSON bool

type checkResult struct {
	Success      bool                 `json:"success"`
	ConfigErrors []string             `json:"config_errors"`
	DataIssues   *library.CheckResult `json:"data_issues,omitempty"`
}

// TotalIssues counts configuration errors and data issues together.
func (r *checkResult) TotalIssues() int {
	n := len(r.ConfigErrors)
	if r.DataIssues != nil {
		n += r.DataIssues.TotalIssues()
	}
	return n
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate configuration and seed data integrity",
	Long: `Checks configuration and the seed document, including:
- Configuration settings (port range, search limit)
- Orphaned books (books without an authorId, or whose authorId matches no author)
- Duplicate ids within the authors or books collection

Orphaned books are allowed by the API (their author resolves to null), but
are usually a mistake in the seed data. Duplicate ids make all but the first
record unreachable by id.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		result := runChecks(cfg, store.Snapshot())

		if checkJSON {
			if err := writeCheckJSON(os.Stdout, result); err != nil {
				return err
			}
		} else {
			printCheckResult(result)
		}

		// Exit with error code if validation failed
		if !result.Success {
			os.Exit(1)
		}

		return nil
	},
}

func runChecks(c *config.Config, ds *model.Dataset) *checkResult {
	configErrors := []string{}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		configErrors = append(configErrors, fmt.Sprintf("server port %d is out of range", c.Server.Port))
	}
	if c.Search.Limit < 1 {
		configErrors = append(configErrors, fmt.Sprintf("search limit %d must be positive", c.Search.Limit))
	}

	result := &checkResult{
		ConfigErrors: configErrors,
		DataIssues:   library.Check(ds),
	}
	result.Success = result.TotalIssues() == 0
	return result
}

func writeCheckJSON(w io.Writer, result *checkResult) error {
	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func printCheckResult(result *checkResult) {
	// === Configuration checks ===
	fmt.Println(ui.Bold.Render("Configuration"))
	if len(result.ConfigErrors) == 0 {
		fmt.Printf("  %s Port %d is valid\n", ui.Success.Render("✓"), cfg.Server.Port)
		fmt.Printf("  %s Data loaded from %s\n", ui.Success.Render("✓"), ui.Path.Render(cfg.Data.Path))
	}
	for _, e := range result.ConfigErrors {
		fmt.Printf("  %s %s\n", ui.Danger.Render("✗"), e)
	}

	// === Data checks ===
	fmt.Println()
	fmt.Println(ui.Bold.Render("Data"))

	issues := result.DataIssues
	for _, o := range issues.OrphanedBooks {
		if o.AuthorID == nil {
			fmt.Printf("  %s book %d: has no author\n", ui.Danger.Render("✗"), o.BookID)
			continue
		}
		fmt.Printf("  %s book %d: author %d does not exist\n", ui.Danger.Render("✗"), o.BookID, *o.AuthorID)
	}
	for _, d := range issues.DuplicateIDs {
		fmt.Printf("  %s %s: id %d is used %d times\n", ui.Danger.Render("✗"), d.Collection, d.ID, d.Count)
	}
	if !issues.HasIssues() {
		fmt.Printf("  %s No data issues found\n", ui.Success.Render("✓"))
	}

	// === Summary ===
	fmt.Println()
	switch total := result.TotalIssues(); total {
	case 0:
		fmt.Println(ui.Success.Render("All checks passed"))
	case 1:
		fmt.Println(ui.Danger.Render("1 issue found"))
	default:
		fmt.Println(ui.Danger.Render(fmt.Sprintf("%d issues found", total)))
	}
}

func init() {
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Output as JSON")
	rootCmd.AddCommand(checkCmd)
}
