package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hmans/bookshelf/internal/config"
	"github.com/hmans/bookshelf/internal/library"
	"github.com/hmans/bookshelf/internal/model"
	"github.com/hmans/bookshelf/internal/ui"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create a bookshelf.toml and an empty seed document",
	Long: `Writes a bookshelf.toml with the default settings into dir (the current
directory if omitted). If the seed document it points at does not exist yet,
an empty one is created next to it.

An existing bookshelf.toml is left alone unless --force is given. An existing
seed document is never overwritten.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}

		created, err := initBookshelf(dir, initForce)
		if err != nil {
			return err
		}

		for _, path := range created {
			fmt.Printf("%s Created %s\n", ui.Success.Render("✓"), ui.Path.Render(path))
		}
		if len(created) == 0 {
			fmt.Println(ui.Muted.Render("Nothing to do."))
		}
		return nil
	},
}

// initBookshelf writes the default config and an empty seed document into
// dir and returns the paths it created.
func initBookshelf(dir string, force bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	var created []string

	configFile := filepath.Join(dir, config.ConfigFile)
	if _, err := os.Stat(configFile); err == nil && !force {
		return nil, fmt.Errorf("%s already exists (use --force to overwrite)", configFile)
	}
	if err := config.Default().Save(configFile); err != nil {
		return nil, fmt.Errorf("failed to create config: %w", err)
	}
	created = append(created, configFile)

	dataFile := filepath.Join(dir, config.DefaultDataPath)
	_, err := os.Stat(dataFile)
	switch {
	case err == nil:
		return created, nil
	case !errors.Is(err, fs.ErrNotExist):
		return created, err
	}

	empty := &model.Dataset{Authors: []model.Author{}, Books: []model.Book{}}
	if err := library.SaveDataset(dataFile, empty); err != nil {
		return created, fmt.Errorf("failed to create seed document: %w", err)
	}
	created = append(created, dataFile)

	return created, nil
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing "+config.ConfigFile)
	rootCmd.AddCommand(initCmd)
}
