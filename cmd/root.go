package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hmans/bookshelf/internal/config"
	"github.com/hmans/bookshelf/internal/library"
)

var (
	cfg   *config.Config
	store *library.Store

	configPath string
	dataPath   string
)

var rootCmd = &cobra.Command{
	Use:   "bookshelf",
	Short: "A GraphQL API for authors and books",
	Long: `Bookshelf serves a small library of authors and books over GraphQL.

The data is read once from a seed document (db.json by default) and kept
in memory. Mutations are never written back to the file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The schema can be printed without any data.
		if cmd.Name() == "graphql" && querySchemaOnly {
			return nil
		}
		// init creates the files the other commands load.
		if cmd.Name() == "init" {
			return nil
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		if dataPath != "" {
			cfg.Data.Path = dataPath
		}

		store, err = library.Open(cfg.Data.Path)
		if err != nil {
			return fmt.Errorf("loading data: %w", err)
		}

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", ".", "Path to "+config.ConfigFile+" or the directory containing it")
	rootCmd.PersistentFlags().StringVarP(&dataPath, "data", "d", "", "Path to the seed document (overrides the config file)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
