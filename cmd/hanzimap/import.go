package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hanzimap/internal/loader"
	"hanzimap/internal/repository/sqlite"
)

func importCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "import <file-or-url>",
		Short: "Import a graph document into the SQLite catalog",
		Long: `Read a JSON or YAML graph document and replace the catalog's contents with it.
Serve the catalog with --source sqlite:<db>.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("db") {
				cfg.Database.Path = dbPath
			}

			src, err := loader.Open(args[0])
			if err != nil {
				return err
			}
			doc, err := loader.Load(cmd.Context(), src)
			if err != nil {
				bad.Printf("  %v\n", err)
				return err
			}

			repo, err := sqlite.New(cfg.Database.Path)
			if err != nil {
				return err
			}
			defer repo.Close()

			if err := repo.SaveDocument(cmd.Context(), doc); err != nil {
				return fmt.Errorf("failed to save document: %w", err)
			}

			stats, err := repo.Stats(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("  %s %d nodes, %d edges into %s\n",
				good.Sprint("Imported"), stats.Nodes, stats.Edges, cfg.Database.Path)
			fmt.Println(subtle.Sprintf("  Serve it with: hanzimap serve --source %s%s", loader.SQLitePrefix, cfg.Database.Path))
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite catalog path (default from config)")
	return cmd
}
