package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hanzimap/internal/config"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				path := configPath
				if path == "" {
					path = config.FindConfigPath()
				}
				if path == "" {
					path = subtle.Sprint("(defaults)")
				}
				fmt.Printf("  Config: %s\n", path)
				fmt.Printf("  %s\n", cfg.Summary())
				return nil
			},
		},
		&cobra.Command{
			Use:   "init [path]",
			Short: "Write a config file holding the defaults",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				path := config.DefaultConfigPath()
				if len(args) == 1 {
					path = args[0]
				}
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists", path)
				}
				if err := config.DefaultConfig().Save(path); err != nil {
					return err
				}
				fmt.Printf("  %s %s\n", good.Sprint("Wrote"), path)
				return nil
			},
		},
	)

	return cmd
}
