package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"hanzimap/internal/codec"
	"hanzimap/internal/loader"
)

func exportCmd() *cobra.Command {
	var (
		source string
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the graph document as JSON or YAML",
		Long: `Load the configured data source, normalize it and write it out.

  hanzimap export --source sqlite:hanzimap.db -o graph_data.json
  hanzimap export --format yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("source") {
				cfg.Data.Source = source
			}

			var c codec.Codec
			if format == "" && output != "" {
				c, err = codec.ForPath(output)
			} else if format == "" {
				c, err = codec.ForFormat("json")
			} else {
				c, err = codec.ForFormat(format)
			}
			if err != nil {
				return err
			}

			src, err := loader.Open(cfg.Data.Source)
			if err != nil {
				return err
			}
			doc, err := loader.Load(cmd.Context(), src)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}

			return c.Export(doc, w)
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "Graph data source (file, URL or sqlite:path)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: json or yaml (default from --output, else json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	return cmd
}
