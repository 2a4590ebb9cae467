package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hanzimap/internal/loader"
	"hanzimap/internal/selection"
)

func rootsCmd() *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "roots",
		Short: "List the characters offered as roots",
		Long: `List every character with at least one component, in document order.
The preselected root is marked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("source") {
				cfg.Data.Source = source
			}

			src, err := loader.Open(cfg.Data.Source)
			if err != nil {
				return err
			}
			doc, err := loader.Load(cmd.Context(), src)
			if err != nil {
				bad.Printf("  %v\n", err)
				return err
			}

			options := selection.EligibleRoots(doc, cfg.Data.DefaultRoot)
			initial := selection.Initial(options)
			if len(options) == 0 {
				fmt.Println(subtle.Sprint("  No character has components"))
				return nil
			}

			for _, o := range options {
				marker := "  "
				if o.ID == initial {
					marker = good.Sprint("▸ ")
				}
				node, _ := doc.Node(o.ID)
				fmt.Printf("%s%s %s\n", marker, brand.Sprint(o.ID), subtle.Sprint(node.Meaning))
			}
			fmt.Println()
			fmt.Printf("  %d of %d characters have components\n", len(options), len(doc.Nodes))
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "Graph data source (file, URL or sqlite:path)")
	return cmd
}
