package main

import (
	"fmt"
	"log"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"hanzimap/internal/config"
)

var version = "0.3.0"

var configPath string

// Terminal colors
var (
	brand  = color.New(color.FgHiRed, color.Bold)
	subtle = color.New(color.FgHiBlack)
	good   = color.New(color.FgGreen)
	bad    = color.New(color.FgRed)
)

var rootCmd = &cobra.Command{
	Use:   "hanzimap",
	Short: "hanzimap - explore how characters are built",
	Long: brand.Sprint("hanzimap") + " - an interactive graph of characters and their components\n" +
		subtle.Sprint("Pick a root character, tap nodes to reveal their neighbors"),
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.SetVersionTemplate("hanzimap {{ .Version }}\n")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: search $"+config.EnvConfigPath+", ./"+config.ConfigFileName+", ~/.config/hanzimap)")

	rootCmd.AddCommand(
		serveCmd(),
		rootsCmd(),
		importCmd(),
		exportCmd(),
		configCmd(),
	)
}

// loadConfig reads the --config file, or searches the default locations
func loadConfig() (*config.Config, error) {
	var (
		cfg  *config.Config
		path string
		err  error
	)
	if configPath != "" {
		cfg, path, err = config.LoadFromPath(configPath)
	} else {
		cfg, path, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if path != "" {
		log.Printf("Config loaded from %s", path)
	}
	return cfg, nil
}
