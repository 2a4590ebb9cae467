// Command hanzimap serves an interactive map of how Chinese characters are
// built from one another.
package main

import (
	"embed"
	"log"
	"os"
)

//go:embed web/*
var webFS embed.FS

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
