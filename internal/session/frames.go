package session

import (
	"hanzimap/internal/domain"
	"hanzimap/internal/engine"
	"hanzimap/internal/selection"
)

// Frame types
const (
	FrameInit   = "init"
	FrameRender = "render"
	FrameSelect = "select"
	FrameTap    = "tap"
)

// ClientFrame is a UI event sent by the page
type ClientFrame struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// InitFrame populates the root dropdown
type InitFrame struct {
	Type        string               `json:"type"`
	Session     string               `json:"session"`
	Roots       []selection.Option   `json:"roots"`
	Selected    string               `json:"selected"`
	Layout      engine.LayoutOptions `json:"layout"`
	Fingerprint string               `json:"fingerprint,omitempty"`
}

// RenderFrame replaces the page's elements and runs a layout over them
type RenderFrame struct {
	Type       string               `json:"type"`
	Root       string               `json:"root"`
	Expansions []string             `json:"expansions"`
	Elements   []domain.Element     `json:"elements"`
	Layout     engine.LayoutOptions `json:"layout"`
}
