// Package repository defines the storage interface for graph documents.
//
// A stored document is an alternative data source to a JSON or YAML file:
// it is imported once with the CLI and loaded at startup like any other
// source. The sqlite subpackage provides the implementation.
//
// Stores keep document order. Node and edge rows carry an ordinal so a
// document loads back exactly as it was imported, which the root selector
// relies on.
package repository
