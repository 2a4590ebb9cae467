// Package service owns the loaded graph document.
//
// GraphService keeps the current document snapshot and its fingerprint,
// reloads it from the configured data source and answers the stateless
// queries the HTTP API needs (eligible roots, headless visible sets).
// Sessions capture a snapshot when they connect and keep it for their
// lifetime, so a reload never disturbs an open page.
//
// # Event System
//
// Load outcomes are published on an EventBus. The SSE hub forwards them to
// connected pages, which offer a refresh when the document changed.
package service
