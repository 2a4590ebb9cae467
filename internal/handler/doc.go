// Package handler implements the HTTP surface of the character graph explorer.
//
// # Handlers
//
// GraphHandler serves the loaded document, the eligible roots for the
// selection dropdown and headless visible-set queries. Interactive sessions
// live on the websocket endpoint served by the session package; load events
// stream from the SSE hub.
//
// # Response Format
//
// Success responses return JSON data. Error responses return JSON with an
// {error, details} structure.
//
// # Middleware
//
// Chain composes Recover, CORS and Logger around the mux. Logger also records
// the request metrics exported on /metrics. Compress gzips responses and is
// applied per route so that streaming endpoints are left alone.
package handler
