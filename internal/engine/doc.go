// Package engine is the in-process graph engine behind a browser graph view.
//
// Graph keeps an immutable snapshot of a document (the Full Element Set) and a
// mutable working graph built on gonum's multigraph. It answers the traversal
// queries the visibility logic needs (lookup, transitive successors,
// neighborhood), performs set algebra over element Collections, dispatches node
// taps and forwards layout requests, together with the surviving elements, to a
// Renderer.
//
// Layout and drawing are not done here. A Renderer ships elements and layout
// options to whatever draws them (in production, the page behind a websocket).
package engine
