// Package session drives one visibility controller per connected page.
//
// A page opens a websocket, receives an init frame holding the root options
// and then a render frame after every recomputation. Its select and tap
// events map one to one onto SetRoot and Expand. Each session owns its own
// engine built from the document snapshot current at connect time.
package session
