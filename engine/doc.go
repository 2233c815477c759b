// Package engine runs the progressive reveal of a glyph grid.
//
// An Engine owns a single run: it realizes the score grid for the configured
// mode once at Start, then advances a monotonic progress value by a fixed
// amount per frame until every cell's score has been crossed. Rendering draws
// only cells whose score is at or below the current progress, inside a
// top-left viewport fixed when the surface is prepared.
//
// Lifecycle:
//
//	Idle --Start--> Playing --progress reaches max--> Complete
//	Playing|Complete --Restart--> Playing (progress 0, same scores)
//
// The loop is headless-testable: Run takes an injected TickSource and an
// event channel, and draws through the Surface interface. Nothing in this
// package touches a terminal or window directly.
package engine
