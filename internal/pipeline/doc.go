// Package pipeline overlaps chunk computation with region transfer
// across a fixed pool of worker-owned output regions, draining slots
// round-robin so bytes leave in line order.
//
// The only contract to implement is Sink (Transfer).
// This keeps the coordinator swappable and testable off the splice path.
package pipeline
