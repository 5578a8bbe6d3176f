// Package dedup implements the "deduplicated" operation: collapsing
// every class of structurally-equal vertices (by identity, or by a
// caller-supplied classifier) down to one representative, and
// optionally coalescing the resulting parallel edges.
package dedup
