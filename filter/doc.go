// Package filter implements the "filtered" operation: deleting every
// vertex for which a client predicate returns false, pruning its edges
// along with it.
package filter
