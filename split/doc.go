// Package split implements the "split" operation: replacing every
// vertex with a pair of new vertices produced by ana and cata,
// bridged together and taking over the original's incident and
// outgoing edges via a labeled ctop on each side.
package split
