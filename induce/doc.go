// Package induce implements the "induced" operation: a stage fold
// carrying an accumulator backward along edges from sinks to a single
// initial vertex.
package induce
