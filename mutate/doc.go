// Package mutate implements the "mutated" operation: rewriting every
// vertex and edge value in place via client callbacks, optionally
// informed by a PROP-phase property and a traversal zone.
package mutate
