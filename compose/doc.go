// Package compose implements the "composed" operation: rerouting edges
// by bridging two-hop paths u -> v -> w into a direct bypass edge u ->
// w wherever a client predicate holds, optionally iterating to a fixed
// point and optionally dropping the bridged originals.
package compose
