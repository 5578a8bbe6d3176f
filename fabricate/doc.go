// Package fabricate implements the "fabricated" operation: a structural
// copy of a graph, producing a new graph isomorphic to the source with
// every vertex and edge value passed through a client-supplied copier.
package fabricate
