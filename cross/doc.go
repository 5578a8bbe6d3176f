// Package cross implements the "crossed" operation: the categorical
// product of two graphs, discovered pairwise from a seed pair of
// vertices.
package cross
