// Package merge implements the "merged" operation: fusing every class
// of vertices sharing a classifier key into one representative vertex,
// redirecting all of the class's edges onto it.
package merge
