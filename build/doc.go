// Package build implements the "built" operation: discovering a whole
// graph from a seed vertex and a connector, or from a set of endogenous
// roots with no connector-declared path between them, or both at once.
package build
