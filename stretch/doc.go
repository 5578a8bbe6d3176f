// Package stretch implements the "stretched" operation: interposing a
// new vertex on every edge an expander callback selects, splitting
// (source, label, terminus) into (source, in_label, interposed) and
// (interposed, out_label, terminus).
package stretch
