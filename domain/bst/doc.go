// Package bst implements an unbalanced binary search tree over any ordered
// type. Values double as keys and must be unique; inserting a value that is
// already present is reported through the tree's logger and otherwise
// ignored.
//
// The tree keeps two independent measures of its shape. Depth is a
// watermark of the deepest insertion seen so far with the root at depth 0.
// Height is recomputed from the structure on every call and counts levels,
// so a tree holding only a root has height 1.
//
// A Tree is not safe for concurrent use. Callers sharing a tree across
// goroutines wrap it with their own lock (see the service package).
package bst
