package bst

import "cmp"

type node[T cmp.Ordered] struct {
	value T
	left  *node[T]
	right *node[T]
}

// child returns the slot a value descends into from n.
func (n *node[T]) child(value T) **node[T] {
	if cmp.Less(value, n.value) {
		return &n.left
	}
	return &n.right
}
