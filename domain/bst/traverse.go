package bst

import (
	"cmp"
	"fmt"
	"io"
)

// Visit is one step of an in-order traversal: a value and the depth of its
// node below the root.
type Visit[T cmp.Ordered] struct {
	Value T
	Depth int
}

func (v Visit[T]) String() string {
	return fmt.Sprintf("(%v,%d)", v.Value, v.Depth)
}

// Walk calls fn for every value in ascending order, stopping early if fn
// returns false. Depths are measured from the root during the walk and do
// not consult the Depth watermark.
func (t *Tree[T]) Walk(fn func(Visit[T]) bool) {
	type frame struct {
		n     *node[T]
		depth int
	}
	var stack []frame
	n, depth := t.root, 0
	for n != nil || len(stack) > 0 {
		for n != nil {
			stack = append(stack, frame{n, depth})
			n, depth = n.left, depth+1
		}
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(Visit[T]{Value: f.n.value, Depth: f.depth}) {
			return
		}
		n, depth = f.n.right, f.depth+1
	}
}

// Traverse returns every value in ascending order paired with its depth.
// It returns nil for an empty tree.
func (t *Tree[T]) Traverse() []Visit[T] {
	if t.root == nil {
		return nil
	}
	out := make([]Visit[T], 0, t.size)
	t.Walk(func(v Visit[T]) bool {
		out = append(out, v)
		return true
	})
	return out
}

// Values returns the values in ascending order.
func (t *Tree[T]) Values() []T {
	if t.root == nil {
		return nil
	}
	out := make([]T, 0, t.size)
	t.Walk(func(v Visit[T]) bool {
		out = append(out, v.Value)
		return true
	})
	return out
}

// Print writes a "ROOT: <value>" header followed by one "<value>\t\t<depth>"
// line per value in ascending order. An empty tree writes nothing.
func (t *Tree[T]) Print(w io.Writer) error {
	if t.root == nil {
		return nil
	}
	if _, err := fmt.Fprintf(w, "ROOT: %v\n", t.root.value); err != nil {
		return err
	}
	var err error
	t.Walk(func(v Visit[T]) bool {
		_, err = fmt.Fprintf(w, "%v\t\t%d\n", v.Value, v.Depth)
		return err == nil
	})
	return err
}
