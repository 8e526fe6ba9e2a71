package bst

import (
	"cmp"

	"arbor/infra/logging"
)

// Tree is an unbalanced binary search tree. The zero value is an empty
// tree ready for use and logs through logging.DefaultLogger.
type Tree[T cmp.Ordered] struct {
	root   *node[T]
	depth  int
	size   int
	logger logging.Logger
}

// Option configures a Tree.
type Option func(*options)

type options struct {
	logger logging.Logger
}

// WithLogger routes duplicate-insert diagnostics to l.
func WithLogger(l logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New returns an empty tree.
func New[T cmp.Ordered](opts ...Option) *Tree[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	t := &Tree[T]{}
	if o.logger != nil {
		t.logger = logging.Prefixed(o.logger, "bst")
	}
	return t
}

// Insert adds value to the tree and reports whether it was added. A value
// that is already present leaves the tree untouched and is logged.
//
// Values are ordered with cmp.Compare, so every NaN is treated as the same
// value and sorts before all other floats.
func (t *Tree[T]) Insert(value T) bool {
	if t.root == nil {
		t.root = &node[T]{value: value}
		t.size++
		return true
	}

	n, depth := t.root, 0
	for {
		if cmp.Compare(value, n.value) == 0 {
			t.log().Infof("value already exists in tree %v", value)
			return false
		}
		slot := n.child(value)
		depth++
		if *slot == nil {
			*slot = &node[T]{value: value}
			t.size++
			if depth > t.depth {
				t.depth = depth
			}
			return true
		}
		n = *slot
	}
}

// Contains reports whether value is in the tree.
func (t *Tree[T]) Contains(value T) bool {
	for n := t.root; n != nil; n = *n.child(value) {
		if cmp.Compare(value, n.value) == 0 {
			return true
		}
	}
	return false
}

// Root returns the value at the root, or false if the tree is empty.
func (t *Tree[T]) Root() (T, bool) {
	if t.root == nil {
		var zero T
		return zero, false
	}
	return t.root.value, true
}

// Len returns the number of values in the tree.
func (t *Tree[T]) Len() int { return t.size }

// Depth returns the deepest level any value has been inserted at, with the
// root at 0. It only ever grows.
func (t *Tree[T]) Depth() int { return t.depth }

// Height returns the number of levels on the tallest root-to-leaf path: 0
// for an empty tree, 1 for a lone root. It walks the whole tree.
func (t *Tree[T]) Height() int {
	if t.root == nil {
		return 0
	}
	type frame struct {
		n     *node[T]
		level int
	}
	height := 0
	stack := []frame{{t.root, 1}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.level > height {
			height = f.level
		}
		if f.n.left != nil {
			stack = append(stack, frame{f.n.left, f.level + 1})
		}
		if f.n.right != nil {
			stack = append(stack, frame{f.n.right, f.level + 1})
		}
	}
	return height
}

func (t *Tree[T]) log() logging.Logger {
	if t.logger == nil {
		t.logger = logging.Prefixed(logging.DefaultLogger, "bst")
	}
	return t.logger
}
