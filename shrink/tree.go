// Package shrink provides the lazy rose tree that every generator attaches
// to its samples, the numeric descent used by the leaf generators, and the
// greedy search that walks a tree down to a locally minimal counter-example.
package shrink

// Tree is a lazy rose tree: a value together with a function that produces
// its "one step smaller" children on demand. Children are never computed
// until something asks for them, and re-asking the same node for its
// children must produce the same sequence in the same order — callers may
// rely on both properties.
type Tree[T any] struct {
	value    T
	children func() []Tree[T]
}

// Leaf builds a Tree with no shrink candidates, used by generators whose
// values cannot be made any smaller (constants, already-minimal values).
func Leaf[T any](value T) Tree[T] {
	return Tree[T]{value: value}
}

// Node builds a Tree whose children are produced lazily by kids.
func Node[T any](value T, kids func() []Tree[T]) Tree[T] {
	return Tree[T]{value: value, children: kids}
}

// Value returns the value at the root of the tree.
func (t Tree[T]) Value() T {
	return t.value
}

// Children computes and returns this node's shrink candidates. Safe to call
// on a Leaf, which always returns nil.
func (t Tree[T]) Children() []Tree[T] {
	if t.children == nil {
		return nil
	}
	return t.children()
}

// MapTree applies f to every value in the tree, preserving its shape. Used
// by the generator algebra's map combinator: the mapped generator's shrink
// tree is the source generator's tree with f applied pointwise.
func MapTree[T, U any](t Tree[T], f func(T) U) Tree[U] {
	return Node(f(t.Value()), func() []Tree[U] {
		kids := t.Children()
		out := make([]Tree[U], len(kids))
		for i, k := range kids {
			out[i] = MapTree(k, f)
		}
		return out
	})
}

// FilterChildren keeps only the children of t (recursively) whose value
// satisfies keep. A child that fails keep is dropped, but its own children
// are promoted in its place so valid reductions further down stay reachable.
func FilterChildren[T any](t Tree[T], keep func(T) bool) []Tree[T] {
	var out []Tree[T]
	for _, k := range t.Children() {
		k := k
		if keep(k.Value()) {
			out = append(out, Node(k.Value(), func() []Tree[T] { return FilterChildren(k, keep) }))
		} else {
			out = append(out, FilterChildren(k, keep)...)
		}
	}
	return out
}

// Prepend concatenates two children lists lazily, used by combinators that
// need to order one family of shrink candidates before another (flat_map's
// structure-before-contents rule).
func Prepend[T any](first, second func() []Tree[T]) func() []Tree[T] {
	return func() []Tree[T] {
		return append(first(), second()...)
	}
}
