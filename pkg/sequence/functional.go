package sequence

import "iter"

// Iterator is a generic, immutable, chainable iterator for any type T.
type Iterator[T any] struct {
	seq iter.Seq[T]
}

// From creates a new Iterator over a slice of T.
func From[T any](data []T) *Iterator[T] {
	return &Iterator[T]{
		seq: func(yield func(T) bool) {
			for _, v := range data {
				if !yield(v) {
					return
				}
			}
		},
	}
}

// Collect exhausts the iterator and returns a slice of all elements.
func (i *Iterator[T]) Collect() []T {
	var out []T
	i.seq(func(v T) bool {
		out = append(out, v)
		return true
	})
	return out
}

// Filter returns a new Iterator containing only elements that satisfy the predicate.
func (i *Iterator[T]) Filter(pred func(T) bool) *Iterator[T] {
	return &Iterator[T]{
		seq: func(yield func(T) bool) {
			i.seq(func(v T) bool {
				if pred(v) {
					return yield(v)
				}
				return true
			})
		},
	}
}

// Count returns the number of elements in the iterator.
func (i *Iterator[T]) Count() int {
	count := 0
	i.seq(func(_ T) bool {
		count++
		return true
	})
	return count
}

// Fold reduces the iterator to a single value of a possibly different type.
func Fold[T any, A any](it *Iterator[T], init A, fn func(A, T) A) A {
	acc := init
	it.seq(func(v T) bool {
		acc = fn(acc, v)
		return true
	})
	return acc
}

// ToArray applies the callback to each element and returns the results.
func ToArray[T any, S any](it *Iterator[T], callback func(T) S) []S {
	var arr []S
	it.seq(func(v T) bool {
		arr = append(arr, callback(v))
		return true
	})
	return arr
}

// GroupBy groups elements by a key function, returning a map from key to slice of T.
func GroupBy[T any, K comparable](it *Iterator[T], keyFn func(T) K) map[K][]T {
	groups := make(map[K][]T)
	it.seq(func(v T) bool {
		k := keyFn(v)
		groups[k] = append(groups[k], v)
		return true
	})
	return groups
}
