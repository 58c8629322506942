// Package option carries the "present or absent" result returned by node
// lookups, so an absent field is never confused with a field holding nil.
package option

import "fmt"

// Option is either Some (holds a value, possibly nil) or Nothing.
type Option[T any] struct {
	val   T
	valid bool
}

func Some[T any](val T) Option[T] {
	return Option[T]{val: val, valid: true}
}

func Nothing[T any]() Option[T] {
	return Option[T]{}
}

func (o Option[T]) IsSome() bool {
	return o.valid
}

func (o Option[T]) IsNothing() bool {
	return !o.valid
}

// Get returns the held value and whether there was one, in comma-ok form.
func (o Option[T]) Get() (T, bool) {
	return o.val, o.valid
}

// Unwrap returns the held value.
// Panics on Nothing.
func (o Option[T]) Unwrap() T {
	if !o.valid {
		panic("option: Unwrap called on Nothing")
	}
	return o.val
}

// UnwrapOrZero returns the held value or the zero value of T.
func (o Option[T]) UnwrapOrZero() T {
	return o.val
}

func (o Option[T]) String() string {
	if o.valid {
		return fmt.Sprintf("Some(%v)", o.val)
	}
	return "Nothing"
}
