package config

// Optional is a value that may be absent. The zero value is absent.
type Optional[T any] struct {
	value T
	ok    bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, ok: true}
}

// None returns an absent Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.ok
}

// IsSet reports whether a value is present.
func (o Optional[T]) IsSet() bool {
	return o.ok
}

// FirstOf returns the first present value among sources, evaluated left to
// right, or fallback when none is present.
func FirstOf[T any](fallback T, sources ...Optional[T]) T {
	for _, src := range sources {
		if v, ok := src.Get(); ok {
			return v
		}
	}
	return fallback
}
