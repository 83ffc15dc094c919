package models

import "encoding/json"

// Optional holds the result of a best-effort query: either a value or the
// reason it could not be collected.
type Optional[T any] struct {
	value  T
	reason string
	ok     bool
}

// Available wraps a collected value.
func Available[T any](v T) Optional[T] {
	return Optional[T]{value: v, ok: true}
}

// Unavailable records why a value could not be collected.
func Unavailable[T any](reason string) Optional[T] {
	return Optional[T]{reason: reason}
}

// Get returns the value and whether it was collected.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.ok
}

func (o Optional[T]) Reason() string {
	return o.reason
}

// Placeholder is the text shown in place of an unavailable value.
func (o Optional[T]) Placeholder() string {
	if o.reason == "" {
		return "Not available"
	}
	return "Not available (" + o.reason + ")"
}

// MarshalJSON encodes the value, or the placeholder string when unavailable.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return json.Marshal(o.Placeholder())
	}
	return json.Marshal(o.value)
}
