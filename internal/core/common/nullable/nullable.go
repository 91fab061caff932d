// Package nullable distinguishes an absent JSON field from an explicit null in
// partial updates.
package nullable

import (
	"bytes"
	"encoding/json"
)

// Value is Set when the key was present in the payload. Ptr is nil when the
// payload carried null.
type Value[T any] struct {
	Set bool
	Ptr *T
}

func Of[T any](v T) Value[T] {
	return Value[T]{Set: true, Ptr: &v}
}

func Null[T any]() Value[T] {
	return Value[T]{Set: true}
}

func (v *Value[T]) UnmarshalJSON(data []byte) error {
	v.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		v.Ptr = nil
		return nil
	}
	var t T
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	v.Ptr = &t
	return nil
}

func (v Value[T]) MarshalJSON() ([]byte, error) {
	if v.Ptr == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*v.Ptr)
}

// IsNull reports an explicit null.
func (v Value[T]) IsNull() bool {
	return v.Set && v.Ptr == nil
}

// Apply overwrites dst when the field was present.
func (v Value[T]) Apply(dst **T) {
	if !v.Set {
		return
	}
	if v.Ptr == nil {
		*dst = nil
		return
	}
	cp := *v.Ptr
	*dst = &cp
}
