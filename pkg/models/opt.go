package models

import (
	"bytes"
	"encoding/json"
)

// Opt is a field that can be unset (absent from the JSON object), explicitly
// null, or hold a value. The zero value is unset.
//
// Struct fields of type Opt must carry the `omitzero` JSON option so that
// unset fields are left out of the payload instead of being encoded as null.
type Opt[T any] struct {
	value T
	set   bool
	null  bool
}

// Some returns an Opt holding v.
func Some[T any](v T) Opt[T] {
	return Opt[T]{value: v, set: true}
}

// Null returns an Opt that encodes as JSON null.
func Null[T any]() Opt[T] {
	return Opt[T]{set: true, null: true}
}

// IsSet reports whether the field was present, null or not.
func (o Opt[T]) IsSet() bool { return o.set }

// IsNull reports whether the field is present and explicitly null.
func (o Opt[T]) IsNull() bool { return o.set && o.null }

// IsZero reports whether the field is unset. encoding/json uses it for omitzero.
func (o Opt[T]) IsZero() bool { return !o.set }

// Get returns the value and whether one is present.
func (o Opt[T]) Get() (T, bool) {
	if !o.set || o.null {
		var zero T
		return zero, false
	}
	return o.value, true
}

// OrElse returns the value, or def when the field is unset or null.
func (o Opt[T]) OrElse(def T) T {
	if v, ok := o.Get(); ok {
		return v
	}
	return def
}

// Value returns the value, or the zero value of T.
func (o Opt[T]) Value() T {
	v, _ := o.Get()
	return v
}

func (o Opt[T]) MarshalJSON() ([]byte, error) {
	if !o.set || o.null {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

func (o *Opt[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = Null[T]()
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}
