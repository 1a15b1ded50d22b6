package model

// Key identifies a typed value in an ExtraStore. Keys compare by name, so two
// packages must not register the same name with different types.
type Key[T any] struct {
	name string
}

// NewKey returns the key for name.
func NewKey[T any](name string) Key[T] { return Key[T]{name: name} }

// Name returns the key's name.
func (k Key[T]) Name() string { return k.name }

// ExtraStore carries out-of-band values alongside a model. The zero value is
// an empty store. Stores are persistent: Set returns a new store and leaves
// the receiver untouched.
type ExtraStore struct {
	values map[string]any
}

// Set returns a copy of s with key set to v.
func Set[T any](s ExtraStore, key Key[T], v T) ExtraStore {
	out := make(map[string]any, len(s.values)+1)
	for k, val := range s.values {
		out[k] = val
	}
	out[key.name] = v
	return ExtraStore{values: out}
}

// Get returns the value stored under key. A value of another type under the
// same name is reported as absent.
func Get[T any](s ExtraStore, key Key[T]) (T, bool) {
	v, ok := s.values[key.name].(T)
	return v, ok
}

// Len returns the number of stored values.
func (s ExtraStore) Len() int { return len(s.values) }
