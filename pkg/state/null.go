package state

import "context"

// NullStore is a no-op store that never keeps anything.
type NullStore struct{}

// NewNullStore creates a null store.
func NewNullStore() Store {
	return &NullStore{}
}

// Load always reports a miss.
func (s *NullStore) Load(ctx context.Context, id string) (Snapshot, bool, error) {
	return Snapshot{}, false, ValidateID(id)
}

// Save validates its input and drops it.
func (s *NullStore) Save(ctx context.Context, id string, snap Snapshot) error {
	_, err := prepare(id, snap)
	return err
}

// Delete does nothing.
func (s *NullStore) Delete(ctx context.Context, id string) error {
	return nil
}

// Close does nothing.
func (s *NullStore) Close() error {
	return nil
}

// Ensure NullStore implements Store.
var _ Store = (*NullStore)(nil)
