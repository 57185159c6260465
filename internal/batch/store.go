package batch

import "sync"

// Store defines the interface for batch storage operations. Insertion order
// is part of the contract: List returns receipts in the order they were
// appended, and Remove never reorders the remaining records.
type Store interface {
	// Append adds a receipt to the end of the batch
	Append(receipt *Receipt) error

	// List returns all receipts in insertion order
	List() ([]*Receipt, error)

	// Remove deletes the receipt with the given ID; a no-op if not found
	Remove(id string) error

	// Close closes the store
	Close() error
}

// MemoryStore implements the Store interface with a session-scoped,
// in-memory batch. A single mutex is enough: the batch is accessed by one
// session at a time and only needs protection from the HTTP server's
// per-request goroutines.
type MemoryStore struct {
	mu       sync.Mutex
	receipts []*Receipt
}

// NewMemoryStore creates a new empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Append adds a receipt to the end of the batch
func (m *MemoryStore) Append(receipt *Receipt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.receipts = append(m.receipts, receipt)
	return nil
}

// List returns all receipts in insertion order
func (m *MemoryStore) List() ([]*Receipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	receipts := make([]*Receipt, len(m.receipts))
	copy(receipts, m.receipts)
	return receipts, nil
}

// Remove deletes the receipt with the given ID, preserving the order of the
// remaining receipts. Removing an unknown ID is a no-op.
func (m *MemoryStore) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.receipts {
		if r.ID == id {
			m.receipts = append(m.receipts[:i], m.receipts[i+1:]...)
			return nil
		}
	}
	return nil
}

// Close closes the store (no-op for the in-memory batch)
func (m *MemoryStore) Close() error {
	return nil
}
