package database

import (
	"sync"
)

// IndexManager holds the live index snapshot behind a read-write lock.
// Queries read whatever snapshot is current when they start; a rebuild
// swaps in a complete new index without disturbing searches in flight.
type IndexManager struct {
	mu         sync.RWMutex
	path       string
	embedModel string
	index      *VectorIndex
}

// NewIndexManager creates a manager for the index persisted at path. The
// index is loaded lazily on first use.
func NewIndexManager(path, embedModel string) *IndexManager {
	return &IndexManager{
		path:       path,
		embedModel: embedModel,
	}
}

// Path returns the storage location of the persisted index.
func (m *IndexManager) Path() string {
	return m.path
}

// EmbedModel returns the embedding model the manager expects.
func (m *IndexManager) EmbedModel() string {
	return m.embedModel
}

// Load reads the persisted index from disk and makes it the current
// snapshot.
func (m *IndexManager) Load() error {
	ix, err := LoadVectorIndex(m.path, m.embedModel)
	if err != nil {
		return err
	}
	m.Swap(ix)
	return nil
}

// Swap replaces the current snapshot with a freshly built index.
func (m *IndexManager) Swap(ix *VectorIndex) {
	m.mu.Lock()
	m.index = ix
	m.mu.Unlock()
}

// Search queries the current snapshot. If no snapshot has been loaded yet
// the persisted index is loaded first; a missing index surfaces as
// ErrIndexNotFound.
func (m *IndexManager) Search(vector []float32, k int) ([]SearchResult, error) {
	ix, err := m.snapshot()
	if err != nil {
		return nil, err
	}
	return ix.Search(vector, k)
}

func (m *IndexManager) snapshot() (*VectorIndex, error) {
	m.mu.RLock()
	ix := m.index
	m.mu.RUnlock()
	if ix != nil {
		return ix, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.index == nil {
		loaded, err := LoadVectorIndex(m.path, m.embedModel)
		if err != nil {
			return nil, err
		}
		m.index = loaded
	}
	return m.index, nil
}

var _ Retriever = (*IndexManager)(nil)
