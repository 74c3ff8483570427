package repositories

import (
	"sync"
	"time"

	"dashboard/internal/models"

	"github.com/google/uuid"
)

// MockSearchRepository is an in-memory implementation of SearchRepository.
type MockSearchRepository struct {
	searches []models.Search
	failWith error
	mu       sync.RWMutex
}

// NewMockSearchRepository creates a new instance of MockSearchRepository.
func NewMockSearchRepository() *MockSearchRepository {
	return &MockSearchRepository{}
}

// FailWith makes every subsequent Create return err. Used in tests to
// simulate a broken search log.
func (r *MockSearchRepository) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failWith = err
}

// Create appends one search record.
func (r *MockSearchRepository) Create(search *models.Search) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWith != nil {
		return r.failWith
	}

	if search.ID == "" {
		search.ID = uuid.New().String()
	}
	if search.SearchedAt.IsZero() {
		search.SearchedAt = time.Now()
	}
	r.searches = append(r.searches, *search)
	return nil
}

// All returns a copy of every logged search.
func (r *MockSearchRepository) All() []models.Search {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Search, len(r.searches))
	copy(out, r.searches)
	return out
}
