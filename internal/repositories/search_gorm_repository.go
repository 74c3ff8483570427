package repositories

import (
	"fmt"
	"time"

	"dashboard/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMSearchRepository is a GORM implementation of SearchRepository.
type GORMSearchRepository struct {
	db *gorm.DB
}

// NewGORMSearchRepository creates a new instance of GORMSearchRepository.
func NewGORMSearchRepository(db *gorm.DB) *GORMSearchRepository {
	return &GORMSearchRepository{
		db: db,
	}
}

// Create appends one search record.
func (r *GORMSearchRepository) Create(search *models.Search) error {
	if search.ID == "" {
		search.ID = uuid.New().String()
	}
	if search.SearchedAt.IsZero() {
		search.SearchedAt = time.Now()
	}
	if err := r.db.Create(search).Error; err != nil {
		return fmt.Errorf("failed to create search record: %w", err)
	}
	return nil
}
