package repositories

import "dashboard/internal/models"

// SearchRepository defines the interface for the search log. The log is
// append-only; no read path is exposed.
type SearchRepository interface {
	Create(search *models.Search) error
}
