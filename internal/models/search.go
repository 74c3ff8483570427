package models

import "time"

// Search is one logged weather lookup. Records are write-only: nothing in the
// API reads them back, they exist for diagnostics.
type Search struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	City       string    `json:"city" gorm:"type:varchar(100)"`
	Lat        *float64  `json:"lat,omitempty"`
	Lon        *float64  `json:"lon,omitempty"`
	SearchedAt time.Time `json:"searched_at"`
}
