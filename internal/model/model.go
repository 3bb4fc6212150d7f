// Package model contains GORM model definitions for locally persisted state.
package model

import "time"

// SessionEntry is one key/value pair of persisted client session state,
// the on-disk analogue of a browser localStorage item.
type SessionEntry struct {
	Key       string    `gorm:"type:text;primaryKey"`
	Value     string    `gorm:"type:text;not null;default:''"`
	UpdatedAt time.Time `gorm:"not null"`
}
