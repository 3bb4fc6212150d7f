package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/d9705996/hubclient/internal/db"
	"github.com/d9705996/hubclient/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQLStorage keeps entries in the session_entries table of a local SQLite
// database.
type SQLStorage struct {
	db *gorm.DB
}

// NewSQLStorage wraps an already migrated database handle.
func NewSQLStorage(gdb *gorm.DB) *SQLStorage {
	return &SQLStorage{db: gdb}
}

// OpenSQLStorage opens the database file and prepares the schema.
func OpenSQLStorage(file string) (*SQLStorage, error) {
	gdb, err := db.Open(file)
	if err != nil {
		return nil, err
	}
	return NewSQLStorage(gdb), nil
}

func (s *SQLStorage) Get(key string) (string, bool, error) {
	var e model.SessionEntry
	err := s.db.Where(&model.SessionEntry{Key: key}).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load %s: %w", key, err)
	}
	return e.Value, true, nil
}

func (s *SQLStorage) Set(key, value string) error {
	e := model.SessionEntry{Key: key, Value: value}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
	if err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}
	return nil
}

func (s *SQLStorage) Remove(key string) error {
	if err := s.db.Delete(&model.SessionEntry{Key: key}).Error; err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

// Ping checks database connectivity.
func (s *SQLStorage) Ping(ctx context.Context) error {
	return db.NewPinger(s.db).Ping(ctx)
}

// Close releases the database handle.
func (s *SQLStorage) Close() error {
	return db.Close(s.db)
}
