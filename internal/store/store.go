package store

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVStore is the snapshot persistence contract: a synchronous string-keyed
// key-value store. Get reports a missing key via the boolean, not an error.
type KVStore interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Entry is a single key/value row backing the store.
type Entry struct {
	Key   string `gorm:"primarykey;type:varchar(64)"`
	Value string `gorm:"type:text"`
}

// TableName overrides the GORM table name.
func (Entry) TableName() string {
	return "kv_entries"
}

// GormStore is a GORM implementation of KVStore.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a KVStore backed by the given database.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Get reads the value stored under key.
func (s *GormStore) Get(key string) (string, bool, error) {
	var entry Entry
	err := s.db.First(&entry, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.Value, true, nil
}

// Set writes value under key, replacing any previous value.
func (s *GormStore) Set(key, value string) error {
	return s.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&Entry{Key: key, Value: value}).Error
}
