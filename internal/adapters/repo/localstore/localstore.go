// Package localstore persists the store's key-value namespace in a
// single-table SQLite database, standing in for browser local storage:
// one row per logical key, last write wins, a single logical writer.
package localstore

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/lmercier/maisoncafe/internal/domain"
)

// Entry is one persisted namespace key.
type Entry struct {
	Key   string `gorm:"primaryKey;size:80"`
	Value []byte `gorm:"type:blob"`
}

func (Entry) TableName() string { return "entries" }

type Store struct{ db *gorm.DB }

func New(db *gorm.DB) *Store { return &Store{db: db} }

// Migrate creates the backing table. Safe to run on every startup.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&Entry{})
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var e Entry
	if err := s.db.WithContext(ctx).First(&e, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e.Value, nil
}

func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	return s.db.WithContext(ctx).Save(&Entry{Key: key, Value: value}).Error
}

func (s *Store) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Delete(&Entry{}, "key = ?", key).Error
}

// Reset wipes the whole namespace.
func (s *Store) Reset(ctx context.Context) error {
	return s.db.WithContext(ctx).Where("1 = 1").Delete(&Entry{}).Error
}
