package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// snapshotRow is one persisted snapshot key. The payload is the JSON blob
// the application layer produced; this layer never inspects it.
type snapshotRow struct {
	Key     string `gorm:"primaryKey;column:key"`
	Payload []byte `gorm:"column:payload"`
}

func (snapshotRow) TableName() string { return "snapshots" }

// SQLiteStore persists snapshots in a device-local sqlite file, the server
// analogue of browser localStorage.
type SQLiteStore struct {
	db *gorm.DB
}

// OpenSQLite opens (and migrates) the snapshot database at path. ":memory:"
// is accepted for throwaway runs.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite snapshot store: %w", err)
	}
	if err := db.AutoMigrate(&snapshotRow{}); err != nil {
		return nil, fmt.Errorf("migrate snapshot schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	var row snapshotRow
	err := s.db.WithContext(ctx).First(&row, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load snapshot %s: %w", key, err)
	}
	return row.Payload, true, nil
}

func (s *SQLiteStore) Save(ctx context.Context, key string, payload []byte) error {
	row := snapshotRow{Key: key, Payload: payload}
	if err := s.db.WithContext(ctx).Save(&row).Error; err != nil {
		return fmt.Errorf("save snapshot %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Delete(&snapshotRow{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("delete snapshot %s: %w", key, err)
	}
	return nil
}
