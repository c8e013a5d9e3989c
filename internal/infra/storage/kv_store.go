package storage

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ksaxena149/personal-relationship-manager/internal/observability/logging"
)

// KeyValueStore is the durable per-profile storage the service keeps its
// small named entries in: the acknowledged-ID set and the bearer
// credential. It is last-writer-wins across processes sharing the same
// file; concurrent profiles are not coordinated.
type KeyValueStore interface {
	Get(ctx context.Context, name string) (string, bool, error)
	Set(ctx context.Context, name, value string) error
	Delete(ctx context.Context, name string) error
}

// EntryModel is the persistence model of one named entry.
type EntryModel struct {
	Name      string `gorm:"primaryKey;size:128"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (EntryModel) TableName() string {
	return "entries"
}

type sqliteStore struct {
	db *gorm.DB
}

// NewSQLiteStore opens (or creates) the SQLite database at path and
// ensures the entries table exists.
func NewSQLiteStore(path string) (KeyValueStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logging.NewGormLogger(200 * time.Millisecond),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&EntryModel{}); err != nil {
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Get(ctx context.Context, name string) (string, bool, error) {
	var m EntryModel

	result := s.db.WithContext(ctx).Where("name = ?", name).First(&m)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", false, nil
		}

		slog.Error("failed to read entry",
			"name", name,
			"error", result.Error,
		)

		return "", false, result.Error
	}

	return m.Value, true, nil
}

func (s *sqliteStore) Set(ctx context.Context, name, value string) error {
	m := EntryModel{
		Name:      name,
		Value:     value,
		UpdatedAt: time.Now(),
	}

	result := s.db.WithContext(ctx).Save(&m)
	if result.Error != nil {
		slog.Error("failed to write entry",
			"name", name,
			"error", result.Error,
		)

		return result.Error
	}

	return nil
}

func (s *sqliteStore) Delete(ctx context.Context, name string) error {
	result := s.db.WithContext(ctx).Where("name = ?", name).Delete(&EntryModel{})
	if result.Error != nil {
		slog.Error("failed to delete entry",
			"name", name,
			"error", result.Error,
		)

		return result.Error
	}

	return nil
}
