// Package gormkv stores the key-value mirror through gorm, so the same data can
// live in postgres (for synced test devices and the demo backend) or in a
// sqlite file.
package gormkv

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aussiebroadwan/glowup/internal/glowup/store"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Entry is one stored key.
type Entry struct {
	Key       string `gorm:"primaryKey;size:191"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (Entry) TableName() string { return "kv_entries" }

type Store struct {
	db *gorm.DB
}

// Open connects to url. URLs starting with postgres use the postgres
// dialector, anything else is treated as a sqlite file name or DSN.
func Open(url string) (*Store, error) {
	var dialector gorm.Dialector
	if strings.HasPrefix(url, "postgres") {
		dialector = postgres.Open(url)
	} else {
		dialector = sqlite.Open(url)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) ApplyMigrations() error {
	return s.db.AutoMigrate(&Entry{})
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var e Entry
	err := s.db.WithContext(ctx).Where("key = ?", key).Take(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", store.ErrNotFound
	}
	if err != nil {
		return "", store.WrapIO("get", key, err)
	}
	return e.Value, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	return store.WrapIO("set", key, upsert(s.db.WithContext(ctx), key, value))
}

func (s *Store) RemoveAll(ctx context.Context, keys ...string) error {
	var errs []error
	for _, k := range keys {
		if err := s.db.WithContext(ctx).Where("key = ?", k).Delete(&Entry{}).Error; err != nil {
			errs = append(errs, store.WrapIO("remove", k, err))
		}
	}
	return errors.Join(errs...)
}

func (s *Store) WriteBatch(ctx context.Context, b store.Batch) error {
	if b.Empty() {
		return nil
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for k, v := range b.Set {
			if err := upsert(tx, k, v); err != nil {
				return err
			}
		}
		if len(b.Remove) > 0 {
			if err := tx.Where("key IN ?", b.Remove).Delete(&Entry{}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	return store.WrapIO("batch", "", err)
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func upsert(db *gorm.DB, key, value string) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&Entry{Key: key, Value: value, UpdatedAt: time.Now().UTC()}).Error
}
