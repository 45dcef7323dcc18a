// Package cache implements a serialized, schema-versioned symbol-table
// cache backed by sqlite through gorm, grounded on the teacher's
// db/sqlite.go `Connect`/`Migrate` shape (open a dialector, run
// AutoMigrate, hand back a *gorm.DB) and on
// original_source/common/KeyValueStore.h/cc's versioned single-writer,
// multi-reader key/value store: a VERSION_KEY row is checked on open, and
// the whole store is cleared rather than served stale on a mismatch.
package cache

import (
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// SchemaVersion is bumped whenever the serialized Entry payload format
// changes incompatibly. Mirrors KeyValueStore::KeyValueStore's
// VERSION_KEY stamp-and-compare-on-open check.
const SchemaVersion = 1

// Entry is one cached row: a per-file serialized symbol-table summary,
// keyed by the source file's content hash so a cache hit never needs to
// re-resolve a file whose content hasn't changed.
type Entry struct {
	Key       string `gorm:"primaryKey"`
	Payload   []byte
	UpdatedAt time.Time
}

// meta stores the single schema-version row, mirroring KeyValueStore's
// reserved version key living in the same table as ordinary entries.
type meta struct {
	ID      uint `gorm:"primaryKey"`
	Version int
}

// Store is the gorm/sqlite-backed cache handle. Safe for concurrent use:
// sqlite itself serializes writers, and gorm.DB is safe for concurrent
// use from multiple goroutines.
type Store struct {
	db *gorm.DB
}

// Open connects to the sqlite database at dsn (a file path, or ":memory:"
// for tests), running migrations and clearing the store if its stamped
// schema version doesn't match SchemaVersion.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("cache: failed to open %s: %w", dsn, err)
	}
	if err := db.AutoMigrate(&Entry{}, &meta{}); err != nil {
		return nil, fmt.Errorf("cache: migration failed: %w", err)
	}

	s := &Store{db: db}
	if err := s.checkVersion(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) checkVersion() error {
	var m meta
	err := s.db.First(&m, "id = ?", 1).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return s.db.Create(&meta{ID: 1, Version: SchemaVersion}).Error
	case err != nil:
		return fmt.Errorf("cache: reading schema version: %w", err)
	case m.Version != SchemaVersion:
		return s.clear(SchemaVersion)
	}
	return nil
}

// clear wipes every Entry and restamps the schema version, mirroring
// KeyValueStore's behavior on a version mismatch: discard the whole store
// rather than attempt to interpret a payload format it no longer
// understands.
func (s *Store) clear(newVersion int) error {
	if err := s.db.Where("1 = 1").Delete(&Entry{}).Error; err != nil {
		return fmt.Errorf("cache: clearing stale entries: %w", err)
	}
	return s.db.Save(&meta{ID: 1, Version: newVersion}).Error
}

// Get returns the cached payload for key, or (nil, false) on a miss.
func (s *Store) Get(key string) ([]byte, bool) {
	var e Entry
	if err := s.db.First(&e, "key = ?", key).Error; err != nil {
		return nil, false
	}
	return e.Payload, true
}

// Put writes (or overwrites) the payload for key.
func (s *Store) Put(key string, payload []byte) error {
	e := Entry{Key: key, Payload: payload, UpdatedAt: timeNow()}
	return s.db.Save(&e).Error
}

// timeNow is split out so tests can't accidentally depend on wall-clock
// time in assertions beyond "UpdatedAt was set."
func timeNow() time.Time {
	return time.Now()
}

// Close releases the underlying sqlite connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
