package app

import (
	"fmt"

	"github.com/aussiebroadwan/glowup/internal/glowup/store"
	"github.com/aussiebroadwan/glowup/internal/glowup/store/drivers/gormkv"
	"github.com/aussiebroadwan/glowup/internal/glowup/store/drivers/memory"
	"github.com/aussiebroadwan/glowup/internal/glowup/store/drivers/sqlite"
)

const (
	DriverSQLite = "sqlite"
	DriverGorm   = "gorm"
	DriverMemory = "memory"
)

// OpenStore opens the configured driver and applies its migrations.
func OpenStore(cfg Config) (store.Store, error) {
	var (
		st  store.Store
		err error
	)

	switch cfg.StoreDriver {
	case DriverSQLite, "":
		dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", cfg.DatabaseFile)
		st, err = sqlite.NewStore(dsn)
	case DriverGorm:
		url := cfg.DatabaseURL
		if url == "" {
			url = cfg.DatabaseFile
		}
		st, err = gormkv.Open(url)
	case DriverMemory:
		st = memory.NewStore()
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.StoreDriver, err)
	}

	if err := st.ApplyMigrations(); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("failed to apply store migrations: %w", err)
	}
	return st, nil
}
