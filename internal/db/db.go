package db

import (
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"github.com/ramcivil/monitoring-service/internal/config"
)

// New opens the backing database. A postgres:// DSN selects the Postgres
// driver; anything else is treated as a SQLite path for local development
// and tests (cgo-free modernc driver).
func New(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	database, err := open(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(database, cfg.DB.Driver); err != nil {
		return nil, err
	}

	log.Info().Str("driver", cfg.DB.Driver).Msg("database ready")
	return database, nil
}

func open(dsn string) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return gorm.Open(postgres.Open(dsn), gormCfg)
	}

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		gormCfg,
	)
}
