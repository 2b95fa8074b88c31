package postgres

import (
	"fmt"
	"log"
	"time"

	"github.com/LavaJover/shvark-foodbot-service/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the hosted database with the API key as the connection password.
// The pool connects lazily, so an unreachable database does not fail startup.
func InitDB(cfg *config.FoodbotConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		Logger:               logger.Default.LogMode(logger.Warn),
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

func MustInitDB(cfg *config.FoodbotConfig) *gorm.DB {
	db, err := InitDB(cfg)
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}
	return db
}
