package db

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"plantastic/internal/config"
	"plantastic/internal/models"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Init opens the configured database, migrates it and stores the handle in DB.
func Init(cfg config.Database) {
	var err error
	DB, err = Open(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Printf("Database connection established (%s)", cfg.Driver)

	if err := Migrate(DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")
}

// Open connects to postgres or sqlite depending on cfg.Driver.
func Open(cfg config.Database) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	}
	if cfg.Debug {
		gormCfg.Logger = logger.Default.LogMode(logger.Info)
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dsn := cfg.URL
		if dsn == "" {
			// Fallback for local dev if not set
			dsn = "host=localhost user=postgres password=postgres dbname=plantastic port=5432 sslmode=disable"
		}
		dialector = postgres.Open(dsn)
	case "sqlite":
		if isFileDSN(cfg.URL) {
			if err := os.MkdirAll(filepath.Dir(cfg.URL), 0o755); err != nil {
				return nil, fmt.Errorf("db: create data dir: %w", err)
			}
		}
		dialector = sqlite.Open(cfg.URL)
	default:
		return nil, fmt.Errorf("db: unsupported driver %q", cfg.Driver)
	}

	gdb, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, err
	}

	if cfg.Driver == "sqlite" {
		// SQLite allows a single writer; serialize through one connection.
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return gdb, nil
}

// Migrate creates or updates every table the application uses.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&models.User{},
		&models.Favorite{},
		&models.Post{},
		&models.Comment{},
		&models.Vote{},
		&models.Complaint{},
		&models.NewsletterSubscriber{},
	)
}

// OpenMemory opens a migrated, private in-memory SQLite database. Tests use it
// in place of postgres.
func OpenMemory(name string) (*gorm.DB, error) {
	gdb, err := Open(config.Database{
		Driver: "sqlite",
		URL:    fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
	})
	if err != nil {
		return nil, err
	}
	if err := Migrate(gdb); err != nil {
		return nil, err
	}
	return gdb, nil
}

// isFileDSN reports whether dsn names a plain database file whose directory may need creating.
func isFileDSN(dsn string) bool {
	return dsn != "" && dsn != ":memory:" && !strings.HasPrefix(dsn, "file:")
}
