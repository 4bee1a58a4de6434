package database

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"payoutdesk/config"
	"payoutdesk/models"
	"payoutdesk/services"
)

var DB *gorm.DB

// Open connects to driver ("postgres" or "sqlite") without touching the
// global handle.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	return gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
}

// Connect opens the configured database, stores it in DB and migrates it
// when DB_AUTO_MIGRATE is set.
func Connect(cfg *config.Config) error {
	db, err := Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	DB = db
	log.Info().Str("driver", cfg.DBDriver).Msg("Connected to database")

	if cfg.DBAutoMigrate {
		log.Info().Msg("Starting auto-migration")
		if err := Migrate(DB); err != nil {
			return fmt.Errorf("failed to auto-migrate database: %w", err)
		}
		log.Info().Msg("Auto migration completed")
	}
	return nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Client{},
		&models.Transaction{},
		&models.Invoice{},
		&models.InvoiceCounter{},
	); err != nil {
		return err
	}

	if db.Dialector.Name() == "postgres" {
		return db.Exec("CREATE SEQUENCE IF NOT EXISTS " + services.InvoiceSequence).Error
	}
	return nil
}

// NewAllocator returns the invoice number allocator selected by
// INVOICE_ALLOCATOR.
func NewAllocator(cfg *config.Config, db *gorm.DB) (services.NumberAllocator, error) {
	switch cfg.InvoiceAllocator {
	case "sequence":
		return services.NewSequenceAllocator(db, cfg.InvoicePrefix), nil
	case "counter":
		return services.NewCounterAllocator(db, cfg.InvoicePrefix), nil
	}
	return nil, fmt.Errorf("unsupported invoice allocator %q", cfg.InvoiceAllocator)
}
