package db

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/nail-studio/internal/config"
	"github.com/BruksfildServices01/nail-studio/internal/models"
)

// slotIndex garante no banco no máximo um agendamento não cancelado por
// (data, horário, profissional).
const slotIndex = `
	CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_slot
	ON appointments (date, time, staff_id)
	WHERE status <> 'cancelled'
`

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := Open(cfg.DBUrl)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	if err := Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate")
	}

	return db
}

func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt: true,
		Logger:      logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Service{},
		&models.Staff{},
		&models.Appointment{},
		&models.FinancialRecord{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}

	if err := db.Exec(slotIndex).Error; err != nil {
		return fmt.Errorf("slot index: %w", err)
	}

	return nil
}
