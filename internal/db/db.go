package db

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/table-booking/internal/config"
	domain "github.com/BruksfildServices01/table-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/table-booking/internal/models"
)

func NewDB(cfg *config.Config, log *zap.Logger) *gorm.DB {
	gormLogLevel := logger.Warn
	if cfg.IsProduction() {
		gormLogLevel = logger.Error
	}

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      logger.Default.LogMode(gormLogLevel),
	})
	if err != nil {
		log.Fatal("failed to connect database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("failed to get sql.DB", zap.Error(err))
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		log.Fatal("failed to migrate", zap.Error(err))
	}

	if err := SeedStatuses(db); err != nil {
		log.Fatal("failed to seed statuses", zap.Error(err))
	}

	return db
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Zone{},
		&models.Table{},
		&models.Customer{},
		&models.ReservationStatus{},
		&models.Reservation{},
		&models.AuditLog{},
	)
}

// SeedStatuses creates the default labels when the status table is empty.
// Existing reference data is never touched.
func SeedStatuses(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.ReservationStatus{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	statuses := make([]models.ReservationStatus, 0, len(domain.DefaultLabels()))
	for _, label := range domain.DefaultLabels() {
		statuses = append(statuses, models.ReservationStatus{Label: label})
	}
	return db.Create(&statuses).Error
}
