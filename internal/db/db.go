package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/trimconnect/salon-booking-api/internal/config"
	"github.com/trimconnect/salon-booking-api/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	// many2many join rows carry no extra columns, the explicit join model
	// only pins the table name and the composite key
	if err := db.SetupJoinTable(&models.Appointment{}, "Services", &models.AppointmentService{}); err != nil {
		log.Fatalf("failed to set up join table: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Profile{},
		&models.Salon{},
		&models.Service{},
		&models.Appointment{},
		&models.AppointmentService{},
		&models.Payment{},
		&models.PlatformSetting{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}
