package config

import (
	"log"
	"os"
	"time"

	"hotel-reservations/models"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectDatabase opens the MySQL store, migrates the schema and seeds
// reference data. Schema ownership beyond AutoMigrate (RLS, tuning)
// belongs to an external migration collaborator.
func ConnectDatabase(cfg Config, zlog *zap.Logger) (*gorm.DB, error) {
	dsn, err := cfg.MySQLDSN()
	if err != nil {
		return nil, err
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, err
	}

	// Parent -> child order.
	if err := db.AutoMigrate(
		&models.Role{},
		&models.RoomType{},
		&models.Guest{},
		&models.Room{},
		&models.Reservation{},
		&models.ReservationRoom{},
		&models.ReservationGuest{},
		&models.Payment{},
	); err != nil {
		return nil, err
	}

	if err := seedDatabase(db, zlog); err != nil {
		return nil, err
	}
	return db, nil
}

// seedDatabase populates reference data on an empty store: the default
// room-type catalogue and the front-desk role vocabulary.
func seedDatabase(db *gorm.DB, zlog *zap.Logger) error {
	var rtCount int64
	db.Model(&models.RoomType{}).Count(&rtCount)
	if rtCount == 0 {
		roomTypes := []models.RoomType{
			{Code: "STD", Name: "Standard", Description: "Standard Room", CapacityAdults: 2, CapacityChildren: 1, BaseRate: 80.00},
			{Code: "SUP", Name: "Superior", Description: "Superior Room", CapacityAdults: 2, CapacityChildren: 2, BaseRate: 110.00},
			{Code: "DLX", Name: "Deluxe", Description: "Deluxe Room", CapacityAdults: 3, CapacityChildren: 2, BaseRate: 150.00},
			{Code: "CON", Name: "Connecting", Description: "Connecting Room", CapacityAdults: 4, CapacityChildren: 2, BaseRate: 190.00},
		}
		if err := db.Create(&roomTypes).Error; err != nil {
			return err
		}
		zlog.Info("room types seeded", zap.Int("count", len(roomTypes)))
	}

	var roleCount int64
	db.Model(&models.Role{}).Count(&roleCount)
	if roleCount == 0 {
		roles := []models.Role{
			{Code: "owner", Name: "Owner", Description: "System owner with full access"},
			{Code: "manager", Name: "Manager", Description: "Manager with elevated access"},
			{Code: "receptionist", Name: "Receptionist", Description: "Front desk operations"},
			{Code: "cleaner", Name: "Cleaner", Description: "Housekeeping access"},
		}
		if err := db.Create(&roles).Error; err != nil {
			return err
		}
		zlog.Info("roles seeded", zap.Int("count", len(roles)))
	}

	return nil
}
