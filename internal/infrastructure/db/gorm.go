package db

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"clinic-booking/internal/domain/appointment"
)

// Dialector picks the gorm driver for DB_DRIVER.
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "sqlite":
		return sqlite.Open(dsn), nil
	case "mysql":
		return mysql.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}
}

func OpenGorm(driver, dsn string, debug bool) (*gorm.DB, error) {
	dial, err := Dialector(driver, dsn)
	if err != nil {
		return nil, err
	}
	return OpenGormWithDialector(dial, debug)
}

// OpenGormWithDialector applies the pool settings and pings; debug logs every statement.
func OpenGormWithDialector(dial gorm.Dialector, debug bool) (*gorm.DB, error) {
	level := logger.Warn
	if debug {
		level = logger.Info
	}
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(level),
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	if dial.Name() == "sqlite" {
		// single writer; also keeps one shared :memory: database
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	}
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	log.Printf("gorm: connected (%s)", dial.Name())
	return db, nil
}

// Migrate creates or updates the appointments table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&appointment.Appointment{})
}
