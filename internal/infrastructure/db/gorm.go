package db

import (
	"log/slog"
	"time"

	"motac-hrms/internal/domain/application"
	"motac-hrms/internal/domain/approval"
	"motac-hrms/internal/domain/equipment"
	"motac-hrms/internal/domain/loantx"
	"motac-hrms/internal/domain/user"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func OpenGorm(dsn string) (*gorm.DB, error) {
	return OpenGormWithDialector(mysql.Open(dsn))
}

// OpenGormWithDialector is split out so tests can plug in a mocked *sql.DB.
func OpenGormWithDialector(dial gorm.Dialector) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}
	gdb, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	slog.Info("gorm: connected")
	return gdb, nil
}

// Migrate creates or updates the schema for every persisted entity.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&user.User{},
		&application.EmailApplication{},
		&application.LoanApplication{},
		&approval.Approval{},
		&equipment.Equipment{},
		&loantx.LoanTransaction{},
	)
}
