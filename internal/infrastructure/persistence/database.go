package persistence

import (
	"errors"
	"strings"
	"time"

	"github.com/autoparts/backend/internal/domain/shared"
	"github.com/autoparts/backend/internal/infrastructure/config"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewPostgres opens a gorm connection with pooling configured
func NewPostgres(cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)

	if log != nil {
		log.Info("database connected",
			zap.String("host", cfg.Host),
			zap.String("dbname", cfg.DBName))
	}
	return db, nil
}

// translateError maps driver and gorm errors onto the domain taxonomy
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			return shared.ErrAlreadyExists
		case "40001", "40P01": // serialization_failure, deadlock_detected
			return shared.ErrTransactionFailure
		}
	}

	// gorm's postgres driver may surface pgx errors as plain strings
	msg := err.Error()
	if strings.Contains(msg, "duplicate key value") {
		return shared.ErrAlreadyExists
	}
	if strings.Contains(msg, "deadlock detected") || strings.Contains(msg, "could not serialize access") {
		return shared.ErrTransactionFailure
	}
	return err
}
