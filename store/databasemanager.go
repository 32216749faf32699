package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type LogLevel int

const (
	LogLevelSilent LogLevel = iota + 1
	LogLevelError
	LogLevelWarn
	LogLevelInfo
)

// ParseLogLevel maps a config value to a LogLevel, defaulting to error.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(s) {
	case "silent":
		return LogLevelSilent
	case "warn":
		return LogLevelWarn
	case "info":
		return LogLevelInfo
	default:
		return LogLevelError
	}
}

type DatabaseManager struct {
	SqlDB    *sql.DB
	LogLevel LogLevel
}

// NewDatabaseManager opens the connection pool. dsn is a go-sql-driver
// DSN including the schema, e.g. user:pass@tcp(host:3306)/ponto?parseTime=true
func NewDatabaseManager(dsn string, maxConnection int) (*DatabaseManager, error) {
	sqlDB, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open pool: %w", err)
	}

	if maxConnection <= 0 {
		maxConnection = 4
	}
	sqlDB.SetMaxOpenConns(maxConnection)
	sqlDB.SetMaxIdleConns(maxConnection)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping pool: %w", err)
	}

	return &DatabaseManager{SqlDB: sqlDB, LogLevel: LogLevelError}, nil
}

// GetDB wraps the shared pool into a gorm session bound to ctx.
func (dm *DatabaseManager) GetDB(ctx context.Context) (*gorm.DB, error) {
	dialector := mysql.New(mysql.Config{
		Conn: dm.SqlDB,
	})

	// Map local LogLevel to GORM LogLevel
	gormLogLevel := logger.Silent
	switch dm.LogLevel {
	case LogLevelError:
		gormLogLevel = logger.Error
	case LogLevelWarn:
		gormLogLevel = logger.Warn
	case LogLevelInfo:
		gormLogLevel = logger.Info
	case LogLevelSilent:
		gormLogLevel = logger.Silent
	default:
		gormLogLevel = logger.Error
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm: %w", err)
	}
	return db.WithContext(ctx), nil
}

// Close closes the pool
func (dm *DatabaseManager) Close() error {
	return dm.SqlDB.Close()
}

func (dm *DatabaseManager) Exec(ctx context.Context, fn func(db *gorm.DB) error) error {
	db, err := dm.GetDB(ctx)
	if err != nil {
		return err
	}
	return fn(db)
}
