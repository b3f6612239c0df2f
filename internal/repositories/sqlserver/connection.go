package sqlserver

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"time"

	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Internal wraps the portal's SQL Server connection.
type Internal struct {
	db *gorm.DB
}

// dsn builds the connection string from SQLSERVER_* variables.
func dsn() string {
	u := &url.URL{
		Scheme:   "sqlserver",
		User:     url.UserPassword(os.Getenv("SQLSERVER_USERNAME"), os.Getenv("SQLSERVER_PASSWORD")),
		Host:     os.Getenv("SQLSERVER_HOST") + ":" + os.Getenv("SQLSERVER_PORT"),
		RawQuery: url.Values{"database": {os.Getenv("SQLSERVER_DATABASE")}}.Encode(),
	}
	return u.String()
}

// NewSQLServerInternal opens and pings the database.
func NewSQLServerInternal() (*Internal, error) {
	db, err := gorm.Open(sqlserver.Open(dsn()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("opening sql server: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("pinging sql server: %w", err)
	}

	return NewInternal(db), nil
}

// NewInternal wraps an existing gorm handle.
func NewInternal(db *gorm.DB) *Internal {
	return &Internal{db: db}
}

// Ping checks the connection for the health endpoint.
func (s *Internal) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool.
func (s *Internal) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
