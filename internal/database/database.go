package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"tienda-api/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Service owns the long-lived database handle. It is opened once at process
// start and closed on shutdown; handlers receive it by injection, never by
// constructing their own connection.
type Service struct {
	db    *gorm.DB
	sqlDB *sql.DB
}

// New opens the connection pool described by cfg.
func New(cfg config.DatabaseConfig) (*Service, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s search_path=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.Schema,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		// Surfaces unique-constraint violations as gorm.ErrDuplicatedKey.
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB handle: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &Service{db: db, sqlDB: sqlDB}, nil
}

// DB returns the ORM handle.
func (s *Service) DB() *gorm.DB {
	return s.db
}

// SQL returns the underlying pooled connection, used by the migration
// tooling and the health check.
func (s *Service) SQL() *sql.DB {
	return s.sqlDB
}

// Health reports whether the database answers a ping.
func (s *Service) Health(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	stats := map[string]string{}
	if err := s.sqlDB.PingContext(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = err.Error()
		return stats
	}

	stats["status"] = "up"
	stats["open_connections"] = fmt.Sprintf("%d", s.sqlDB.Stats().OpenConnections)
	return stats
}

// Close releases the connection pool.
func (s *Service) Close() error {
	return s.sqlDB.Close()
}
