package db

import (
	"context"
	"fmt"
	"time"

	"github.com/taskhub/backend/internal/config"
	"github.com/taskhub/backend/internal/db/migrations"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
)

const DuplicateEntry = 1062

func New(cfg config.Database) (*sqlx.DB, error) {
	location, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("time load location failed: %w", err)
	}
	conf := mysql.NewConfig()
	conf.Net = cfg.Net
	conf.Addr = cfg.Server
	conf.User = cfg.User
	conf.Passwd = cfg.Password
	conf.DBName = cfg.DBName
	conf.Timeout = cfg.Timeout
	conf.Loc = location
	conf.ParseTime = true
	conf.MultiStatements = true

	dbConn, err := sqlx.Connect("mysql", conf.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("db connection failed: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConnections)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConnections)

	if err := dbConn.Ping(); err != nil {
		return nil, err
	}

	return dbConn, nil
}

// gooseUp is swapped in tests.
var gooseUp = func(ctx context.Context, db *sqlx.DB) error {
	return goose.UpContext(ctx, db.DB, ".")
}

// Migrate applies the embedded schema migrations.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("mysql"); err != nil {
		return fmt.Errorf("goose set dialect failed: %w", err)
	}

	if err := gooseUp(ctx, db); err != nil {
		return fmt.Errorf("goose up failed: %w", err)
	}

	return nil
}

// IsDuplicateEntry reports a unique key violation.
func IsDuplicateEntry(err error) bool {
	//nolint:errorlint
	mysqlError, ok := err.(*mysql.MySQLError)
	return ok && mysqlError.Number == DuplicateEntry
}
