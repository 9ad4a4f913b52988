package config

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	intdb "tripdiary/internal/db"
	"tripdiary/internal/migrations"

	"github.com/go-sql-driver/mysql"
	"github.com/pressly/goose/v3"
)

// MySQLDSN builds the driver DSN from the DB_* settings.
func MySQLDSN(env Env) string {
	cfg := mysql.NewConfig()
	cfg.User = env.DBUser
	cfg.Passwd = env.DBPassword
	cfg.Net = "tcp"
	cfg.Addr = env.DBAddr
	cfg.DBName = env.DBName
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	cfg.Timeout = 5 * time.Second
	cfg.ReadTimeout = 30 * time.Second
	cfg.WriteTimeout = 30 * time.Second
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg.FormatDSN()
}

// ConnectMySQL opens and pings the MySQL pool used by the trips store.
func ConnectMySQL(ctx context.Context, env Env) (*sql.DB, error) {
	db, err := sql.Open("mysql", MySQLDSN(env))
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(10 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}

	log.Printf("[DB] connected to mysql addr=%s db=%s", env.DBAddr, env.DBName)
	return db, nil
}

// MigrateMySQL applies the embedded goose migrations and checks the trips
// table is in place afterwards.
func MigrateMySQL(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.MySQL)
	if err := goose.SetDialect("mysql"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "mysql"); err != nil {
		return fmt.Errorf("migrate mysql: %w", err)
	}
	if !intdb.HasTable(ctx, db, "trips") {
		return fmt.Errorf("migrate mysql: trips table missing after migration")
	}
	return nil
}
