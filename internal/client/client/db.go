package client

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/bereal/internal/client/migrations"
	"github.com/dmitrijs2005/bereal/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/bereal/internal/client/repositories/notifications"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// Repositories bundles the local stores opened on one database.
type Repositories struct {
	DB            *sql.DB
	Metadata      metadata.Repository
	Notifications *notifications.SQLiteRepository
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens the SQLite database at dsn and applies migrations.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		DB:            db,
		Metadata:      metadata.NewSQLiteRepository(db),
		Notifications: notifications.NewSQLiteRepository(db),
	}
}
