package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql migrations/sqlite/*.sql
var embedded embed.FS

// EmbeddedFS returns the migrations compiled into the binary for driver.
func EmbeddedFS(driver string) (fs.FS, error) {
	if _, err := Dialect(driver); err != nil {
		return nil, err
	}
	return fs.Sub(embedded, filepath.ToSlash(DirFor("migrations", driver)))
}

// UpEmbedded applies every embedded migration for driver. It uses a goose
// Provider, so it leaves goose's package-level dialect and logger alone.
func UpEmbedded(ctx context.Context, db *sql.DB, driver string) error {
	if db == nil {
		return fmt.Errorf("db is required")
	}
	dialect, err := Dialect(driver)
	if err != nil {
		return err
	}
	fsys, err := EmbeddedFS(driver)
	if err != nil {
		return err
	}
	provider, err := goose.NewProvider(goose.Dialect(dialect), db, fsys)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}
