package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var unsafeNameRe = regexp.MustCompile(`[^a-z0-9_]+`)

const migrationTemplate = `-- +goose Up
-- +goose StatementBegin
-- %[1]s (%[2]s)
-- +goose StatementEnd

-- +goose Down
-- +goose StatementBegin
-- rollback %[1]s (%[2]s)
-- +goose StatementEnd
`

// CreateSQLMigration writes an empty goose migration for both dialects, one
// in base and one in its sqlite subdirectory, sharing a single version. It
// returns the created paths, postgres first.
func CreateSQLMigration(base, name string) ([]string, error) {
	return createAt(base, name, time.Now().UTC())
}

func createAt(base, name string, now time.Time) ([]string, error) {
	if base == "" {
		return nil, fmt.Errorf("dir is required")
	}
	slug := migrationSlug(name)
	if slug == "" {
		return nil, fmt.Errorf("name %q has no usable characters", name)
	}

	filename := fmt.Sprintf("%s_%s.sql", now.Format("20060102150405"), slug)
	targets := []struct {
		dir     string
		dialect string
	}{
		{dir: base, dialect: "postgres"},
		{dir: DirFor(base, sqliteSubdir), dialect: "sqlite"},
	}

	for _, target := range targets {
		if _, err := os.Stat(filepath.Join(target.dir, filename)); err == nil {
			return nil, fmt.Errorf("migration already exists: %s", filepath.Join(target.dir, filename))
		}
	}

	paths := make([]string, 0, len(targets))
	for _, target := range targets {
		if err := os.MkdirAll(target.dir, 0o755); err != nil {
			return paths, fmt.Errorf("mkdir %q: %w", target.dir, err)
		}
		path := filepath.Join(target.dir, filename)
		body := fmt.Sprintf(migrationTemplate, slug, target.dialect)
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			return paths, fmt.Errorf("write migration %q: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func migrationSlug(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = unsafeNameRe.ReplaceAllString(slug, "_")
	return strings.Trim(slug, "_")
}
