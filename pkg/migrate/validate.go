package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/multierr"
)

var migrationFileRe = regexp.MustCompile(`^(\d{14})_([a-z0-9_]+)\.sql$`)

const (
	upMarker   = "-- +goose Up"
	downMarker = "-- +goose Down"
)

type migrationFile struct {
	version string
	name    string
}

// ValidateDir checks every .sql file in dir: a YYYYMMDDHHMMSS_name.sql
// filename, a unique version, and an Up section followed by a Down section.
// All problems are reported together.
func ValidateDir(dir string) error {
	_, err := scanDir(dir)
	return err
}

// ValidateParity validates the postgres migrations in base and the sqlite
// ones under it, and requires both to carry the same versions and names.
func ValidateParity(base string) error {
	pgFiles, pgErr := scanDir(base)
	liteDir := DirFor(base, sqliteSubdir)
	liteFiles, liteErr := scanDir(liteDir)
	if err := multierr.Combine(pgErr, liteErr); err != nil {
		return err
	}

	var errs error
	for version, pg := range pgFiles {
		lite, ok := liteFiles[version]
		switch {
		case !ok:
			errs = multierr.Append(errs, fmt.Errorf("migration %s_%s has no sqlite counterpart in %q", version, pg.name, liteDir))
		case lite.name != pg.name:
			errs = multierr.Append(errs, fmt.Errorf("migration %s is named %q for postgres and %q for sqlite", version, pg.name, lite.name))
		}
	}
	for version, lite := range liteFiles {
		if _, ok := pgFiles[version]; !ok {
			errs = multierr.Append(errs, fmt.Errorf("sqlite migration %s_%s has no postgres counterpart in %q", version, lite.name, base))
		}
	}
	return errs
}

func scanDir(dir string) (map[string]migrationFile, error) {
	if dir == "" {
		return nil, fmt.Errorf("dir is required")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %q: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	files := make(map[string]migrationFile, len(names))
	var errs error
	for _, name := range names {
		m := migrationFileRe.FindStringSubmatch(name)
		if m == nil {
			errs = multierr.Append(errs, fmt.Errorf("invalid migration filename %q (expected YYYYMMDDHHMMSS_name.sql)", name))
			continue
		}
		if prev, ok := files[m[1]]; ok {
			errs = multierr.Append(errs, fmt.Errorf("duplicate migration version %s in %s_%s.sql and %q", m[1], m[1], prev.name, name))
			continue
		}
		files[m[1]] = migrationFile{version: m[1], name: m[2]}

		full := filepath.Join(dir, name)
		body, err := os.ReadFile(full)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("read file %q: %w", full, err))
			continue
		}
		errs = multierr.Append(errs, checkSections(name, string(body)))
	}
	return files, errs
}

func checkSections(name, body string) error {
	up := strings.Index(body, upMarker)
	down := strings.Index(body, downMarker)
	switch {
	case up < 0:
		return fmt.Errorf("migration %q missing %q", name, upMarker)
	case down < 0:
		return fmt.Errorf("migration %q missing %q", name, downMarker)
	case down < up:
		return fmt.Errorf("migration %q has %q before %q", name, downMarker, upMarker)
	}
	return nil
}
