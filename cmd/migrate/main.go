package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/mixtrack-backend/pkg/config"
	"github.com/angelmondragon/mixtrack-backend/pkg/db"
	"github.com/angelmondragon/mixtrack-backend/pkg/logger"
	"github.com/angelmondragon/mixtrack-backend/pkg/migrate"
)

type options struct {
	cmd     string
	dir     string
	name    string
	version string
}

var errUsage = errors.New("usage")

func main() {
	opts := options{}
	flag.StringVar(&opts.cmd, "cmd", "up", "up|down|status|version|create|validate")
	flag.StringVar(&opts.dir, "dir", "", "migrations directory; defaults to the one matching MIXTRACK_DB_DRIVER (create and validate use the postgres base)")
	flag.StringVar(&opts.name, "name", "", "migration name for -cmd=create")
	flag.StringVar(&opts.version, "version", "", "target YYYYMMDDHHMMSS for -cmd=version")
	flag.Parse()

	_ = godotenv.Load()

	if err := run(opts); err != nil {
		if errors.Is(err, errUsage) {
			flag.Usage()
		}
		fmt.Fprintf(os.Stderr, "migrate %s: %v\n", opts.cmd, err)
		os.Exit(1)
	}
}

func run(opts options) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logg := logger.New(logger.Options{
		ServiceName: "migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":    cfg.App.Env,
		"cmd":    opts.cmd,
		"driver": cfg.DB.Driver,
	})

	switch opts.cmd {
	case "create":
		if opts.name == "" {
			return fmt.Errorf("%w: -name is required", errUsage)
		}
		paths, err := migrate.CreateSQLMigration(baseDir(opts.dir), opts.name)
		if err != nil {
			return err
		}
		for _, path := range paths {
			logg.Info(logg.WithField(ctx, "path", path), "migration created")
		}
		return nil
	case "validate":
		if opts.dir != "" {
			err = migrate.ValidateDir(opts.dir)
		} else {
			err = migrate.ValidateParity(migrate.DefaultDir)
		}
		if err != nil {
			return err
		}
		logg.Info(ctx, "migrations valid")
		return nil
	}

	dir := opts.dir
	if dir == "" {
		dir = migrate.DirFor(migrate.DefaultDir, cfg.DB.Driver)
	}
	ctx = logg.WithField(ctx, "dir", dir)

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(ctx, "error closing database", err)
		}
	}()
	sqlDB, err := dbClient.DB().DB()
	if err != nil {
		return fmt.Errorf("sql database: %w", err)
	}

	switch opts.cmd {
	case "up", "down", "status":
		err = migrate.Run(ctx, sqlDB, cfg.DB.Driver, dir, opts.cmd)
	case "version":
		if opts.version == "" {
			return fmt.Errorf("%w: -version is required", errUsage)
		}
		err = migrate.MigrateToVersion(ctx, sqlDB, cfg.DB.Driver, dir, opts.version)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, opts.cmd)
	}
	if err != nil {
		return err
	}
	logg.Info(ctx, "migrate complete")
	return nil
}

func baseDir(dir string) string {
	if dir == "" {
		return migrate.DefaultDir
	}
	return dir
}
