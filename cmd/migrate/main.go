package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/angelmondragon/ssbcompass-backend/internal/admins"
	"github.com/angelmondragon/ssbcompass-backend/internal/candidates"
	"github.com/angelmondragon/ssbcompass-backend/internal/catalog"
	"github.com/angelmondragon/ssbcompass-backend/internal/events"
	"github.com/angelmondragon/ssbcompass-backend/internal/learners"
	"github.com/angelmondragon/ssbcompass-backend/internal/ledger"
	"github.com/angelmondragon/ssbcompass-backend/internal/seed"
	"github.com/angelmondragon/ssbcompass-backend/pkg/config"
	"github.com/angelmondragon/ssbcompass-backend/pkg/db"
	"github.com/angelmondragon/ssbcompass-backend/pkg/logger"
	"github.com/angelmondragon/ssbcompass-backend/pkg/migrate"
	"github.com/angelmondragon/ssbcompass-backend/pkg/security"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "migrate"})

	_ = godotenv.Load()

	cmd := flag.String("cmd", "up", "migration command: up|down|status|version|create|validate|seed")
	dir := flag.String("dir", "", "goose migrations directory; empty uses the migrations built into the binary")

	name := flag.String("name", "", "migration name (for create)")
	version := flag.String("version", "", "target version (YYYYMMDDHHMMSS) for -cmd=version")

	flag.Parse()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx = logg.WithFields(context.Background(), map[string]any{
		"env":    cfg.App.Env,
		"cmd":    *cmd,
		"dir":    *dir,
		"driver": cfg.DB.NormalizedDriver(),
	})

	// create and validate only touch the filesystem
	diskDir := *dir
	if diskDir == "" {
		diskDir = migrate.DefaultDir
	}
	switch *cmd {
	case "create":
		if *name == "" {
			fmt.Fprintln(os.Stderr, "missing -name for create")
			os.Exit(1)
		}
		path, err := migrate.CreateSQLMigration(diskDir, *name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create migration: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("created migration:", path)
		return

	case "validate":
		if err := migrate.ValidateDir(diskDir); err != nil {
			fmt.Fprintf(os.Stderr, "migration validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("migration validation passed")
		return
	}

	if !cfg.DB.Persistent() {
		fmt.Fprintf(os.Stderr, "-cmd=%s needs %s set to %s or %s\n", *cmd, config.EnvDBDriver, config.DBDriverPostgres, config.DBDriverSQLite)
		os.Exit(1)
	}

	dbClient, err := db.New(ctx, cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	if *cmd == "seed" {
		if err := runSeed(ctx, cfg, logg, dbClient); err != nil {
			fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if dbClient.Driver() != config.DBDriverPostgres {
		fmt.Fprintln(os.Stderr, "goose migrations target postgres; sqlite schemas are created by the api at startup")
		os.Exit(1)
	}

	sqlDB, err := dbClient.SQLDB()
	requireResource(ctx, logg, "sql database", err)

	logg.Info(ctx, "migrate ready")

	switch *cmd {
	case "up", "down", "status":
		if err := migrate.Run(ctx, sqlDB, *dir, *cmd); err != nil {
			fmt.Fprintf(os.Stderr, "goose %s failed: %v\n", *cmd, err)
			os.Exit(1)
		}

	case "version":
		if *version == "" {
			fmt.Fprintln(os.Stderr, "missing -version for version command")
			os.Exit(1)
		}
		if err := migrate.MigrateToVersion(ctx, sqlDB, *dir, *version); err != nil {
			fmt.Fprintf(os.Stderr, "goose version migrate failed: %v\n", err)
			os.Exit(1)
		}

	default:
		fmt.Fprintln(os.Stderr, "unknown -cmd value:", *cmd)
		os.Exit(1)
	}
}

func runSeed(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if err := migrate.EnsureSchema(ctx, cfg, logg, client); err != nil {
		return err
	}
	conn := client.DB()
	seeded, err := seed.Load(ctx, seed.Params{
		Learners:    learners.NewRepository(conn),
		Admins:      admins.NewRepository(conn),
		Courses:     catalog.NewRepository(conn),
		Purchases:   ledger.NewRepository(conn),
		Candidates:  candidates.NewRepository(conn),
		Events:      events.NewRepository(conn),
		Hasher:      security.NewHasher(cfg.Password),
		GracePeriod: cfg.Ledger.RefundGracePeriod,
	})
	if err != nil {
		return err
	}
	logg.Info(logg.WithField(ctx, "seeded", seeded), "demo data checked")
	return nil
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
