// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/keyurm111/eloska-luxe-showcase/internal/admin"
	"github.com/keyurm111/eloska-luxe-showcase/internal/config"
	"github.com/keyurm111/eloska-luxe-showcase/internal/core"
)

func main() {
	var (
		configPath = flag.String("config", "config.yaml", "path to config file")
		email      = flag.String("email", "", "admin email (required)")
		name       = flag.String("name", "Admin", "display name")
		password   = flag.String("password", "", "password, defaults to $ADMIN_PASSWORD")
		role       = flag.String("role", admin.RoleAdmin, "admin or super_admin")
		deactivate = flag.Bool("deactivate", false, "deactivate the admin with -email instead of creating one")
	)
	flag.Parse()

	in := admin.CreateInput{
		Name:     *name,
		Email:    *email,
		Password: *password,
		Role:     *role,
	}
	if in.Password == "" {
		in.Password = os.Getenv("ADMIN_PASSWORD")
	}

	if err := run(*configPath, in, *deactivate); err != nil {
		slog.Error("create admin failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string, in admin.CreateInput, deactivate bool) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := core.NewDatabase(ctx, cfg.Mongo)
	if err != nil {
		return err
	}
	defer db.Close(context.Background()) //nolint:errcheck // process exits next

	repo := admin.NewRepository(db.DB)
	if err := repo.EnsureIndexes(ctx); err != nil {
		return err
	}

	svc := admin.NewService(repo)

	if deactivate {
		existing, err := svc.GetByEmail(ctx, core.NormalizeEmail(in.Email))
		if err != nil {
			return fmt.Errorf("find admin %s: %w", in.Email, err)
		}
		if err := svc.Deactivate(ctx, existing.ID); err != nil {
			return err
		}
		slog.Info("admin deactivated", "id", existing.ID, "email", existing.Email)
		return nil
	}

	created, err := svc.Create(ctx, in)
	if err != nil {
		if errors.Is(err, admin.ErrEmailExists) {
			return fmt.Errorf("an admin with email %s already exists", core.NormalizeEmail(in.Email))
		}
		return err
	}

	slog.Info("admin created",
		"id", created.ID,
		"email", created.Email,
		"role", created.Role,
	)
	return nil
}
