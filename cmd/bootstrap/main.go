// Command bootstrap seeds the first maintenance administrator.
//
//	bootstrap --email admin@example.com --password s3cret! [--name "Facilities Admin"]
//
// Values fall back to ADMIN_EMAIL, ADMIN_PASSWORD and ADMIN_NAME. Running it
// again for an existing email changes nothing.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/spec-kit/asset-service/internal/config"
	"github.com/spec-kit/asset-service/internal/observability"
	"github.com/spec-kit/asset-service/internal/persistence"
	"github.com/spec-kit/asset-service/internal/repository"
	"github.com/spec-kit/asset-service/internal/service"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "bootstrap: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flags := pflag.NewFlagSet("bootstrap", pflag.ContinueOnError)
	flags.StringVar(&cfg.Admin.Email, "email", cfg.Admin.Email, "administrator email")
	flags.StringVar(&cfg.Admin.Password, "password", cfg.Admin.Password, "administrator password (at least 6 characters)")
	flags.StringVar(&cfg.Admin.Name, "name", cfg.Admin.Name, "administrator display name")
	indexes := flags.Bool("ensure-indexes", cfg.Mongo.EnsureIndexes, "create collection indexes before seeding")
	if err := flags.Parse(args); err != nil {
		return err
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := persistence.NewMongo(ctx, cfg.Mongo, logger)
	if err != nil {
		return err
	}
	defer store.Close(logger)

	if *indexes {
		if err := persistence.EnsureIndexes(ctx, store.Database, logger); err != nil {
			return err
		}
	}

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo: repository.NewUserRepository(store.Database),
		Logger:   logger,
	})
	created, err := authService.BootstrapAdmin(ctx, cfg.Admin)
	if err != nil {
		return err
	}
	if created {
		logger.Info("administrator created", zap.String("email", cfg.Admin.Email))
	} else {
		logger.Info("administrator already exists", zap.String("email", cfg.Admin.Email))
	}
	return nil
}
