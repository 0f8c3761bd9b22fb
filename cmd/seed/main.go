// Package main provides a CLI tool for seeding the database with
// initial roles, reference catalogs and the admin account.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"stockpos/internal/core/apperror"
	"stockpos/internal/core/id"
	"stockpos/internal/domain/catalogs/category"
	"stockpos/internal/domain/catalogs/coin"
	"stockpos/internal/domain/catalogs/unit"
	"stockpos/internal/domain/users"
	"stockpos/internal/infrastructure/storage/postgres"
	"stockpos/internal/infrastructure/storage/postgres/catalog_repo"
	"stockpos/internal/infrastructure/storage/postgres/user_repo"
	"stockpos/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}
	logger.SetDefault(log)

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	txm := postgres.NewTxManager(pool)
	roleRepo := user_repo.NewRoleRepo(txm)
	userRepo := user_repo.NewUserRepo(txm)

	roleIDs, err := seedRoles(ctx, roleRepo, log)
	if err != nil {
		log.Fatalw("failed to seed roles", "error", err)
	}

	if err := seedAdminUser(ctx, userRepo, roleIDs["Administrator"], log); err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedCatalogs(ctx, txm, log); err != nil {
			log.Fatalw("failed to seed catalogs", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func seedRoles(ctx context.Context, repo *user_repo.RoleRepo, log *logger.Logger) (map[string]id.ID, error) {
	descriptions := map[string]string{
		"Administrator": "full access to catalogs, users and billing",
		"Employee":      "day-to-day stock and billing operations",
		"Client":        "walk-in buyer account created at checkout",
	}

	ids := make(map[string]id.ID, len(descriptions))
	for _, name := range []string{"Administrator", "Employee", "Client"} {
		existing, err := repo.FindByName(ctx, name)
		if err == nil {
			ids[name] = existing.ID
			continue
		}
		if !apperror.IsNotFound(err) {
			return nil, err
		}

		role := users.NewRole(name)
		desc := descriptions[name]
		role.Description = &desc
		if err := repo.Create(ctx, role); err != nil {
			return nil, err
		}
		ids[name] = role.ID
		log.Infow("role created", "name", name)
	}
	return ids, nil
}

func seedAdminUser(ctx context.Context, repo *user_repo.UserRepo, adminRoleID id.ID, log *logger.Logger) error {
	username := envOr("ADMIN_USERNAME", "admin")
	password := envOr("ADMIN_PASSWORD", "Admin123!")
	document := envOr("ADMIN_DOCUMENT", "00000000")

	if _, err := repo.FindByUsername(ctx, username); err == nil {
		log.Infow("admin user already exists", "username", username)
		return nil
	} else if !apperror.IsNotFound(err) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := users.NewUser(username, document, adminRoleID)
	admin.PasswordHash = string(hash)
	admin.FirstName = "System"
	admin.LastName = "Administrator"

	if err := repo.Create(ctx, admin); err != nil {
		return err
	}

	log.Infow("admin user created", "username", username)
	return nil
}

func seedCatalogs(ctx context.Context, txm *postgres.TxManager, log *logger.Logger) error {
	unitRepo := catalog_repo.NewUnitRepo(txm)
	for _, u := range []struct{ name, abbr string }{
		{"Piece", "pc"},
		{"Kilogram", "kg"},
		{"Liter", "l"},
	} {
		if _, err := unitRepo.FindByName(ctx, u.name); err == nil {
			continue
		} else if !apperror.IsNotFound(err) {
			return err
		}
		if err := unitRepo.Create(ctx, unit.NewUnit(u.name, u.abbr)); err != nil {
			return err
		}
		log.Infow("unit created", "name", u.name)
	}

	categoryRepo := catalog_repo.NewCategoryRepo(txm)
	for _, name := range []string{"General", "Beverages", "Groceries"} {
		if _, err := categoryRepo.FindByName(ctx, name); err == nil {
			continue
		} else if !apperror.IsNotFound(err) {
			return err
		}
		if err := categoryRepo.Create(ctx, category.NewCategory(name)); err != nil {
			return err
		}
		log.Infow("category created", "name", name)
	}

	coinRepo := catalog_repo.NewCoinRepo(txm)
	for _, c := range []struct{ name, symbol, abbr string }{
		{"US Dollar", "$", "USD"},
		{"Euro", "€", "EUR"},
	} {
		if _, err := coinRepo.FindByName(ctx, c.name); err == nil {
			continue
		} else if !apperror.IsNotFound(err) {
			return err
		}
		if err := coinRepo.Create(ctx, coin.NewCoin(c.name, c.symbol, c.abbr)); err != nil {
			return err
		}
		log.Infow("coin created", "name", c.name)
	}

	return nil
}

func envOr(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
