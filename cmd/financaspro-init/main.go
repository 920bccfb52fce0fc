// Command financaspro-init creates the database, runs migrations, and seeds
// the default category configuration for first use.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"github.com/caiograbovskii/financaspro/internal/cli"
	"github.com/caiograbovskii/financaspro/internal/core"
	"github.com/caiograbovskii/financaspro/internal/log"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentApp)

	userID := flag.String("user", "default", "user id to seed categories for")
	flag.Parse()

	cfg := cli.LoadAndValidateConfig(logger)

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	logger.Info("Database ready", "path", cfg.SQLiteDBPath)

	ctx := context.Background()

	existing, err := repo.GetCategoryConfig(ctx, *userID)
	if err != nil {
		logger.Error("Failed to read category configuration", log.FieldError, err)
		os.Exit(1)
	}
	if existing != nil {
		logger.Info("Category configuration already present, leaving untouched",
			log.FieldUserID, *userID)
		return
	}

	raw, err := json.Marshal(core.DefaultCategories())
	if err != nil {
		logger.Error("Failed to encode default categories", log.FieldError, err)
		os.Exit(1)
	}
	if err := repo.SaveCategoryConfig(ctx, *userID, raw); err != nil {
		logger.Error("Failed to seed default categories", log.FieldError, err)
		os.Exit(1)
	}

	logger.Info("Seeded default category configuration", log.FieldUserID, *userID)
}
