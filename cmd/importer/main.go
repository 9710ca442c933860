package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/KirkDiggler/astrolabe/internal/common/clock"
	"github.com/KirkDiggler/astrolabe/internal/config"
	"github.com/KirkDiggler/astrolabe/internal/legacy"
	"github.com/KirkDiggler/astrolabe/internal/storage"
)

func main() {
	file := flag.String("file", "event_catalog.json", "legacy catalog file to import")
	guildID := flag.String("guild", "", "guild ID that receives the events")
	configPath := flag.String("config", "astrolabe.yaml", "path to the YAML config file")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	if err := run(cfg, logger, *file, *guildID); err != nil {
		logger.Error("import failed", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger, path, guildID string) error {
	if guildID == "" {
		return errors.New("-guild is required")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	source, err := os.Open(path)
	if err != nil {
		return err
	}
	defer source.Close()

	ctx := context.Background()
	stores, err := storage.Open(ctx, &cfg.Store, logger)
	if err != nil {
		return err
	}
	defer stores.Close()

	importer, err := legacy.NewImporter(&legacy.Config{
		Repository: stores.Catalog,
		Clock:      &clock.DefaultClock{},
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	output, err := importer.Import(ctx, &legacy.ImportInput{
		GuildID: guildID,
		Source:  source,
	})
	if output != nil {
		logger.Info("import finished", "file", path, "guild_id", guildID, "imported", output.Imported, "skipped", output.Skipped)
	}
	return err
}
