package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"

	"github.com/KirkDiggler/astrolabe/internal/calendar"
	"github.com/KirkDiggler/astrolabe/internal/common/clock"
	"github.com/KirkDiggler/astrolabe/internal/common/uuid"
	"github.com/KirkDiggler/astrolabe/internal/config"
	"github.com/KirkDiggler/astrolabe/internal/handlers/api"
	"github.com/KirkDiggler/astrolabe/internal/handlers/discord"
	"github.com/KirkDiggler/astrolabe/internal/jobs"
	sessionRepo "github.com/KirkDiggler/astrolabe/internal/repositories/session"
	"github.com/KirkDiggler/astrolabe/internal/services/catalog"
	"github.com/KirkDiggler/astrolabe/internal/services/messaging"
	"github.com/KirkDiggler/astrolabe/internal/services/publication"
	"github.com/KirkDiggler/astrolabe/internal/services/voting"
	"github.com/KirkDiggler/astrolabe/internal/storage"
)

func main() {
	configPath := flag.String("config", "astrolabe.yaml", "path to the YAML config file")
	flag.Parse()

	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("bot exited", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Discord.Token == "" {
		return errors.New("DISCORD_TOKEN is required")
	}
	location, err := cfg.Location()
	if err != nil {
		return err
	}

	ctx := context.Background()
	systemClock := &clock.DefaultClock{}

	stores, err := storage.Open(ctx, &cfg.Store, logger)
	if err != nil {
		return err
	}
	defer stores.Close()

	sessions, err := sessionRepo.NewRedis(&sessionRepo.Config{RedisClient: stores.Redis})
	if err != nil {
		return err
	}

	session, err := discord.NewSession(cfg.Discord.Token)
	if err != nil {
		return err
	}
	surface, err := discord.NewSurface(session)
	if err != nil {
		return err
	}

	messages, err := messaging.NewService(&messaging.ServiceConfig{
		Seed:     time.Now().UnixNano(),
		Location: location,
	})
	if err != nil {
		return err
	}

	publisher, err := publication.NewService(&publication.Config{
		EventDuration: cfg.Publication.EventDuration,
		Scheduler:     surface,
		Messenger:     surface,
		Messages:      messages,
		Clock:         systemClock,
		Logger:        logger,
	})
	if err != nil {
		return err
	}

	var policy voting.Policy = voting.MajorityPolicy{}
	if cfg.Voting.Policy == config.PolicyQuorum {
		policy = voting.QuorumPolicy{
			MinApprovals: cfg.Voting.MinApprovals,
			EarlyResolve: cfg.Voting.EarlyResolve,
		}
	}

	votingSvc, err := voting.NewService(&voting.Config{
		VotingWindow:   cfg.Voting.Window,
		DeadlineJitter: cfg.Voting.DeadlineJitter,
		PublishTimeout: cfg.Publication.Timeout,
		Policy:         policy,
		CatalogRepo:    stores.Catalog,
		SessionRepo:    sessions,
		Publisher:      publisher,
		Messenger:      surface,
		Messages:       messages,
		Clock:          systemClock,
		UUIDGenerator:  uuid.New(),
		Logger:         logger,
	})
	if err != nil {
		return err
	}
	defer votingSvc.Close()

	catalogSvc, err := catalog.NewService(&catalog.Config{
		Repository: stores.Catalog,
		Clock:      systemClock,
		Location:   location,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	bot, err := discord.New(&discord.Config{
		Session:        session,
		ApplicationID:  cfg.Discord.ApplicationID,
		GuildID:        cfg.Discord.GuildID,
		Location:       location,
		VotingWindow:   cfg.Voting.Window,
		CatalogService: catalogSvc,
		VotingService:  votingSvc,
		Messages:       messages,
		Clock:          systemClock,
		Logger:         logger,
	})
	if err != nil {
		return err
	}

	// Pick up sessions left open by a previous run before reactions arrive
	reconciled, err := votingSvc.Reconcile(ctx, &voting.ReconcileInput{})
	if err != nil {
		logger.Warn("startup reconcile failed", "err", err)
	} else {
		logger.Info("startup reconcile", "resolved", reconciled.Resolved, "adopted", reconciled.Adopted)
	}

	if err := bot.Start(); err != nil {
		return err
	}

	sweeper, err := jobs.NewSweeper(&jobs.SweeperConfig{
		Schedule:      cfg.SweepSchedule,
		VotingService: votingSvc,
		Logger:        logger,
	})
	if err != nil {
		return err
	}
	sweeper.Start()

	var server *http.Server
	if cfg.HTTPAddr != "" {
		exporter, err := calendar.NewExporter(&calendar.Config{
			EventDuration: cfg.Publication.EventDuration,
			Clock:         systemClock,
		})
		if err != nil {
			return err
		}
		handler, err := api.NewHandler(&api.Config{
			CatalogService: catalogSvc,
			VotingService:  votingSvc,
			Exporter:       exporter,
			Logger:         logger,
		})
		if err != nil {
			return err
		}

		server = &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      handler.Routes(),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}
		go func() {
			logger.Info("http listening", "addr", cfg.HTTPAddr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server failed", "err", err)
			}
		}()
	}

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if server != nil {
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("http shutdown failed", "err", err)
		}
	}
	sweeper.Stop(shutdownCtx)

	if err := bot.Stop(); err != nil {
		logger.Warn("error stopping bot", "err", err)
	}

	logger.Info("bot has been shut down")
	return nil
}
