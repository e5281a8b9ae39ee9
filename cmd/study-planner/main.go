package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studyPlanner/internal/config"
	"studyPlanner/internal/http-server/handlers/event/createEvent"
	"studyPlanner/internal/http-server/handlers/event/getEventInfo"
	"studyPlanner/internal/http-server/handlers/event/getUserEvents"
	"studyPlanner/internal/http-server/handlers/event/joinEvent"
	"studyPlanner/internal/http-server/handlers/event/leaveEvent"
	"studyPlanner/internal/http-server/handlers/moderation/moderate"
	"studyPlanner/internal/http-server/handlers/moderation/muteStatus"
	"studyPlanner/internal/http-server/handlers/options/addOption"
	"studyPlanner/internal/http-server/handlers/options/deleteOption"
	"studyPlanner/internal/http-server/handlers/options/unvote"
	"studyPlanner/internal/http-server/handlers/options/vote"
	"studyPlanner/internal/http-server/handlers/participation/join"
	"studyPlanner/internal/http-server/handlers/participation/leave"
	"studyPlanner/internal/http-server/handlers/pending/createPending"
	"studyPlanner/internal/http-server/handlers/pending/deletePending"
	"studyPlanner/internal/http-server/handlers/pending/finalizePending"
	"studyPlanner/internal/http-server/handlers/pending/getPending"
	"studyPlanner/internal/http-server/handlers/pending/listPending"
	"studyPlanner/internal/http-server/handlers/realtime/stream"
	"studyPlanner/internal/http-server/handlers/suggest/suggestTimes"
	"studyPlanner/internal/http-server/middleware/mwlogger"
	"studyPlanner/internal/lib/logger/handlers/slogpretty"
	"studyPlanner/internal/lib/logger/sl"
	"studyPlanner/internal/models"
	"studyPlanner/internal/planner"
	"studyPlanner/internal/realtime"
	"studyPlanner/internal/storage"
	"studyPlanner/internal/storage/memory"
	"studyPlanner/internal/storage/postgres"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

const (
	driverPostgres = "postgres"
	driverMemory   = "memory"
)

type store interface {
	planner.Storage
	Close() error
}

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting study planner", slog.String("env", cfg.Env), slog.String("storage", cfg.StorageDriver))
	log.Debug("Debug messages are enabled")

	st, err := setupStorage(cfg, planner.FinalizeObserver(log))
	if err != nil {
		log.Error("failed to init storage", sl.Err(err))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := realtime.NewHub(0)

	var publisher realtime.Publisher = hub
	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		bridge := realtime.NewRedisBridge(rdb, cfg.Redis.ChannelPrefix, hub, log)
		if err = bridge.Ping(ctx); err != nil {
			log.Error("failed to connect to redis", sl.Err(err))
			os.Exit(1)
		}

		go func() {
			if err := bridge.Run(ctx); err != nil {
				log.Error("redis relay stopped", sl.Err(err))
			}
		}()

		publisher = bridge
		log.Info("redis vote relay enabled", slog.String("address", cfg.Redis.Address))
	}

	svc := planner.New(log, st, publisher, cfg.Suggest.MinDuration)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwlogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	router.Route("/pending-events", func(r chi.Router) {
		r.Post("/", createPending.New(log, svc))

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", getPending.New(log, svc))
			r.Delete("/", deletePending.New(log, svc))
			r.Post("/finalize", finalizePending.New(log, svc))
			r.Post("/join", join.New(log, svc))
			r.Post("/leave", leave.New(log, svc))
			r.Post("/moderation/{action}", moderate.New(log, svc, models.ScopePending))
			r.Get("/mutes/{userId}", muteStatus.New(log, svc, models.ScopePending))
			r.Get("/stream", stream.New(log, hub))

			r.Route("/options/{kind}", func(r chi.Router) {
				r.Post("/", addOption.New(log, svc))
				r.Delete("/{optionId}", deleteOption.New(log, svc))
				r.Post("/{optionId}/vote", vote.New(log, svc))
				r.Post("/{optionId}/unvote", unvote.New(log, svc))
			})
		})
	})

	router.Get("/groups/{groupId}/pending-events", listPending.New(log, svc))

	router.Route("/events", func(r chi.Router) {
		r.Post("/", createEvent.New(log, svc))

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", getEventInfo.New(log, svc))
			r.Post("/join", joinEvent.New(log, svc))
			r.Post("/leave", leaveEvent.New(log, svc))
			r.Post("/moderation/{action}", moderate.New(log, svc, models.ScopeFinalized))
			r.Get("/mutes/{userId}", muteStatus.New(log, svc, models.ScopeFinalized))
		})
	})

	router.Get("/users/{userId}/events", getUserEvents.New(log, svc))
	router.Post("/suggestions", suggestTimes.New(log, svc))

	if cfg.Metrics.Enabled {
		router.Handle("/metrics", promhttp.Handler())
	}

	log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))

	// WriteTimeout stays zero: it would cut long-lived stream connections.
	srv := &http.Server{
		Addr:        cfg.HTTPServer.Address,
		Handler:     router,
		ReadTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout: cfg.HTTPServer.IdleTimeout,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", sl.Err(err))
			stop <- syscall.SIGTERM
		}
	}()

	sign := <-stop

	log.Info("application stopping", slog.String("signal", sign.String()))

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to shutdown server", sl.Err(err))
	}

	log.Info("application stopped")

	if rdb != nil {
		if err = rdb.Close(); err != nil {
			log.Error("failed to close redis client", sl.Err(err))
		}
	}

	if err = st.Close(); err != nil {
		log.Error("failed to close storage", sl.Err(err))
	}

	log.Info("storage closed")
}

func setupStorage(cfg *config.Config, onFinalize storage.FinalizeHook) (store, error) {
	opts := []storage.Option{
		storage.WithRequireVotes(cfg.Finalize.RequireVotes),
		storage.WithFinalizeHook(onFinalize),
	}

	switch cfg.StorageDriver {
	case driverMemory:
		return memory.New(opts...), nil
	case driverPostgres:
		st, err := postgres.InitDB(&cfg.Database, opts...)
		if err != nil {
			return nil, err
		}
		return st, nil
	default:
		return nil, errors.New("unknown storage driver: " + cfg.StorageDriver)
	}
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	h := opts.NewPrettyHandler(os.Stdout)

	return slog.New(h)
}
