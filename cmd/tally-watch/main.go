package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"studyPlanner/internal/lib/logger/handlers/slogpretty"
	"studyPlanner/internal/lib/logger/sl"
	"studyPlanner/internal/lib/tally"
	"studyPlanner/internal/models"
	"studyPlanner/internal/watcher"
)

func main() {
	addr := flag.String("addr", "http://localhost:8080", "study planner base URL")
	eventID := flag.Int64("event", 0, "pending event id to watch")
	flag.Parse()

	log := setupPrettySlog()

	if *eventID <= 0 {
		log.Error("-event is required")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := watcher.New(log, *addr, *eventID)
	w.OnSnapshot = func(d *models.PendingEventDetails) {
		fmt.Printf("%s [%s]\n", d.Event.Title, d.Event.State)
		for _, o := range d.TimeOptions {
			fmt.Printf("  time %d: %d votes\n", o.ID, o.Votes)
		}
		for _, o := range d.LocationOptions {
			fmt.Printf("  location %d (%s): %d votes\n", o.ID, o.Location, o.Votes)
		}
	}
	w.OnChange = func(e tally.Entity, count int) {
		fmt.Printf("  %s %d: %d votes\n", e.Kind, e.ID, count)
	}

	log.Info("watching", slog.String("addr", *addr), slog.Int64("event_id", *eventID))

	if err := w.Run(ctx); err != nil {
		log.Error("watch failed", sl.Err(err))
		os.Exit(1)
	}
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelInfo,
		},
	}

	return slog.New(opts.NewPrettyHandler(os.Stderr))
}
