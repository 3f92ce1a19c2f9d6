// Package cli implements the interactive plantkeeper shell: a small REPL
// over the plant service, mirroring the commands of the original mobile UI.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/term"

	"plantkeeper/internal/config"
	"plantkeeper/internal/logging"
	"plantkeeper/internal/reminder"
	"plantkeeper/internal/services"
	"plantkeeper/internal/storage"
	"plantkeeper/internal/store"

	_ "modernc.org/sqlite"
)

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

type App struct {
	config   *config.Config
	svc      *services.PlantService
	notifier *reminder.LocalNotifier
	log      logging.Logger
	reader   *bufio.Reader
	closeFn  func() error
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	kv, err := storage.OpenSQLite(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	st := store.New(kv, logger)
	if err := st.Initialize(ctx); err != nil {
		_ = kv.Close()
		return nil, fmt.Errorf("init collections: %w", err)
	}

	notifier := reminder.NewLocalNotifier(logger)
	sched := reminder.NewScheduler(kv, notifier, logger)

	// opportunistic garbage collection of malformed schedule blobs
	if removed, err := sched.Cleanup(ctx); err != nil {
		logger.Warn(ctx, "reminder cleanup failed", "error", err)
	} else if removed > 0 {
		logger.Info(ctx, "reminder cleanup done", "removed", removed)
	}

	svc := services.NewPlantService(st, sched, logger, c.PhotoDir)

	return &App{
		config:   c,
		svc:      svc,
		notifier: notifier,
		log:      logger,
		reader:   bufio.NewReader(os.Stdin),
		closeFn:  kv.Close,
	}, nil
}

// Run starts the reminder watcher and the REPL, blocking until the user
// exits or the context is canceled.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer func() {
		if err := a.closeFn(); err != nil {
			a.log.Warn(ctx, "closing database", "error", err)
		}
	}()

	go a.notifier.Run(ctx, a.config.PollInterval)

	if isTerminal(int(os.Stdin.Fd())) {
		printlnFn("plantkeeper - type 'help' for commands")
	}

	runREPL(ctx, a, a.reader)
}
