package main

import (
	"context"
	"errors"
	"fmt"

	"factprime/cmd/factprime/ui"
	"factprime/internal/config"
	"factprime/internal/logging"
	"factprime/internal/numeric"
	"factprime/internal/present"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// runInteractive starts the terminal UI and reloads its config on change.
func runInteractive(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ws := resolveWorkspace()
	path := resolveConfigPath()

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	if err := logging.Initialize(config.LogsDir(ws), cfg.Logging.Settings()); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logging.CloseAll()

	boot := logging.Dynamic(logging.CategoryBoot)
	boot.Info("starting interactive session",
		zap.String("workspace", ws),
		zap.String("config", path),
		zap.String("version", version),
	)

	core := numeric.New(
		numeric.WithMaxFactorialInput(cfg.Numeric.MaxFactorialInput),
		numeric.WithLogger(logging.Dynamic(logging.CategoryNumeric)),
	)
	adapter := present.NewAdapter(core, logging.Dynamic(logging.CategoryPresent))

	p := tea.NewProgram(
		ui.NewApp(cfg.UI, adapter),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	watcher, err := config.NewWatcher(path, func(next *config.Config, err error) {
		if err == nil {
			if rerr := logging.Reconfigure(next.Logging.Settings()); rerr != nil {
				boot.Warn("failed to apply logging settings", zap.Error(rerr))
			}
		}
		p.Send(ui.ConfigReloadedMsg{Config: next, Err: err})
	})
	if err != nil {
		boot.Warn("config watcher unavailable", zap.Error(err))
	} else if err := watcher.Start(ctx); err != nil {
		boot.Warn("config watcher unavailable", zap.Error(err))
	} else {
		defer watcher.Stop()
	}

	_, err = p.Run()

	stats := core.Cache().Stats()
	boot.Info("interactive session ended",
		zap.Int("cache_entries", stats.Entries),
		zap.Uint64("cache_hits", stats.Hits),
		zap.Uint64("cache_misses", stats.Misses),
	)
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
