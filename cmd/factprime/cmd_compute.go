package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"factprime/internal/config"
	"factprime/internal/logging"
	"factprime/internal/numeric"
	"factprime/internal/present"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func runFactorial(cmd *cobra.Command, args []string) error {
	return runCompute(cmd, present.ActionFactorial, args)
}

func runPrime(cmd *cobra.Command, args []string) error {
	return runCompute(cmd, present.ActionPrimeCheck, args)
}

type evalResult struct {
	text string
	err  error
}

// runCompute evaluates every argument against one shared core and prints
// the results in argument order.
func runCompute(cmd *cobra.Command, action present.Action, args []string) error {
	cfg, err := config.Load(resolveConfigPath())
	if err != nil {
		return err
	}

	if err := logging.Initialize(config.LogsDir(resolveWorkspace()), cfg.Logging.Settings()); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logging.CloseAll()

	core := numeric.New(
		numeric.WithMaxFactorialInput(cfg.Numeric.MaxFactorialInput),
		numeric.WithLogger(logger.Named("numeric")),
	)
	adapter := present.NewAdapter(core, logger.Named("present"))

	start := time.Now()
	results, err := evaluateAll(cmd.Context(), adapter, action, args, cfg.Numeric.Workers)
	if err != nil {
		return err
	}

	invalid := 0
	for i, r := range results {
		if r.err != nil {
			invalid++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", present.InvalidIntegerMessage, args[i])
			continue
		}
		fmt.Fprintln(cmd.OutOrStdout(), r.text)
	}

	stats := core.Cache().Stats()
	logger.Debug("evaluated arguments",
		zap.Stringer("action", action),
		zap.Int("count", len(args)),
		zap.Int("invalid", invalid),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("cache_entries", stats.Entries),
		zap.Uint64("cache_hits", stats.Hits),
	)
	logging.Get(logging.CategoryCLI).Info("command finished",
		zap.Stringer("action", action),
		zap.Int("count", len(args)),
		zap.Int("invalid", invalid),
		zap.Int("workers", cfg.Numeric.Workers),
	)

	if invalid > 0 {
		return fmt.Errorf("%d of %d arguments are not valid integers", invalid, len(args))
	}
	return nil
}

// evaluateAll runs adapter.Evaluate for each argument with at most workers
// in flight. A ParseError is recorded against its argument, not returned.
func evaluateAll(ctx context.Context, adapter *present.Adapter, action present.Action, args []string, workers int) ([]evalResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	results := make([]evalResult, len(args))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, raw := range args {
		i, raw := i, raw
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			text, err := adapter.Evaluate(action, raw)
			if err != nil && !errors.Is(err, present.ErrParse) {
				return fmt.Errorf("argument %d: %w", i+1, err)
			}
			results[i] = evalResult{text: text, err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
