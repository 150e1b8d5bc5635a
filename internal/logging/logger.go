// Package logging provides config-driven categorized file-based logging for factprime.
// Logs are written to .factprime/logs/ with separate files per category.
// Logging is controlled by debug_mode in the config file - when false, no logs are written.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot        Category = "boot"        // Boot/initialization
	CategoryNumeric     Category = "numeric"     // Factorial/primality core, memo cache
	CategoryPresent     Category = "present"     // Input parsing and result formatting
	CategoryUI          Category = "ui"          // Terminal UI events
	CategoryConfig      Category = "config"      // Config load, save, watch
	CategoryCLI         Category = "cli"         // Non-interactive commands
	CategoryPerformance Category = "performance" // Slow computations
)

// Settings mirrors the relevant parts of config.LoggingConfig
// to avoid circular imports
type Settings struct {
	DebugMode  bool
	Level      string
	JSONFormat bool
	Categories map[string]bool
}

var (
	loggers   = make(map[Category]*zap.Logger)
	closers   = make(map[Category]func())
	loggersMu sync.RWMutex

	settings   Settings
	settingsMu sync.RWMutex
	logsDir    string
	runID      = uuid.NewString()
)

// Initialize sets up the logging directory and applies settings.
// Should be called once at startup.
func Initialize(dir string, s Settings) error {
	if dir == "" {
		return fmt.Errorf("logs directory required")
	}

	CloseAll()

	settingsMu.Lock()
	logsDir = dir
	settings = s
	settingsMu.Unlock()

	// Only create logs directory if debug mode is enabled
	if !s.DebugMode {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	boot := Get(CategoryBoot)
	boot.Info("logging initialized",
		zap.String("dir", dir),
		zap.String("level", levelName(s.Level)),
		zap.Bool("json", s.JSONFormat),
	)
	if len(s.Categories) == 0 {
		boot.Info("all categories enabled (no category filter)")
	}
	for cat, enabled := range s.Categories {
		boot.Debug("category toggle", zap.String("category", cat), zap.Bool("enabled", enabled))
	}

	return nil
}

// Reconfigure swaps settings at runtime, e.g. after the config file changes.
// Existing loggers are flushed and rebuilt lazily.
func Reconfigure(s Settings) error {
	settingsMu.RLock()
	dir := logsDir
	settingsMu.RUnlock()
	if dir == "" {
		return fmt.Errorf("logging not initialized")
	}
	return Initialize(dir, s)
}

// RunID identifies this process in every log entry.
func RunID() string {
	return runID
}

// IsCategoryEnabled returns whether a specific category is enabled
func IsCategoryEnabled(category Category) bool {
	settingsMu.RLock()
	defer settingsMu.RUnlock()

	if !settings.DebugMode {
		return false
	}
	if settings.Categories == nil {
		return true // All enabled by default in debug mode
	}
	enabled, exists := settings.Categories[string(category)]
	if !exists {
		return true
	}
	return enabled
}

// Get returns (or creates) a logger for the given category.
// Returns a no-op logger if debug mode is disabled or category is disabled.
func Get(category Category) *zap.Logger {
	if !IsCategoryEnabled(category) {
		return zap.NewNop()
	}

	loggersMu.RLock()
	if l, ok := loggers[category]; ok {
		loggersMu.RUnlock()
		return l
	}
	loggersMu.RUnlock()

	loggersMu.Lock()
	defer loggersMu.Unlock()

	// Double-check after acquiring write lock
	if l, ok := loggers[category]; ok {
		return l
	}

	l, closeFile, err := build(category)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[logging] Warning: could not open log for %s: %v\n", category, err)
		return zap.NewNop()
	}
	loggers[category] = l
	closers[category] = closeFile
	return l
}

// Dynamic returns a logger for category that looks up the current category
// logger on every entry, so it follows Initialize and Reconfigure. Hand it
// to long-lived components that cache their logger.
func Dynamic(category Category) *zap.Logger {
	return zap.New(&categoryCore{category: category}).Named(string(category))
}

// categoryCore forwards to the core of Get(category) at write time.
type categoryCore struct {
	category Category
	fields   []zapcore.Field
}

func (c *categoryCore) current() zapcore.Core {
	core := Get(c.category).Core()
	if len(c.fields) > 0 {
		core = core.With(c.fields)
	}
	return core
}

func (c *categoryCore) Enabled(level zapcore.Level) bool {
	return c.current().Enabled(level)
}

func (c *categoryCore) With(fields []zapcore.Field) zapcore.Core {
	merged := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	merged = append(merged, c.fields...)
	merged = append(merged, fields...)
	return &categoryCore{category: c.category, fields: merged}
}

func (c *categoryCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	return c.current().Check(ent, ce)
}

func (c *categoryCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	return c.current().Write(ent, fields)
}

func (c *categoryCore) Sync() error {
	return Get(c.category).Sync()
}

// build creates a logger appending to <dir>/<date>_<category>.log and the
// function that closes the file.
func build(category Category) (*zap.Logger, func(), error) {
	settingsMu.RLock()
	s := settings
	dir := logsDir
	settingsMu.RUnlock()

	date := time.Now().Format("2006-01-02")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.log", date, category))

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	encoder := zapcore.NewConsoleEncoder(encCfg)
	if s.JSONFormat {
		encoder = zapcore.NewJSONEncoder(encCfg)
	}

	sink, closeFile, err := zap.Open(path)
	if err != nil {
		return nil, nil, err
	}

	core := zapcore.NewCore(encoder, sink, zap.NewAtomicLevelAt(parseLevel(s.Level)))
	l := zap.New(core,
		zap.ErrorOutput(zapcore.Lock(os.Stderr)),
		zap.Fields(zap.String("run", runID)),
	)
	return l.Named(string(category)), closeFile, nil
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func levelName(level string) string {
	return parseLevel(level).String()
}

// CloseAll flushes all category loggers, closes their files and forgets them.
func CloseAll() {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	for cat, l := range loggers {
		_ = l.Sync()
		if closeFile := closers[cat]; closeFile != nil {
			closeFile()
		}
	}
	loggers = make(map[Category]*zap.Logger)
	closers = make(map[Category]func())
}

// =============================================================================
// TIMING HELPERS - For performance logging
// =============================================================================

// Timer helps measure operation duration
type Timer struct {
	category Category
	op       string
	start    time.Time
}

// StartTimer begins timing an operation
func StartTimer(category Category, operation string) *Timer {
	return &Timer{
		category: category,
		op:       operation,
		start:    time.Now(),
	}
}

// Stop ends the timer and logs the duration
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	Get(t.category).Debug("operation completed", zap.String("op", t.op), zap.Duration("elapsed", elapsed))
	return elapsed
}

// StopWithThreshold logs to the performance category if duration exceeds threshold
func (t *Timer) StopWithThreshold(threshold time.Duration) time.Duration {
	elapsed := time.Since(t.start)
	if elapsed > threshold {
		Get(CategoryPerformance).Warn("slow operation",
			zap.String("category", string(t.category)),
			zap.String("op", t.op),
			zap.Duration("elapsed", elapsed),
			zap.Duration("threshold", threshold),
		)
	} else {
		Get(t.category).Debug("operation completed", zap.String("op", t.op), zap.Duration("elapsed", elapsed))
	}
	return elapsed
}
