package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/robalyx/turbo/internal/setup/config"
	"github.com/robalyx/turbo/internal/setup/telemetry/logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// sessionDirLayout names each session directory after its start time.
const sessionDirLayout = "2006-01-02_15-04-05"

// Manager handles the creation and management of log files and directories.
// Each run writes into its own timestamped session directory.
type Manager struct {
	instanceID        string // Unique identifier for this program instance
	currentSessionDir string // Path to the current session's log directory
	logDir            string // Base directory for all logs
	level             string // Logging level (debug, info, warn, error)
	maxLogsToKeep     int    // Maximum number of log sessions to retain
	maxLogLines       int    // Maximum number of lines to keep in each log file
	console           bool   // Mirror logs to stderr
	files             []*logger.FileWriter
}

// NewManager creates a new Manager instance.
func NewManager(logDir string, debugCfg *config.Debug, console bool) *Manager {
	return &Manager{
		instanceID:    uuid.New().String(),
		logDir:        logDir,
		level:         debugCfg.LogLevel,
		maxLogsToKeep: debugCfg.MaxLogsToKeep,
		maxLogLines:   debugCfg.MaxLogLines,
		console:       console,
	}
}

// GetLogger creates the session directory and returns the main logger
// writing to main.log and, when enabled, stderr.
func (lm *Manager) GetLogger() (*zap.Logger, error) {
	if err := lm.setupLogDirectories(); err != nil {
		return nil, err
	}

	logger, err := lm.initLogger(filepath.Join(lm.currentSessionDir, "main.log"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize main logger: %w", err)
	}

	return logger, nil
}

// GetCurrentSessionDir returns the current session directory.
func (lm *Manager) GetCurrentSessionDir() string {
	return lm.currentSessionDir
}

// GetInstanceID returns the unique instance identifier for this program run.
func (lm *Manager) GetInstanceID() string {
	return lm.instanceID
}

// Close closes every log file opened by the manager.
func (lm *Manager) Close() error {
	var errs []error
	for _, file := range lm.files {
		errs = append(errs, file.Close())
	}
	lm.files = nil

	return errors.Join(errs...)
}

// setupLogDirectories creates and manages the log directory structure.
// It ensures the base directory exists, rotates old logs, and creates a new session directory.
func (lm *Manager) setupLogDirectories() error {
	// Ensure base log directory exists
	if err := os.MkdirAll(lm.logDir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	// Clean up old log sessions, leaving room for the new one
	if err := lm.rotateLogSessions(); err != nil {
		return fmt.Errorf("failed to rotate log sessions: %w", err)
	}

	// Create new session directory with timestamp
	lm.currentSessionDir = filepath.Join(lm.logDir, time.Now().Format(sessionDirLayout))
	if err := os.MkdirAll(lm.currentSessionDir, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	return nil
}

// initLogger creates a zap logger writing console-encoded entries to path.
func (lm *Manager) initLogger(path string) (*zap.Logger, error) {
	zapLevel, err := zapcore.ParseLevel(lm.level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	file, err := logger.OpenFile(path, lm.maxLogLines)
	if err != nil {
		return nil, err
	}
	lm.files = append(lm.files, file)

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(file), zapLevel),
	}

	if lm.console {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.Lock(os.Stderr),
			zapLevel,
		))
	}

	return zap.New(
		zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	), nil
}

// rotateLogSessions maintains the log directory by removing old sessions.
// Keeps only the most recent sessions based on maxLogsToKeep, counting the
// session about to be created.
func (lm *Manager) rotateLogSessions() error {
	sessions, err := filepath.Glob(filepath.Join(lm.logDir, "*"))
	if err != nil {
		return err
	}

	keep := max(lm.maxLogsToKeep-1, 0)
	if len(sessions) <= keep {
		return nil
	}

	// Session names sort chronologically
	sort.Strings(sessions)

	toDelete := len(sessions) - keep
	for i := range toDelete {
		if err := os.RemoveAll(sessions[i]); err != nil {
			return err
		}
	}

	return nil
}
