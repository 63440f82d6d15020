// Package logger writes the client and relay debug log through zap.
//
// The TUI owns stdout, so output goes to a file. Until Init or InitAt is
// called every Log* function is a no-op.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const maxLogSize = 10 * 1024 * 1024

var (
	mu       sync.RWMutex
	sugar    = zap.NewNop().Sugar()
	level    = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	debugLog *os.File
	logPath  string
)

// Init initializes the debug logger in ~/.yewchat
func Init() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	return InitAt(filepath.Join(homeDir, ".yewchat"))
}

// InitAt initializes the debug logger writing to logDir/debug.log
func InitAt(logDir string) error {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	path := filepath.Join(logDir, "debug.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	// Rotate if file is too large (> 10MB)
	if info, err := f.Stat(); err == nil && info.Size() > maxLogSize {
		_ = f.Close()
		backupPath := filepath.Join(logDir, fmt.Sprintf("debug.log.%d", time.Now().Unix()))
		_ = os.Rename(path, backupPath)
		f, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to create new log file: %w", err)
		}
	}

	install(zapcore.AddSync(f), f, path)
	LogInfo("Logger initialized, log file: %s", path)
	return nil
}

// InitConsole sends log output to stderr. Used by the relay, which has no TUI.
func InitConsole() {
	install(zapcore.Lock(os.Stderr), nil, "")
}

func install(ws zapcore.WriteSyncer, f *os.File, path string) {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000000")
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), ws, level)

	mu.Lock()
	defer mu.Unlock()
	if debugLog != nil {
		_ = debugLog.Close()
	}
	debugLog = f
	logPath = path
	sugar = zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Sugar()
}

// SetDebug toggles debug level output
func SetDebug(on bool) {
	if on {
		level.SetLevel(zapcore.DebugLevel)
		return
	}
	level.SetLevel(zapcore.InfoLevel)
}

// Close flushes and closes the debug log file
func Close() {
	mu.Lock()
	defer mu.Unlock()

	_ = sugar.Sync()
	sugar = zap.NewNop().Sugar()
	if debugLog != nil {
		_ = debugLog.Close()
		debugLog = nil
	}
}

func current() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

// LogDebug logs a debug message
func LogDebug(format string, args ...any) {
	current().Debugf(format, args...)
}

// LogInfo logs an info message
func LogInfo(format string, args ...any) {
	current().Infof(format, args...)
}

// LogError logs an error message
func LogError(format string, args ...any) {
	current().Errorf(format, args...)
}

// LogPanic logs a panic with stack trace
func LogPanic(r any) {
	current().Errorf("[PANIC] %v\n%s", r, debug.Stack())
}

// GetLogPath returns the current log file path
func GetLogPath() string {
	mu.RLock()
	defer mu.RUnlock()
	return logPath
}
