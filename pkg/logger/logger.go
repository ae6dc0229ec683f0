// Package logger provides the configurable logging used across coexm.
// It wraps zap with colored console output, JSON file output with rotation,
// and a global logger plus instance-based loggers.
//
// Basic Usage (Global Logger):
//
//	func main() {
//	  logOpts := logger.DefaultOptions()
//	  logOpts.FileOutput = true
//	  logOpts.LogFilePath = "coexm.log"
//	  logOpts.ConsoleLevel = logger.DebugLevel
//	  logger.Init(logOpts)
//
//	  defer logger.SyncGlobal()
//
//	  logger.Debug("resolved endpoint %s", endpoint)
//	  logger.Info("cluster %s created", name)
//	}
//
// Instance-based Logger:
//
//	opts := logger.DefaultOptions()
//	opts.ConsoleLevel = logger.InfoLevel
//	lg, err := logger.NewLogger(opts)
//	if err != nil {
//	  // handle error
//	}
//	defer lg.Sync()
//	lg.Infof("profile %q loaded", cloudName)
package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Level defines the log level, mapped to zapcore.Level for the underlying
// Zap logger.
type Level int8

// Log levels constants.
const (
	// DebugLevel logs are typically voluminous and usually disabled in
	// production. Useful for detailed troubleshooting (request/response
	// bodies, cache decisions).
	DebugLevel Level = iota - 1
	// InfoLevel is the default logging priority. Use for general operational messages.
	InfoLevel
	// WarnLevel logs are more important than Info, but don't need individual
	// human review. Potential issues that are not yet errors.
	WarnLevel
	// ErrorLevel logs are high-priority. These indicate problems.
	ErrorLevel
	// PanicLevel logs a message, then panics. Should be used sparingly.
	PanicLevel
	// FatalLevel logs a message, then calls os.Exit(1).
	FatalLevel
)

// String returns a lowercase string representation of the Level.
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "debug"
	case InfoLevel:
		return "info"
	case WarnLevel:
		return "warn"
	case ErrorLevel:
		return "error"
	case PanicLevel:
		return "panic"
	case FatalLevel:
		return "fatal"
	default:
		return fmt.Sprintf("level(%d)", l)
	}
}

// CapitalString returns a capitalized string representation of the Level.
func (l Level) CapitalString() string {
	return strings.ToUpper(l.String())
}

// ToZapLevel converts our Level to zapcore.Level.
func (l Level) ToZapLevel() zapcore.Level {
	switch l {
	case DebugLevel:
		return zapcore.DebugLevel
	case InfoLevel:
		return zapcore.InfoLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	case PanicLevel:
		return zapcore.PanicLevel
	case FatalLevel:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// ParseLevel converts a level name ("debug", "INFO", ...) to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel, nil
	case "info", "":
		return InfoLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	case "panic":
		return PanicLevel, nil
	case "fatal":
		return FatalLevel, nil
	default:
		return InfoLevel, fmt.Errorf("unknown log level %q", s)
	}
}

// Options holds configuration for the logger.
type Options struct {
	// ConsoleLevel sets the minimum log level for console output.
	ConsoleLevel Level
	// FileLevel sets the minimum log level for file output.
	FileLevel Level
	// LogFilePath specifies the path to the log file. Required if FileOutput is true.
	LogFilePath string
	// ConsoleOutput enables or disables logging to the console (os.Stdout).
	ConsoleOutput bool
	// FileOutput enables or disables logging to a file.
	FileOutput bool
	// ColorConsole enables or disables ANSI color codes for console output.
	ColorConsole bool
	// TimestampFormat defines the format for timestamps in logs (e.g., time.RFC3339).
	TimestampFormat string
	// LogMaxSizeMB is the maximum size in megabytes of the log file before rotation.
	LogMaxSizeMB int
	// LogMaxBackups is the maximum number of rotated log files to retain.
	LogMaxBackups int
	// LogMaxAgeDays is the maximum number of days to retain rotated log files.
	LogMaxAgeDays int
	// LogCompress enables gzip compression of rotated log files.
	LogCompress bool
}

// Logger is a wrapper around zap.SugaredLogger with console/file sinks and
// a runtime-adjustable console level.
type Logger struct {
	*zap.SugaredLogger
	opts        Options
	atomicLevel zap.AtomicLevel
}

var globalLogger *Logger
var once sync.Once

// Init initializes the global logger instance with the provided options.
// This function should be called only once, typically at the beginning of
// the application. Subsequent calls to Init are no-ops due to sync.Once.
// If initialization fails, it falls back to a basic Zap development logger
// printing to stderr, so logging is always available in some form.
func Init(opts Options) {
	once.Do(func() {
		var err error
		globalLogger, err = NewLogger(opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize global logger: %v. Falling back to basic console logging.\n", err)
			cfg := zap.NewDevelopmentConfig()
			cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
			l, _ := cfg.Build(zap.AddCallerSkip(1))
			globalLogger = &Logger{
				SugaredLogger: l.Sugar(),
				opts:          Options{ConsoleOutput: true, ConsoleLevel: InfoLevel, ColorConsole: true},
				atomicLevel:   zap.NewAtomicLevelAt(zapcore.InfoLevel),
			}
		}
	})
}

// Get returns the global logger instance. If Init() has not been called
// before Get(), Get will implicitly call Init() with DefaultOptions().
// For predictable configuration, call Init() once at application startup.
func Get() *Logger {
	if globalLogger == nil {
		Init(DefaultOptions())
	}
	return globalLogger
}

// DefaultOptions returns a default logger configuration:
// INFO+ to a colored console, DEBUG+ to file when file output is enabled,
// rotation at 100MB keeping 3 backups for 28 days.
func DefaultOptions() Options {
	return Options{
		ConsoleLevel:    InfoLevel,
		FileLevel:       DebugLevel,
		LogFilePath:     "coexm.log",
		ConsoleOutput:   true,
		FileOutput:      false,
		ColorConsole:    true,
		TimestampFormat: time.RFC3339,
		LogMaxSizeMB:    100,
		LogMaxBackups:   3,
		LogMaxAgeDays:   28,
		LogCompress:     false,
	}
}

// NewLogger creates a new Logger instance based on the provided options.
// Useful when multiple logger instances with different configurations are
// needed, though typically the global logger (Init/Get) is sufficient.
func NewLogger(opts Options) (*Logger, error) {
	var cores []zapcore.Core

	if opts.TimestampFormat == "" {
		opts.TimestampFormat = time.RFC3339
	}

	atomicLevel := zap.NewAtomicLevelAt(opts.ConsoleLevel.ToZapLevel())

	// Console Core
	if opts.ConsoleOutput {
		consoleEncoderCfg := zap.NewProductionEncoderConfig()
		consoleEncoderCfg.EncodeTime = zapcore.TimeEncoderOfLayout(opts.TimestampFormat)
		consoleEncoderCfg.TimeKey = "time"
		// LevelKey is intentionally left empty for console as our encoder handles the level prefix.
		consoleEncoderCfg.LevelKey = ""
		consoleEncoderCfg.CallerKey = "caller"
		consoleEncoderCfg.MessageKey = "msg"
		consoleEncoderCfg.NameKey = "logger"
		consoleEncoderCfg.StacktraceKey = "stacktrace"

		var consoleEncoder zapcore.Encoder
		if opts.ColorConsole {
			consoleEncoder = NewColorConsoleEncoder(consoleEncoderCfg, opts)
		} else {
			consoleEncoder = NewPlainTextConsoleEncoder(consoleEncoderCfg, opts)
		}

		consoleCore := zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stdout), atomicLevel)
		cores = append(cores, consoleCore)
	}

	// File Core
	if opts.FileOutput {
		if opts.LogFilePath == "" {
			return nil, fmt.Errorf("log file path cannot be empty when file output is enabled")
		}
		fileEncoderCfg := zap.NewProductionEncoderConfig()
		fileEncoderCfg.EncodeTime = zapcore.TimeEncoderOfLayout(opts.TimestampFormat)
		fileEncoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

		// JSON format for file logs for easier parsing.
		fileEncoder := zapcore.NewJSONEncoder(fileEncoderCfg)

		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   opts.LogFilePath,
			MaxSize:    opts.LogMaxSizeMB,
			MaxBackups: opts.LogMaxBackups,
			MaxAge:     opts.LogMaxAgeDays,
			Compress:   opts.LogCompress,
		})

		fileLevel := opts.FileLevel.ToZapLevel()
		fileLevelEnabler := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return lvl >= fileLevel
		})
		fileCore := zapcore.NewCore(fileEncoder, fileWriter, fileLevelEnabler)
		cores = append(cores, fileCore)
	}

	if len(cores) == 0 {
		// No outputs configured; return a no-op logger to prevent nil
		// pointer issues when NewLogger is called directly.
		fmt.Fprintln(os.Stderr, "Warning: No logger output (console or file) configured. Logger will be a no-op.")
		return &Logger{SugaredLogger: zap.NewNop().Sugar(), opts: opts, atomicLevel: atomicLevel}, nil
	}

	core := zapcore.NewTee(cores...)
	// AddCallerSkip(1) ensures that the caller information in logs points to
	// the code that called our logger methods rather than this package.
	zapLogger := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))

	return &Logger{SugaredLogger: zapLogger.Sugar(), opts: opts, atomicLevel: atomicLevel}, nil
}

// log is the internal funnel for the wrapper methods and the package-level
// functions. Both call paths place exactly one frame above this function, so
// a single extra AddCallerSkip(1) reports the user's call site in both cases.
func (l *Logger) log(level Level, template string, args ...interface{}) {
	if l == nil || l.SugaredLogger == nil {
		fmt.Fprintf(os.Stderr, "Logger not initialized. [%s] %s\n", level.CapitalString(), fmt.Sprintf(template, args...))
		if level == FatalLevel {
			os.Exit(1)
		}
		if level == PanicLevel {
			panic(fmt.Sprintf(template, args...))
		}
		return
	}

	msg := fmt.Sprintf(template, args...)
	loggerWithSkip := l.SugaredLogger.WithOptions(zap.AddCallerSkip(1))

	switch level {
	case DebugLevel:
		loggerWithSkip.Debugw(msg)
	case InfoLevel:
		loggerWithSkip.Infow(msg)
	case WarnLevel:
		loggerWithSkip.Warnw(msg)
	case ErrorLevel:
		loggerWithSkip.Errorw(msg)
	case PanicLevel:
		loggerWithSkip.Panicw(msg)
	case FatalLevel:
		loggerWithSkip.Fatalw(msg)
	default:
		loggerWithSkip.Infow(msg)
	}
}

// Debugf logs a message at DebugLevel.
func (l *Logger) Debugf(template string, args ...interface{}) {
	l.log(DebugLevel, template, args...)
}

// Infof logs a message at InfoLevel.
func (l *Logger) Infof(template string, args ...interface{}) {
	l.log(InfoLevel, template, args...)
}

// Warnf logs a message at WarnLevel.
func (l *Logger) Warnf(template string, args ...interface{}) {
	l.log(WarnLevel, template, args...)
}

// Errorf logs a message at ErrorLevel.
func (l *Logger) Errorf(template string, args ...interface{}) {
	l.log(ErrorLevel, template, args...)
}

// Panicf logs a message at PanicLevel then panics.
func (l *Logger) Panicf(template string, args ...interface{}) {
	l.log(PanicLevel, template, args...)
}

// Fatalf logs a message at FatalLevel then calls os.Exit(1).
func (l *Logger) Fatalf(template string, args ...interface{}) {
	l.log(FatalLevel, template, args...)
}

// SetLevel adjusts the console verbosity of this logger at runtime.
// The file level, when file output is enabled, is fixed at construction.
func (l *Logger) SetLevel(level Level) {
	if l == nil {
		return
	}
	l.atomicLevel.SetLevel(level.ToZapLevel())
}

// Sync flushes any buffered log entries. Call before application exit.
func (l *Logger) Sync() error {
	if l == nil || l.SugaredLogger == nil {
		return nil
	}
	return l.SugaredLogger.Sync()
}

// With returns a child logger carrying the given structured context.
// Keys recognized by the console encoder (cloud, region, cluster, template,
// request_id) are rendered as a bracketed prefix instead of key=value pairs.
func (l *Logger) With(args ...interface{}) *Logger {
	newSugaredLogger := l.SugaredLogger.With(args...)
	return &Logger{
		SugaredLogger: newSugaredLogger,
		opts:          l.opts,
		atomicLevel:   l.atomicLevel,
	}
}

// Global logging functions using the globalLogger instance.

// Debug logs a message at DebugLevel using the global logger.
func Debug(template string, args ...interface{}) {
	Get().log(DebugLevel, template, args...)
}

// Info logs a message at InfoLevel using the global logger.
func Info(template string, args ...interface{}) {
	Get().log(InfoLevel, template, args...)
}

// Warn logs a message at WarnLevel using the global logger.
func Warn(template string, args ...interface{}) {
	Get().log(WarnLevel, template, args...)
}

// Error logs a message at ErrorLevel using the global logger.
func Error(template string, args ...interface{}) {
	Get().log(ErrorLevel, template, args...)
}

// Panic logs a message at PanicLevel then panics using the global logger.
func Panic(template string, args ...interface{}) {
	Get().log(PanicLevel, template, args...)
}

// Fatal logs a message at FatalLevel then calls os.Exit(1) using the global logger.
func Fatal(template string, args ...interface{}) {
	Get().log(FatalLevel, template, args...)
}

// SetGlobalLevel adjusts the console verbosity of the global logger.
func SetGlobalLevel(level Level) {
	Get().SetLevel(level)
}

// SyncGlobal flushes any buffered log entries for the global logger.
func SyncGlobal() error {
	return Get().Sync()
}
