// Package logger provides the process-wide structured logger used by every
// buffer pool component.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
)

var (
	// Logger is the default logger, used for debug-level tracing.
	Logger *logrus.Logger
	// InfoLogger carries info-and-above messages.
	InfoLogger *logrus.Logger
	// ErrorLogger carries warn-and-above messages.
	ErrorLogger *logrus.Logger
)

func init() {
	// Sensible defaults so a package that imports logger but never calls
	// Init still logs somewhere instead of panicking on a nil pointer.
	_ = Init(Config{Level: "info"})
}

// Config controls where log output goes and at what level.
type Config struct {
	ErrorLogPath string
	InfoLogPath  string
	Level        string
}

// lineFormatter renders one log line as "HH:MM:SS.mmm [LEVEL] (caller) message",
// with LEVEL cut to its first four letters.
type lineFormatter struct{}

func (lineFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	level := strings.ToUpper(entry.Level.String())
	if len(level) > 4 {
		level = level[:4]
	}
	msg := fmt.Sprintf("%s [%s] (%s) %s\n",
		entry.Time.Format("15:04:05.000"),
		level,
		caller(),
		entry.Message)
	return []byte(msg), nil
}

func caller() string {
	for i := 2; i < 20; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}
		if strings.Contains(file, "sirupsen/logrus") || strings.Contains(file, "logger/logger.go") {
			continue
		}
		fn := runtime.FuncForPC(pc)
		name := "unknown"
		if fn != nil {
			name = fn.Name()
		}
		return fmt.Sprintf("%s:%d:%s", filepath.Base(file), line, name)
	}
	return "unknown:0"
}

func parseLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	default:
		return logrus.InfoLevel
	}
}

// Init (re)configures the package-level loggers. Missing paths fall back to
// stdout/stderr rather than failing.
func Init(cfg Config) error {
	formatter := lineFormatter{}
	level := parseLevel(cfg.Level)

	Logger = logrus.New()
	Logger.SetFormatter(formatter)
	Logger.SetLevel(level)

	InfoLogger = logrus.New()
	InfoLogger.SetFormatter(formatter)
	InfoLogger.SetLevel(level)

	ErrorLogger = logrus.New()
	ErrorLogger.SetFormatter(formatter)
	ErrorLogger.SetLevel(level)

	if cfg.InfoLogPath != "" {
		f, err := openLogFile(cfg.InfoLogPath)
		if err != nil {
			InfoLogger.SetOutput(os.Stdout)
			InfoLogger.Warnf("failed to open info log %s, falling back to stdout: %v", cfg.InfoLogPath, err)
		} else {
			InfoLogger.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	} else {
		InfoLogger.SetOutput(os.Stdout)
	}

	if cfg.ErrorLogPath != "" {
		f, err := openLogFile(cfg.ErrorLogPath)
		if err != nil {
			ErrorLogger.SetOutput(os.Stderr)
			ErrorLogger.Warnf("failed to open error log %s, falling back to stderr: %v", cfg.ErrorLogPath, err)
		} else {
			ErrorLogger.SetOutput(io.MultiWriter(os.Stderr, f))
		}
	} else {
		ErrorLogger.SetOutput(os.Stderr)
	}

	Logger.SetOutput(InfoLogger.Out)
	return nil
}

func openLogFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

func Debug(args ...interface{})                 { Logger.Debug(args...) }
func Debugf(format string, args ...interface{}) { Logger.Debugf(format, args...) }
func Info(args ...interface{})                  { InfoLogger.Info(args...) }
func Infof(format string, args ...interface{})  { InfoLogger.Infof(format, args...) }
func Warn(args ...interface{})                  { ErrorLogger.Warn(args...) }
func Warnf(format string, args ...interface{})  { ErrorLogger.Warnf(format, args...) }
func Error(args ...interface{})                 { ErrorLogger.Error(args...) }
func Errorf(format string, args ...interface{}) { ErrorLogger.Errorf(format, args...) }
func Fatal(args ...interface{})                 { ErrorLogger.Fatal(args...) }
func Fatalf(format string, args ...interface{}) { ErrorLogger.Fatalf(format, args...) }
