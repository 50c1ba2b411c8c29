// Package logger holds the process-wide structured logger. Until Init is
// called every helper is a silent no-op.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/habitual/internal/constants"
)

var Logger *log.Logger

// Config holds logger configuration. LogDir overrides the default
// <ConfigDir>/logs location.
type Config struct {
	Debug     bool
	ConfigDir string
	LogDir    string
}

// FilePath returns the log file location for cfg.
func (cfg Config) FilePath() string {
	dir := cfg.LogDir
	if dir == "" {
		dir = filepath.Join(cfg.ConfigDir, "logs")
	}
	return filepath.Join(dir, constants.AppName+".log")
}

// Init installs the global logger. Records go to a rotating file; in debug
// mode they are mirrored to stderr and the level drops to debug.
func Init(cfg Config) error {
	path := cfg.FilePath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	fileWriter := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	level := log.InfoLevel
	var writer io.Writer = fileWriter
	if cfg.Debug {
		level = log.DebugLevel
		writer = io.MultiWriter(os.Stderr, fileWriter)
	}

	Logger = log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})
	return nil
}

func Debug(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

func Error(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}

// Fatal logs at error level and exits with status 1.
func Fatal(msg string, keyvals ...any) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
	os.Exit(1)
}
