// Package logger configures the shared zap logger. Output goes to a
// rotating file under the user state directory because the terminal is
// occupied by the interactive review screen.
package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogPath returns the location of the log file.
func LogPath() (string, error) {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "clausesense", "clausesense.log"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "state", "clausesense", "clausesense.log"), nil
}

// New builds the file-backed logger. Set debug to lower the level to
// Debug. Headless commands may also tee warnings to stderr with
// console; the review screen must not, it owns the terminal. Falls
// back to a no-op logger when the log path cannot be resolved.
func New(debug, console bool) *zap.Logger {
	path, err := LogPath()
	if err != nil {
		return zap.NewNop()
	}

	writer := zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	})

	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), writer, level),
	}
	if console {
		consoleEnc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		cores = append(cores, zapcore.NewCore(consoleEnc, zapcore.AddSync(os.Stderr), zapcore.WarnLevel))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller())
}
