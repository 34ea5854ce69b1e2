package utils

import (
	"os"

	"github.com/Luismorlan/ledger_in_go/config"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger builds a console logger. When a log file is configured the output is rotated
// instead of going to stderr.
func NewLogger(c config.LogConfig) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if c.Level != "" {
		var err error
		level, err = zapcore.ParseLevel(c.Level)
		if err != nil {
			return nil, errors.Wrapf(err, "parse log level %q", c.Level)
		}
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	output := zapcore.AddSync(os.Stderr)
	if c.File != "" {
		output = zapcore.AddSync(&lumberjack.Logger{
			Filename:   c.File,
			MaxSize:    c.MaxSizeMB, // megabytes
			MaxBackups: c.MaxBackups,
			MaxAge:     c.MaxAgeDays, // days
			Compress:   c.Compress,
		})
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), output, zap.NewAtomicLevelAt(level))
	return zap.New(core, zap.AddCaller()), nil
}
