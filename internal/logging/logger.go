// Package logging owns the process-wide zap logger.
//
// The interactive view owns stdout, so it logs to a rotated file and keeps
// the console sink silent. One-shot commands log to stderr.
package logging

import (
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/san-kum/metaballs/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const serviceName = "metaballs"

var (
	global atomic.Pointer[zap.Logger]
	once   sync.Once
)

// Initialize builds the global logger once. console may be nil to disable
// console output; a file sink is added when cfg.File is set.
func Initialize(cfg config.LogConfig, console zapcore.WriteSyncer) {
	once.Do(func() {
		level := zap.NewAtomicLevel()
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			level.SetLevel(zap.InfoLevel)
		}

		var cores []zapcore.Core
		if console != nil {
			cores = append(cores, zapcore.NewCore(encoder(cfg.Format), console, level))
		}
		if cfg.File != "" {
			file := zapcore.AddSync(&lumberjack.Logger{
				Filename:   cfg.File,
				MaxSize:    cfg.MaxSize,
				MaxBackups: cfg.MaxBackups,
				MaxAge:     cfg.MaxAge,
			})
			cores = append(cores, zapcore.NewCore(encoder("json"), file, level))
		}

		logger := zap.NewNop()
		if len(cores) > 0 {
			logger = zap.New(zapcore.NewTee(cores...), zap.AddStacktrace(zap.ErrorLevel)).Named(serviceName)
		}
		global.Store(logger)
		zap.ReplaceGlobals(logger)
	})
}

// InitializeConsole logs to stderr.
func InitializeConsole(cfg config.LogConfig) {
	Initialize(cfg, zapcore.Lock(os.Stderr))
}

// InitializeFile logs only to cfg.File, falling back to fallbackFile when
// unset. Use while a full-screen view owns the terminal.
func InitializeFile(cfg config.LogConfig, fallbackFile string) {
	if cfg.File == "" {
		cfg.File = fallbackFile
	}
	Initialize(cfg, nil)
}

// InitializeWriter logs to w in the configured format. Handy for tests.
func InitializeWriter(cfg config.LogConfig, w io.Writer) {
	Initialize(cfg, zapcore.AddSync(w))
}

func encoder(format string) zapcore.Encoder {
	ec := zap.NewProductionEncoderConfig()
	ec.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02T15:04:05.000Z07:00")
	if format == "console" {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(ec)
	}
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewJSONEncoder(ec)
}

// Get returns the global logger, or a no-op logger before Initialize.
func Get() *zap.Logger {
	if l := global.Load(); l != nil {
		return l
	}
	return zap.NewNop()
}

// Sync flushes buffered entries.
func Sync() {
	_ = Get().Sync()
}

// ResetForTest clears the global logger. Tests only.
func ResetForTest() {
	global.Store(nil)
	once = sync.Once{}
}
