package logger

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ Logger = (*DefaultLogger)(nil)

// DefaultLogger wraps zap.SugaredLogger to implement Logger.
type DefaultLogger struct {
	logger *zap.SugaredLogger
}

// New creates a new DefaultLogger with the given configuration.
//
// Every configured handler becomes an independent sink: a record reaches it
// only when the record's severity clears both the logger threshold and the
// handler's own threshold. A file handler whose target cannot be opened is a
// configuration error surfaced immediately rather than a silently dropped
// sink. When Propagate is set, records are additionally forwarded to the
// process-global logger; by default they are not.
func New(cfg Config) (*DefaultLogger, error) {
	name := cfg.Name
	if name == "" {
		name = DefaultName
	}
	loggerLevel := parseLevel(cfg.Level, zapcore.InfoLevel)

	handlers := cfg.Handlers
	if len(handlers) == 0 {
		handlers = []Handler{{Name: "default", Kind: KindStream, Stream: StreamStderr}}
	}

	encoder := newLineEncoder(cfg.Formatter)
	cores := make([]zapcore.Core, 0, len(handlers)+1)
	for _, h := range handlers {
		sink, err := openSink(h)
		if err != nil {
			return nil, fmt.Errorf("handler %q: %w", h.Name, err)
		}
		handlerLevel := parseLevel(h.Level, zapcore.DebugLevel)
		enabler := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
			return l >= loggerLevel && l >= handlerLevel
		})
		cores = append(cores, zapcore.NewCore(encoder.Clone(), sink, enabler))
	}

	if cfg.Propagate {
		cores = append(cores, zap.L().Core())
	}

	zapLogger := zap.New(zapcore.NewTee(cores...)).Named(name)
	return &DefaultLogger{logger: zapLogger.Sugar()}, nil
}

// openSink resolves a handler to its write target. File targets are opened
// in append mode and accumulate lines across runs.
func openSink(h Handler) (zapcore.WriteSyncer, error) {
	switch h.Kind {
	case KindFile:
		if h.Filename == "" {
			return nil, errors.New("file handler requires a filename")
		}
		file, err := os.OpenFile(h.Filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		return zapcore.AddSync(file), nil
	case KindStream, "":
		switch h.Stream {
		case StreamStdout:
			return zapcore.Lock(os.Stdout), nil
		case StreamStderr, "":
			return zapcore.Lock(os.Stderr), nil
		default:
			return nil, fmt.Errorf("unknown stream %q", h.Stream)
		}
	default:
		return nil, fmt.Errorf("unknown handler kind %q", h.Kind)
	}
}

// parseLevel resolves a configured level name, accepting the spelled-out
// "warning" alongside zap's own names. Empty or unknown names fall back.
func parseLevel(s string, fallback zapcore.Level) zapcore.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return fallback
	}
	if s == "warning" {
		return zapcore.WarnLevel
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return fallback
	}
	return level
}

func (l *DefaultLogger) DebugW(msg string, keysAndValues ...any) {
	l.logger.Debugw(msg, keysAndValues...)
}

func (l *DefaultLogger) InfoW(msg string, keysAndValues ...any) {
	l.logger.Infow(msg, keysAndValues...)
}

func (l *DefaultLogger) WarnW(msg string, keysAndValues ...any) {
	l.logger.Warnw(msg, keysAndValues...)
}

func (l *DefaultLogger) ErrorW(msg string, keysAndValues ...any) {
	l.logger.Errorw(msg, keysAndValues...)
}

func (l *DefaultLogger) Sync() error {
	return l.logger.Sync()
}
