package benchmark

import (
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/patternlog/core"
	"github.com/philipp01105/patternlog/formatter"
	"github.com/philipp01105/patternlog/formatter/pattern"
	"github.com/philipp01105/patternlog/formatter/zapencoder"
	"github.com/philipp01105/patternlog/handler"
	"github.com/philipp01105/patternlog/logger"
)

// ---------------------------------------------------------------------------
// Helpers: every framework writes to the same sink
// ---------------------------------------------------------------------------

// newPatternLogger returns a logger rendering %+ lines to w
func newPatternLogger(w io.Writer) *logger.Logger {
	return newFormatterLogger(w, formatter.NewPatternFormatter(formatter.Config{Pattern: "%+"}))
}

// newJSONLogger returns a logger rendering JSON lines to w
func newJSONLogger(w io.Writer) *logger.Logger {
	return newFormatterLogger(w, formatter.NewJSONFormatter(formatter.Config{}))
}

func newFormatterLogger(w io.Writer, f formatter.Formatter) *logger.Logger {
	h := handler.NewConsoleHandler(handler.ConsoleConfig{
		Writer:    w,
		Formatter: f,
		Color:     handler.ColorNever,
	})
	return logger.NewBuilder().
		WithHandler(h).
		WithLevel(core.InfoLevel).
		Build()
}

// newZapLogger returns a zap.Logger that writes JSON to w
func newZapLogger(w io.Writer) *zap.Logger {
	enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), zap.InfoLevel))
}

// newZapPatternLogger returns a zap.Logger whose lines are rendered by a
// compiled %+ program
func newZapPatternLogger(w io.Writer) *zap.Logger {
	return zap.New(zapencoder.NewCore(pattern.Compile("%+"), zapcore.AddSync(w), zap.InfoLevel))
}

func newSlogLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

func newLogrusLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(logrus.InfoLevel)
	return l
}

func newZerologLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger().Level(zerolog.InfoLevel)
}

// frameworks lists one logging call per framework so every scenario
// runs the same shape of work
type frameworks struct {
	patternlog func(l *logger.Logger)
	zap        func(l *zap.Logger)
	slog       func(l *slog.Logger)
	logrus     func(l *logrus.Logger)
	zerolog    func(l zerolog.Logger)
}

// run benchmarks every framework writing to w, serially or in parallel
func (f frameworks) run(b *testing.B, w io.Writer, parallel bool) {
	loop := func(b *testing.B, call func()) {
		b.ReportAllocs()
		b.ResetTimer()
		if parallel {
			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					call()
				}
			})
			return
		}
		for i := 0; i < b.N; i++ {
			call()
		}
	}

	b.Run("patternlog-text", func(b *testing.B) {
		l := newPatternLogger(w)
		defer l.Close()
		loop(b, func() { f.patternlog(l) })
	})
	b.Run("patternlog-json", func(b *testing.B) {
		l := newJSONLogger(w)
		defer l.Close()
		loop(b, func() { f.patternlog(l) })
	})
	b.Run("zap", func(b *testing.B) {
		l := newZapLogger(w)
		loop(b, func() { f.zap(l) })
	})
	b.Run("zap-pattern", func(b *testing.B) {
		l := newZapPatternLogger(w)
		loop(b, func() { f.zap(l) })
	})
	b.Run("slog", func(b *testing.B) {
		l := newSlogLogger(w)
		loop(b, func() { f.slog(l) })
	})
	b.Run("logrus", func(b *testing.B) {
		l := newLogrusLogger(w)
		loop(b, func() { f.logrus(l) })
	})
	b.Run("zerolog", func(b *testing.B) {
		l := newZerologLogger(w)
		loop(b, func() { f.zerolog(l) })
	})
}

// ---------------------------------------------------------------------------
// Scenario 1: Info message, no fields
// ---------------------------------------------------------------------------

func BenchmarkCompetitive_InfoNoFields(b *testing.B) {
	frameworks{
		patternlog: func(l *logger.Logger) { l.Info("info message") },
		zap:        func(l *zap.Logger) { l.Info("info message") },
		slog:       func(l *slog.Logger) { l.Info("info message") },
		logrus:     func(l *logrus.Logger) { l.Info("info message") },
		zerolog:    func(l zerolog.Logger) { l.Info().Msg("info message") },
	}.run(b, io.Discard, false)
}

// ---------------------------------------------------------------------------
// Scenario 2: Structured logging with common fields
// ---------------------------------------------------------------------------

func BenchmarkCompetitive_InfoWithFields(b *testing.B) {
	frameworks{
		patternlog: func(l *logger.Logger) {
			l.Info("request handled",
				logger.String("method", "GET"),
				logger.String("path", "/api/users"),
				logger.Int("status", 200),
				logger.Duration("latency", 150*time.Millisecond),
			)
		},
		zap: func(l *zap.Logger) {
			l.Info("request handled",
				zap.String("method", "GET"),
				zap.String("path", "/api/users"),
				zap.Int("status", 200),
				zap.Duration("latency", 150*time.Millisecond),
			)
		},
		slog: func(l *slog.Logger) {
			l.Info("request handled",
				slog.String("method", "GET"),
				slog.String("path", "/api/users"),
				slog.Int("status", 200),
				slog.Duration("latency", 150*time.Millisecond),
			)
		},
		logrus: func(l *logrus.Logger) {
			l.WithFields(logrus.Fields{
				"method":  "GET",
				"path":    "/api/users",
				"status":  200,
				"latency": 150 * time.Millisecond,
			}).Info("request handled")
		},
		zerolog: func(l zerolog.Logger) {
			l.Info().
				Str("method", "GET").
				Str("path", "/api/users").
				Int("status", 200).
				Dur("latency", 150*time.Millisecond).
				Msg("request handled")
		},
	}.run(b, io.Discard, false)
}

// ---------------------------------------------------------------------------
// Scenario 3: Disabled level (Debug below an Info threshold)
// ---------------------------------------------------------------------------

func BenchmarkCompetitive_DisabledLevel(b *testing.B) {
	frameworks{
		patternlog: func(l *logger.Logger) { l.Debug("debug message", logger.String("key", "value")) },
		zap:        func(l *zap.Logger) { l.Debug("debug message", zap.String("key", "value")) },
		slog:       func(l *slog.Logger) { l.Debug("debug message", slog.String("key", "value")) },
		logrus:     func(l *logrus.Logger) { l.WithField("key", "value").Debug("debug message") },
		zerolog:    func(l zerolog.Logger) { l.Debug().Str("key", "value").Msg("debug message") },
	}.run(b, io.Discard, false)
}

// ---------------------------------------------------------------------------
// Scenario 4: Accumulated context (logger-level fields)
// ---------------------------------------------------------------------------

func BenchmarkCompetitive_AccumulatedContext(b *testing.B) {
	b.Run("patternlog-text", func(b *testing.B) {
		l := newPatternLogger(io.Discard)
		defer l.Close()
		cl := l.With(
			logger.String("service", "api"),
			logger.String("env", "prod"),
			logger.String("version", "1.0.0"),
		)
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			cl.Info("request", logger.Int("status", 200))
		}
	})

	b.Run("zap", func(b *testing.B) {
		l := newZapLogger(io.Discard).With(
			zap.String("service", "api"),
			zap.String("env", "prod"),
			zap.String("version", "1.0.0"),
		)
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			l.Info("request", zap.Int("status", 200))
		}
	})

	b.Run("slog", func(b *testing.B) {
		l := newSlogLogger(io.Discard).With(
			slog.String("service", "api"),
			slog.String("env", "prod"),
			slog.String("version", "1.0.0"),
		)
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			l.Info("request", slog.Int("status", 200))
		}
	})

	b.Run("logrus", func(b *testing.B) {
		l := newLogrusLogger(io.Discard).WithFields(logrus.Fields{
			"service": "api",
			"env":     "prod",
			"version": "1.0.0",
		})
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			l.WithField("status", 200).Info("request")
		}
	})

	b.Run("zerolog", func(b *testing.B) {
		l := newZerologLogger(io.Discard).With().
			Str("service", "api").
			Str("env", "prod").
			Str("version", "1.0.0").
			Logger()
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			l.Info().Int("status", 200).Msg("request")
		}
	})
}

// ---------------------------------------------------------------------------
// Scenario 5: Parallel logging
// ---------------------------------------------------------------------------

func BenchmarkCompetitive_Parallel(b *testing.B) {
	frameworks{
		patternlog: func(l *logger.Logger) {
			l.Info("parallel log", logger.String("key", "value"), logger.Int("count", 42))
		},
		zap: func(l *zap.Logger) {
			l.Info("parallel log", zap.String("key", "value"), zap.Int("count", 42))
		},
		slog: func(l *slog.Logger) {
			l.Info("parallel log", slog.String("key", "value"), slog.Int("count", 42))
		},
		logrus: func(l *logrus.Logger) {
			l.WithFields(logrus.Fields{"key": "value", "count": 42}).Info("parallel log")
		},
		zerolog: func(l zerolog.Logger) {
			l.Info().Str("key", "value").Int("count", 42).Msg("parallel log")
		},
	}.run(b, io.Discard, true)
}

// ---------------------------------------------------------------------------
// Scenario 6: File output (real I/O, equal conditions)
// ---------------------------------------------------------------------------

func BenchmarkCompetitive_FileOutput(b *testing.B) {
	f, err := os.CreateTemp(b.TempDir(), "bench-*.log")
	if err != nil {
		b.Fatal(err)
	}
	defer f.Close()

	frameworks{
		patternlog: func(l *logger.Logger) { l.Info("file log", logger.String("key", "value")) },
		zap:        func(l *zap.Logger) { l.Info("file log", zap.String("key", "value")) },
		slog:       func(l *slog.Logger) { l.Info("file log", slog.String("key", "value")) },
		logrus:     func(l *logrus.Logger) { l.WithField("key", "value").Info("file log") },
		zerolog:    func(l zerolog.Logger) { l.Info().Str("key", "value").Msg("file log") },
	}.run(b, f, false)
}
