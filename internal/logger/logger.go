package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	FieldSessionID = "session_id"
	FieldJobID     = "job_id"
	FieldCandidate = "candidate"
)

func New(json bool, debug bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	encoding := "console"

	if json {
		encoding = "json"
	}

	if debug {
		level = zapcore.DebugLevel
	}

	cfg := zap.Config{
		Encoding:         encoding,
		Level:            zap.NewAtomicLevelAt(level),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			MessageKey: "step",

			LevelKey:    "level",
			EncodeLevel: zapcore.LowercaseLevelEncoder,

			TimeKey:    "time",
			EncodeTime: zapcore.RFC3339TimeEncoder,

			CallerKey:    "caller",
			EncodeCaller: zapcore.ShortCallerEncoder,
		},
	}

	return cfg.Build()
}

// WithFields attaches fields to the logger, falling back to a no-op logger
// when none is given.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// ApplicationFields describes one (candidate, job) pair. Blank values are
// left out.
func ApplicationFields(candidate, jobID string) []zap.Field {
	fields := make([]zap.Field, 0, 2)
	if candidate = strings.TrimSpace(candidate); candidate != "" {
		fields = append(fields, zap.String(FieldCandidate, candidate))
	}
	if jobID = strings.TrimSpace(jobID); jobID != "" {
		fields = append(fields, zap.String(FieldJobID, jobID))
	}
	return fields
}

// ForSession returns a logger tagged with the recruiter session id.
func ForSession(logger *zap.Logger, sessionID string) *zap.Logger {
	if strings.TrimSpace(sessionID) == "" {
		return WithFields(logger)
	}
	return WithFields(logger, zap.String(FieldSessionID, sessionID))
}

// TruncateForLog shortens s to limit runes, appending an ellipsis when cut.
func TruncateForLog(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
