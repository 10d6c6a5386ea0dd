package observability

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the process logger. LOG_LEVEL overrides level when set; appName is
// attached to every entry so sample runs can be told apart in shared output.
func NewLogger(appName, level string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if env := os.Getenv("LOG_LEVEL"); strings.TrimSpace(env) != "" {
		level = env
	}
	config.Level = parseLogLevel(level)

	opts := []zap.Option{}
	if appName != "" {
		opts = append(opts, zap.Fields(zap.String("app", appName)))
	}
	return config.Build(opts...)
}

func parseLogLevel(s string) zap.AtomicLevel {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return zap.NewAtomicLevelAt(zap.DebugLevel)
	case "WARN":
		return zap.NewAtomicLevelAt(zap.WarnLevel)
	case "ERROR":
		return zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		return zap.NewAtomicLevelAt(zap.InfoLevel)
	}
}
