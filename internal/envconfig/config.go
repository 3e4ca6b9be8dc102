// Package envconfig reads yarnn settings from YARNN_* environment variables.
package envconfig

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// LogLevel returns the log level.
// Configurable via YARNN_DEBUG: 0/false = INFO (default), 1/true = DEBUG,
// larger integers go further below DEBUG.
func LogLevel() slog.Level {
	level := slog.LevelInfo
	if s := Var("YARNN_DEBUG"); s != "" {
		if b, _ := strconv.ParseBool(s); b {
			level = slog.LevelDebug
		} else if i, _ := strconv.ParseInt(s, 10, 64); i != 0 {
			level = slog.Level(i * -4)
		}
	}

	return level
}

var (
	// Epochs is the default number of training epochs (YARNN_EPOCHS).
	Epochs = Uint("YARNN_EPOCHS", 2000)
	// LearningRate is the default optimizer learning rate (YARNN_LEARNING_RATE).
	LearningRate = Float("YARNN_LEARNING_RATE", 0.01)
)

// Uint returns a function reading a uint with a default value.
func Uint(key string, defaultValue uint) func() uint {
	return func() uint {
		if s := Var(key); s != "" {
			if n, err := strconv.ParseUint(s, 10, 64); err != nil {
				slog.Warn("invalid environment variable, using default", "key", key, "value", s, "default", defaultValue)
			} else {
				return uint(n)
			}
		}
		return defaultValue
	}
}

// Float returns a function reading a float32 with a default value.
func Float(key string, defaultValue float32) func() float32 {
	return func() float32 {
		if s := Var(key); s != "" {
			if f, err := strconv.ParseFloat(s, 32); err != nil {
				slog.Warn("invalid environment variable, using default", "key", key, "value", s, "default", defaultValue)
			} else {
				return float32(f)
			}
		}
		return defaultValue
	}
}

// EnvVar describes one configuration variable.
type EnvVar struct {
	Name        string
	Value       any
	Description string
}

// AsMap returns every setting with its current value.
func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"YARNN_DEBUG":         {"YARNN_DEBUG", LogLevel(), "Show additional debug information (e.g. YARNN_DEBUG=1)"},
		"YARNN_EPOCHS":        {"YARNN_EPOCHS", Epochs(), "Default number of training epochs"},
		"YARNN_LEARNING_RATE": {"YARNN_LEARNING_RATE", LearningRate(), "Default optimizer learning rate"},
	}
}

// Var returns an environment variable stripped of surrounding quotes and spaces.
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}
