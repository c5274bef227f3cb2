package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/depsnap/internal/logging"
)

// Output formats accepted by --output.
const (
	OutputTable   = "table"
	OutputYAML    = "yaml"
	OutputJSON    = "json"
	OutputMermaid = "mermaid"
)

// Options carries the persistent flags shared by every command.
type Options struct {
	LogLevel  string
	LogFormat string
	Output    string
	Filters   []string

	// StateDir selects the file store. Empty keeps snapshots in memory.
	StateDir string
	// RedisAddr selects the Redis store and locker; it wins over StateDir.
	RedisAddr   string
	RedisPrefix string
	LockTTL     time.Duration
}

// Logger builds the logger described by the log flags.
func (o Options) Logger() (*slog.Logger, error) {
	level, err := logging.ParseLevel(o.LogLevel)
	if err != nil {
		return nil, err
	}
	format, err := logging.ParseFormat(o.LogFormat)
	if err != nil {
		return nil, err
	}
	return logging.New(level, format), nil
}

// ValidateOutput rejects unknown --output values.
func (o Options) ValidateOutput() error {
	switch o.Output {
	case OutputTable, OutputYAML, OutputJSON, OutputMermaid:
		return nil
	default:
		return fmt.Errorf("invalid output %q (want table, yaml, json or mermaid)", o.Output)
	}
}
