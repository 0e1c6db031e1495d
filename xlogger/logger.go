package xlogger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

type Config struct {
	Level      string `yaml:"level" json:"level"`
	LogType    string `yaml:"log_type" json:"log_type"`
	Output     string `yaml:"output" json:"output"`
	AddSource  bool   `yaml:"add_source" json:"add_source"`
	SourcePath string `yaml:"source_path" json:"source_path"`
}

func (c *Config) Default() {
	*c = Config{
		Level:   "info",
		LogType: "text",
		Output:  "stderr",
	}
}

// New builds a logger writing to the output named in conf ("stdout" or "stderr").
func New(conf Config) *slog.Logger {
	return NewWithWriter(getOutput(conf.Output), conf)
}

func NewWithWriter(w io.Writer, conf Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		AddSource:   conf.AddSource,
		Level:       getLogLevel(conf.Level),
		ReplaceAttr: replaceAttr(conf),
	}

	return slog.New(getHandler(w, conf.LogType, opts))
}

// getLogLevel accepts the slog level names (debug, info, warn, error) in any
// case, including offsets such as "warn+2". Unknown values fall back to info.
func getLogLevel(logLevel string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(logLevel))); err != nil {
		return slog.LevelInfo
	}
	return level
}

func getOutput(output string) io.Writer {
	switch strings.ToLower(output) {
	case "stdout":
		return os.Stdout
	default:
		return os.Stderr
	}
}

func getHandler(w io.Writer, logType string, opts *slog.HandlerOptions) slog.Handler {
	switch strings.ToLower(logType) {
	case "json":
		return slog.NewJSONHandler(w, opts)

	default:
		return slog.NewTextHandler(w, opts)
	}
}

func replaceAttr(conf Config) func(groups []string, a slog.Attr) slog.Attr {
	return func(_ []string, attr slog.Attr) slog.Attr {
		if attr.Key != slog.SourceKey {
			return attr
		}

		source, ok := attr.Value.Any().(*slog.Source)
		if !ok || source == nil {
			return attr
		}

		file := source.File
		if conf.SourcePath != "" {
			if index := strings.Index(file, conf.SourcePath); index >= 0 {
				file = file[index+len(conf.SourcePath):]
			}
		}

		return slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", file, source.Line))
	}
}
