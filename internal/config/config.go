package config

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	domainerrors "github.com/leengari/csvbreaker/internal/domain/errors"
	"github.com/leengari/csvbreaker/internal/storage/loader"
)

// Environment variables read by ApplyEnv
const (
	EnvLogLevel      = "CSVBREAKER_LOG_LEVEL"
	EnvLogFormat     = "CSVBREAKER_LOG_FORMAT"
	EnvSeqURL        = "CSVBREAKER_SEQ_URL"
	EnvStringColumns = "CSVBREAKER_STRING_COLUMNS"
)

// Log formats for the console handler
const (
	FormatAuto = "auto" // text on a terminal, JSON otherwise
	FormatText = "text"
	FormatJSON = "json"
)

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	SeqURL string `yaml:"seq_url,omitempty"`
}

// Config is built once at startup and passed by value into the pipeline.
// InputDir and MaxColumns always come from the positional arguments.
type Config struct {
	InputDir        string        `yaml:"-"`
	MaxColumns      int           `yaml:"-"`
	DryRun          bool          `yaml:"-"`
	StringColumns   []string      `yaml:"string_columns"`
	ContinueOnError bool          `yaml:"continue_on_error"`
	Logging         LoggingConfig `yaml:"logging"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		StringColumns: append([]string(nil), loader.DefaultStringColumns...),
		Logging: LoggingConfig{
			Level:  "warn",
			Format: FormatAuto,
		},
	}
}

// LoadFile overlays the YAML file at path onto cfg. Keys absent from the file
// keep their current values; unknown keys are an error.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &domainerrors.ArgumentError{Argument: "--config", Value: path, Reason: "cannot read config file", Err: err}
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return &domainerrors.ArgumentError{Argument: "--config", Value: path, Reason: "invalid config file", Err: err}
	}
	return nil
}

// LoadDotEnv loads variables from a .env file without overriding ones
// already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// ApplyEnv overlays the CSVBREAKER_* variables onto cfg
func ApplyEnv(cfg *Config, getenv func(string) string) {
	if v := getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = v
	}
	if v := getenv(EnvLogFormat); v != "" {
		cfg.Logging.Format = v
	}
	if v := getenv(EnvSeqURL); v != "" {
		cfg.Logging.SeqURL = v
	}
	if v := getenv(EnvStringColumns); v != "" {
		cfg.StringColumns = SplitList(v)
	}
}

// SplitList splits a comma separated list, dropping blanks
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ParseMaxColumns parses the max_columns argument
func ParseMaxColumns(arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, &domainerrors.ArgumentError{
			Argument: "max_columns",
			Value:    arg,
			Reason:   "must be an integer",
		}
	}
	if n <= 1 {
		return 0, &domainerrors.ArgumentError{
			Argument: "max_columns",
			Value:    arg,
			Reason:   "must be an integer greater than 1",
		}
	}
	return n, nil
}

// Validate checks the settings before any file is touched
func (c Config) Validate() error {
	info, err := os.Stat(c.InputDir)
	if err != nil {
		return &domainerrors.ArgumentError{
			Argument: "input_dir",
			Value:    c.InputDir,
			Reason:   "directory does not exist",
			Err:      err,
		}
	}
	if !info.IsDir() {
		return &domainerrors.ArgumentError{
			Argument: "input_dir",
			Value:    c.InputDir,
			Reason:   "not a directory",
		}
	}

	if c.MaxColumns <= 1 {
		return &domainerrors.ArgumentError{
			Argument: "max_columns",
			Value:    strconv.Itoa(c.MaxColumns),
			Reason:   "must be an integer greater than 1",
		}
	}

	for _, name := range c.StringColumns {
		if strings.TrimSpace(name) == "" {
			return &domainerrors.ArgumentError{Argument: "string_columns", Reason: "column names cannot be blank"}
		}
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return &domainerrors.ArgumentError{
			Argument: "log_level",
			Value:    c.Logging.Level,
			Reason:   "must be one of debug, info, warn, error",
		}
	}

	switch c.Logging.Format {
	case FormatAuto, FormatText, FormatJSON:
	default:
		return &domainerrors.ArgumentError{
			Argument: "log_format",
			Value:    c.Logging.Format,
			Reason:   "must be one of auto, text, json",
		}
	}

	return nil
}
