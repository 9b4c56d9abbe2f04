package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const DefaultFile = ".pedidos.yaml"

type Config struct {
	APIAddress     string        `yaml:"api_address"`
	RunAddress     string        `yaml:"run_address"`
	DatabaseURI    string        `yaml:"database_uri"`
	RequestTimeout time.Duration `yaml:"request_timeout"`

	ValidationDelay     time.Duration `yaml:"validation_delay"`
	ToastDuration       time.Duration `yaml:"toast_duration"`
	TooltipDuration     time.Duration `yaml:"tooltip_duration"`
	MaxFutureDays       int           `yaml:"max_future_days"`
	MinSignalPercentage float64       `yaml:"min_signal_percentage"`

	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`

	Logger *zap.SugaredLogger `yaml:"-"`
}

func Default() *Config {
	return &Config{
		APIAddress:          "http://localhost:8080",
		RunAddress:          "localhost:8080",
		RequestTimeout:      10 * time.Second,
		ValidationDelay:     500 * time.Millisecond,
		ToastDuration:       3 * time.Second,
		TooltipDuration:     4 * time.Second,
		MaxFutureDays:       365,
		MinSignalPercentage: 0.2,
		LogLevel:            "warn",
	}
}

// LoadFile overlays values from a YAML file. A missing file is not an error.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg.Validate()
}

func (cfg *Config) Validate() error {
	if cfg.MinSignalPercentage <= 0 || cfg.MinSignalPercentage > 1 {
		return fmt.Errorf("min_signal_percentage must be in (0, 1], got %v", cfg.MinSignalPercentage)
	}
	if cfg.MaxFutureDays <= 0 {
		return fmt.Errorf("max_future_days must be positive, got %d", cfg.MaxFutureDays)
	}
	if cfg.TooltipDuration < cfg.ToastDuration {
		return fmt.Errorf("tooltip_duration (%s) must not be shorter than toast_duration (%s)", cfg.TooltipDuration, cfg.ToastDuration)
	}
	return nil
}

func ReadEnvironment(cfg *Config) {
	if apiAddress := os.Getenv("PEDIDOS_API_URL"); apiAddress != "" {
		cfg.APIAddress = apiAddress
	}

	if runAddress := os.Getenv("RUN_ADDRESS"); runAddress != "" {
		cfg.RunAddress = runAddress
	}

	if databaseURI := os.Getenv("DATABASE_URI"); databaseURI != "" {
		cfg.DatabaseURI = databaseURI
	}

	if logLevel := os.Getenv("PEDIDOS_LOG_LEVEL"); logLevel != "" {
		cfg.LogLevel = logLevel
	}

	if timeout := os.Getenv("PEDIDOS_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			cfg.RequestTimeout = d
		}
	}

	if days := os.Getenv("PEDIDOS_MAX_FUTURE_DAYS"); days != "" {
		if n, err := strconv.Atoi(days); err == nil {
			cfg.MaxFutureDays = n
		}
	}
}

// BindFlags registers the client flags on fs.
func BindFlags(fs *pflag.FlagSet) {
	def := Default()
	fs.String("config", DefaultFile, "config file")
	fs.String("api", def.APIAddress, "pedidos API base URL")
	fs.Duration("timeout", def.RequestTimeout, "HTTP request timeout")
	fs.String("log-level", def.LogLevel, "log level (debug, info, warn, error)")
	fs.String("log-file", "", "also write logs to this file")
}

// ApplyFlags copies the flags the user actually set, so they win over file
// and environment values. Flags missing from fs are ignored.
func ApplyFlags(fs *pflag.FlagSet, cfg *Config) {
	if fs.Changed("api") {
		cfg.APIAddress, _ = fs.GetString("api")
	}
	if fs.Changed("timeout") {
		cfg.RequestTimeout, _ = fs.GetDuration("timeout")
	}
	if fs.Changed("log-level") {
		cfg.LogLevel, _ = fs.GetString("log-level")
	}
	if fs.Changed("log-file") {
		cfg.LogFile, _ = fs.GetString("log-file")
	}
	if fs.Changed("address") {
		cfg.RunAddress, _ = fs.GetString("address")
	}
	if fs.Changed("database") {
		cfg.DatabaseURI, _ = fs.GetString("database")
	}
}

// Load resolves defaults, config file, environment and flags, in that order,
// and builds the logger.
func Load(fs *pflag.FlagSet, logTo string) (*Config, error) {
	cfg := Default()

	path := DefaultFile
	if fs.Lookup("config") != nil {
		path, _ = fs.GetString("config")
	}
	if err := LoadFile(path, cfg); err != nil {
		return nil, err
	}

	ReadEnvironment(cfg)

	ApplyFlags(fs, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := NewLogger(cfg.LogLevel, logTo, cfg.LogFile)
	if err != nil {
		return nil, err
	}
	cfg.Logger = logger

	return cfg, nil
}

func NewLogger(level, output, file string) (*zap.SugaredLogger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	logCfg := zap.NewProductionConfig()
	logCfg.Level = zap.NewAtomicLevelAt(lvl)
	logCfg.OutputPaths = []string{output}
	if file != "" {
		logCfg.OutputPaths = append(logCfg.OutputPaths, file)
	}

	logger, err := logCfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
