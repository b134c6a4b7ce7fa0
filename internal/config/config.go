package config

import (
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime configuration shared by the CLI and the server.
type Config struct {
	Port         string
	DefaultTheme string
	ThemesFile   string
	Library      LibraryConfig
	Log          LogConfig
	Limits       LimitsConfig
	Metrics      MetricsConfig
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string
	Format string
}

// LibraryConfig controls the on-disk pyramid library used by the server.
type LibraryConfig struct {
	Dir          string
	MaxPyramids  int
	SyncEnabled  bool
	SyncInterval Duration
}

// LimitsConfig bounds generation requests accepted over HTTP.
type LimitsConfig struct {
	MaxLevels        int
	MaxTeamsPerLevel int
}

// rawEnv holds the environment as strings; conversion happens in Load so bad values
// fall back to defaults instead of failing startup.
type rawEnv struct {
	Port             string `env:"PORT"`
	DefaultTheme     string `env:"PYRAMID_DEFAULT_THEME"`
	ThemesFile       string `env:"PYRAMID_THEMES_FILE"`
	LibraryDir       string `env:"PYRAMID_LIBRARY_DIR"`
	LibraryMax       string `env:"PYRAMID_LIBRARY_MAX"`
	LibrarySync      string `env:"PYRAMID_LIBRARY_SYNC_ENABLED"`
	LibrarySyncEvery string `env:"PYRAMID_LIBRARY_SYNC_INTERVAL"`
	LogLevel         string `env:"LOG_LEVEL"`
	LogFormat        string `env:"LOG_FORMAT"`
	MaxLevels        string `env:"MAX_LEVELS"`
	MaxTeamsPerLevel string `env:"MAX_TEAMS_PER_LEVEL"`
	MetricsEnabled   string `env:"METRICS_ENABLED"`
	MetricsPort      string `env:"METRICS_PORT"`
	OtlpEndpoint     string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OtlpServiceName  string `env:"OTEL_SERVICE_NAME"`
	OtlpInsecure     string `env:"OTEL_EXPORTER_OTLP_INSECURE"`
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	var raw rawEnv
	// String-only fields without required tags cannot fail to parse.
	_ = env.Parse(&raw)
	return fromRaw(raw)
}

func fromRaw(raw rawEnv) Config {
	return Config{
		Port:         orDefault(raw.Port, defaultPort),
		DefaultTheme: orDefault(raw.DefaultTheme, defaultTheme),
		ThemesFile:   strings.TrimSpace(raw.ThemesFile),
		Library: LibraryConfig{
			Dir:          orDefault(raw.LibraryDir, defaultLibraryDir),
			MaxPyramids:  positiveIntOrDefault(raw.LibraryMax, defaultLibraryMax),
			SyncEnabled:  boolOrDefault(raw.LibrarySync, true),
			SyncInterval: durationOrDefault(raw.LibrarySyncEvery, defaultLibrarySyncInterval),
		},
		Log: LogConfig{
			Level:  strings.ToLower(orDefault(raw.LogLevel, defaultLogLevel)),
			Format: strings.ToLower(orDefault(raw.LogFormat, defaultLogFormat)),
		},
		Limits: LimitsConfig{
			MaxLevels:        positiveIntOrDefault(raw.MaxLevels, defaultMaxLevels),
			MaxTeamsPerLevel: positiveIntOrDefault(raw.MaxTeamsPerLevel, defaultMaxTeamsPerLevel),
		},
		Metrics: metricsFromRaw(raw),
	}
}
