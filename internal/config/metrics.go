package config

// MetricsConfig controls telemetry export settings.
type MetricsConfig struct {
	Enabled      bool
	Port         string
	OtlpEndpoint string
	ServiceName  string
	OtlpInsecure bool
}

func metricsFromRaw(raw rawEnv) MetricsConfig {
	return MetricsConfig{
		Enabled:      boolOrDefault(raw.MetricsEnabled, true),
		Port:         orDefault(raw.MetricsPort, defaultMetricsPort),
		OtlpEndpoint: orDefault(raw.OtlpEndpoint, ""),
		ServiceName:  orDefault(raw.OtlpServiceName, defaultServiceName),
		OtlpInsecure: boolOrDefault(raw.OtlpInsecure, true),
	}
}
