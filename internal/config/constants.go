package config

import "time"

const (
	defaultPort             = "4000"
	defaultTheme            = "eorzea"
	defaultLibraryDir       = "data/pyramids"
	defaultLibraryMax       = 500
	defaultLogLevel         = "info"
	defaultLogFormat        = "text"
	defaultMetricsPort      = "9090"
	defaultServiceName      = "pyramid-service"
	defaultMaxLevels        = 32
	defaultMaxTeamsPerLevel = 200

	defaultLibrarySyncInterval = 5 * Duration(time.Minute)
)
