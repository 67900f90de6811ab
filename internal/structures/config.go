package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	FilePath     string        `yaml:"filePath" validate:"required|unixPath"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type FeedConfig struct {
	TrendingWindow        time.Duration `yaml:"trendingWindow" validate:"required|min:1"`
	TrendingTTL           time.Duration `yaml:"trendingTTL" validate:"required|min:1"`
	TrendingLimit         int           `yaml:"trendingLimit"`
	ContinueWatchingLimit int           `yaml:"continueWatchingLimit"`
	ContinueWatchingFetch int           `yaml:"continueWatchingFetch"`
	RecommendationLimit   int           `yaml:"recommendationLimit"`
	NewEpisodesLimit      int           `yaml:"newEpisodesLimit"`
}

type CatalogConfig struct {
	SeedPath string `yaml:"seedPath"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	Feed        FeedConfig    `yaml:"feed"`
	Catalog     CatalogConfig `yaml:"catalog"`
	WebServer   Server        `yaml:"webServer"`
	Persistence Persistence   `yaml:"persistence"`
	Logger      LoggerConfig  `yaml:"logger"`
	Cache       CacheConfig   `yaml:"cache"`
	Metrics     MetricsConfig `yaml:"metrics"`
}
