package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type DetectorConfig struct {
	InactivityWindowDays int `yaml:"inactivityWindowDays" validate:"min:0"`
	MinGapDays           int `yaml:"minGapDays" validate:"min:0"`
	MaxGapDays           int `yaml:"maxGapDays" validate:"required|min:1"`
	MinPostsThreshold    int `yaml:"minPostsThreshold" validate:"min:0"`
}

type GraphConfig struct {
	MinFlowThreshold int                 `yaml:"minFlowThreshold" validate:"min:0"`
	Categories       map[string][]string `yaml:"categories"`
}

type AnalysisConfig struct {
	RefreshInterval time.Duration `yaml:"refreshInterval" validate:"required|min:1"`
}

type SnapshotConfig struct {
	FilePath     string        `yaml:"filePath" validate:"required|unixPath"`
	SaveInterval time.Duration `yaml:"saveInterval" validate:"required|min:1"`
}

type InputConfig struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format" validate:"in:,csv,json"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName   string
	Debug     bool
	Batch     bool
	Path      string
	Detector  DetectorConfig `yaml:"detector"`
	Graph     GraphConfig    `yaml:"graph"`
	Analysis  AnalysisConfig `yaml:"analysis"`
	Snapshot  SnapshotConfig `yaml:"snapshot"`
	Input     InputConfig    `yaml:"input"`
	WebServer Server         `yaml:"webServer"`
	Logger    LoggerConfig   `yaml:"logger"`
	Cache     CacheConfig    `yaml:"cache"`
	Metrics   MetricsConfig  `yaml:"metrics"`
}
