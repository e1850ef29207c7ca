package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required"`
}

type TrackerConfig struct {
	HoverDebounce        time.Duration `yaml:"hoverDebounce"`
	LongHoverThreshold   time.Duration `yaml:"longHoverThreshold"`
	DefaultTrialDuration time.Duration `yaml:"defaultTrialDuration"`
	Retention            time.Duration `yaml:"retention"`
	SweepInterval        time.Duration `yaml:"sweepInterval" validate:"required|min:1"`
	KeyPrefix            string        `yaml:"keyPrefix"`
}

type SessionConfig struct {
	IdleTTL       time.Duration `yaml:"idleTTL"`
	EvictInterval time.Duration `yaml:"evictInterval"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type StorageConfig struct {
	Driver string      `yaml:"driver" validate:"required|in:file,memory,redis"`
	Dir    string      `yaml:"dir"`
	Size   int         `yaml:"size"`
	Redis  RedisConfig `yaml:"redis"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	Tracker   TrackerConfig `yaml:"tracker"`
	Session   SessionConfig `yaml:"session"`
	WebServer Server        `yaml:"webServer"`
	Storage   StorageConfig `yaml:"storage"`
	Logger    LoggerConfig  `yaml:"logger"`
	Metrics   MetricsConfig `yaml:"metrics"`
}
