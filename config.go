package mmatic

import (
	"sync"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

const envPrefix = "MMATIC"

// Config holds manager settings. LoadConfig fills it from MMATIC_*
// environment variables.
type Config struct {
	// LogLevel is applied to the package logger by Configure.
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	// TrackCallers records the source location of every allocation.
	TrackCallers bool `envconfig:"TRACK_CALLERS" default:"true"`
	// Audit logs every allocation and free at debug level.
	Audit bool `envconfig:"AUDIT" default:"false"`
}

// Default is the configuration used when the environment sets nothing.
var Default = Config{
	LogLevel:     "info",
	TrackCallers: true,
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	conf := Default
	if err := envconfig.Process(envPrefix, &conf); err != nil {
		return Default, errors.Wrap(err, "mmatic: load config")
	}
	return conf, nil
}

// Configure applies the process-wide parts of conf.
func Configure(conf Config) {
	SetLogLevel(conf.LogLevel)
}

var (
	envOnce sync.Once
	envConf Config
)

// defaultConfig loads and applies the environment configuration once.
func defaultConfig() Config {
	envOnce.Do(func() {
		conf, err := LoadConfig()
		if err != nil {
			log.WithError(err).Warn("using default configuration")
		}
		Configure(conf)
		envConf = conf
	})
	return envConf
}
