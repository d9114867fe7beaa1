package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Sources   SourcesConfig   `yaml:"sources"`
	Cache     CacheConfig     `yaml:"cache"`
	Directory DirectoryConfig `yaml:"directory"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Port               int           `yaml:"port" env:"SERVER_PORT" env-default:"8080"`
	ReadTimeout        time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT" env-default:"5s"`
	WriteTimeout       time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT" env-default:"30s"`
	IdleTimeout        time.Duration `yaml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT" env-default:"120s"`
	StaticDir          string        `yaml:"static_dir" env:"SERVER_STATIC_DIR"`
	ResolveConcurrency int           `yaml:"resolve_concurrency" env:"RESOLVE_CONCURRENCY" env-default:"4"`
}

type SourcesConfig struct {
	Timeout          time.Duration `yaml:"timeout" env:"SOURCE_TIMEOUT" env-default:"15s"`
	UserAgent        string        `yaml:"user_agent" env:"SOURCE_USER_AGENT"`
	Kantor1913URL    string        `yaml:"kantor1913_url" env:"SOURCE_KANTOR1913_URL" env-default:"https://kantor1913.pl/kursy-warszawa"`
	ShitcoinsURL     string        `yaml:"shitcoins_url" env:"SOURCE_SHITCOINS_URL" env-default:"https://shitcoins.club/getRates"`
	ShitcoinsReferer string        `yaml:"shitcoins_referer" env:"SOURCE_SHITCOINS_REFERER" env-default:"https://shitcoins.club/"`
	// Zero disables background refresh.
	RefreshRate time.Duration `yaml:"refresh_rate" env:"SOURCE_REFRESH_RATE" env-default:"0s"`
}

type CacheConfig struct {
	TTL time.Duration `yaml:"ttl" env:"CACHE_TTL" env-default:"10m"`
}

type DirectoryConfig struct {
	Path string `yaml:"path" env:"EXCHANGES_FILE" env-default:"exchanges.json"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// LoadConfig reads an optional .env file, then either the YAML file named by
// CONFIG_PATH or the environment alone. Environment variables win over YAML.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Sources.Timeout <= 0 {
		return fmt.Errorf("invalid source timeout: %s", c.Sources.Timeout)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("invalid cache ttl: %s", c.Cache.TTL)
	}
	if c.Sources.RefreshRate < 0 {
		return fmt.Errorf("invalid source refresh rate: %s", c.Sources.RefreshRate)
	}
	return nil
}
