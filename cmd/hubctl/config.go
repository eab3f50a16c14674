package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the hubctl configuration file.
type Config struct {
	Store         string        `yaml:"store"`
	Listen        string        `yaml:"listen"`
	MetricsListen string        `yaml:"metrics_listen"`
	BasePath      string        `yaml:"base_path"`
	Log           LogConfig     `yaml:"log"`
	Telegram      TelegramBlock `yaml:"telegram"`
	Emitter       EmitterBlock  `yaml:"emitter"`
	Activity      ActivityBlock `yaml:"activity"`
}

// LogConfig selects logrus level and formatter.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// TelegramBlock configures the live relay.
type TelegramBlock struct {
	Endpoint string        `yaml:"endpoint"`
	Timeout  time.Duration `yaml:"timeout"`
}

// EmitterBlock configures script emission.
type EmitterBlock struct {
	EmbedDelay    time.Duration `yaml:"embed_delay"`
	PreviewDelay  time.Duration `yaml:"preview_delay"`
	SimulateDelay time.Duration `yaml:"simulate_delay"`
	CacheTTL      time.Duration `yaml:"cache_ttl"`
}

// ActivityBlock controls the activity feed written to the log. An empty Verbs
// list records every verb.
type ActivityBlock struct {
	Enabled bool     `yaml:"enabled"`
	Verbs   []string `yaml:"verbs"`
}

func defaultConfig() Config {
	return Config{
		Store:         "data/widgets.json",
		Listen:        ":8080",
		MetricsListen: ":9090",
		BasePath:      "/hub",
		Log:           LogConfig{Level: "info", Format: "text"},
		Telegram:      TelegramBlock{Timeout: 15 * time.Second},
		Emitter: EmitterBlock{
			EmbedDelay:    500 * time.Millisecond,
			PreviewDelay:  50 * time.Millisecond,
			SimulateDelay: 800 * time.Millisecond,
			CacheTTL:      time.Minute,
		},
		Activity: ActivityBlock{Enabled: true},
	}
}

// loadConfig reads path over the defaults, then applies HUB_* variables from
// the environment and the optional env file. A missing file is not an error.
func loadConfig(path, envFile string) (Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("hubctl: parse config %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("hubctl: read config %s: %w", path, err)
		}
	}
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("hubctl: load env file %s: %w", envFile, err)
		}
	}
	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"HUB_STORE":             &cfg.Store,
		"HUB_LISTEN":            &cfg.Listen,
		"HUB_METRICS_LISTEN":    &cfg.MetricsListen,
		"HUB_BASE_PATH":         &cfg.BasePath,
		"HUB_LOG_LEVEL":         &cfg.Log.Level,
		"HUB_LOG_FORMAT":        &cfg.Log.Format,
		"HUB_TELEGRAM_ENDPOINT": &cfg.Telegram.Endpoint,
	}
	for key, target := range strs {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*target = strings.TrimSpace(v)
		}
	}
	durations := map[string]*time.Duration{
		"HUB_TELEGRAM_TIMEOUT": &cfg.Telegram.Timeout,
		"HUB_EMBED_DELAY":      &cfg.Emitter.EmbedDelay,
		"HUB_PREVIEW_DELAY":    &cfg.Emitter.PreviewDelay,
		"HUB_SIMULATE_DELAY":   &cfg.Emitter.SimulateDelay,
		"HUB_CACHE_TTL":        &cfg.Emitter.CacheTTL,
	}
	for key, target := range durations {
		v, ok := lookup(key)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("hubctl: %s: %w", key, err)
		}
		*target = d
	}
	if v, ok := lookup("HUB_ACTIVITY_ENABLED"); ok && strings.TrimSpace(v) != "" {
		enabled, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("hubctl: HUB_ACTIVITY_ENABLED: %w", err)
		}
		cfg.Activity.Enabled = enabled
	}
	if v, ok := lookup("HUB_ACTIVITY_VERBS"); ok && strings.TrimSpace(v) != "" {
		cfg.Activity.Verbs = cfg.Activity.Verbs[:0]
		for _, verb := range strings.Split(v, ",") {
			if verb = strings.TrimSpace(verb); verb != "" {
				cfg.Activity.Verbs = append(cfg.Activity.Verbs, verb)
			}
		}
	}
	return nil
}
