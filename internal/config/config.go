package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"SpotFetch/internal/errs"
	"SpotFetch/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Esios struct {
		BaseURL   string `yaml:"base_url"`
		Indicator int    `yaml:"indicator"`
	} `yaml:"esios"`
	Output struct {
		CSVPath string `yaml:"csv_path"`
	} `yaml:"output"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Proxy string `yaml:"proxy"`

	// Token is only ever read from the environment, never from YAML.
	Token string `yaml:"-"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides. A missing file is not an error: env vars and defaults still
// apply. A .env file in the working directory is loaded first, best-effort.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	cfg.Token = os.Getenv("ESIOS_API_TOKEN")
	if v := os.Getenv("ESIOS_BASE_URL"); v != "" {
		cfg.Esios.BaseURL = v
	}
	if v := os.Getenv("ESIOS_INDICATOR"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			cfg.Esios.Indicator = id
		}
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CSV_PATH"); v != "" {
		cfg.Output.CSVPath = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Esios.BaseURL == "" {
		cfg.Esios.BaseURL = "https://api.esios.ree.es"
	}
	if cfg.Esios.Indicator == 0 {
		cfg.Esios.Indicator = model.DefaultIndicator
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/data.db"
	}
	if cfg.Output.CSVPath == "" {
		cfg.Output.CSVPath = "data/esios_spot.csv"
	}
	if cfg.Schedule.DailyCron == "" {
		// Day-ahead results are published early afternoon CET.
		cfg.Schedule.DailyCron = "0 30 13 * * *"
	}

	return cfg, nil
}

// Validate checks that all required fields are set. It runs before any
// network call, so a missing token never reaches the API.
func (c *Config) Validate() error {
	if c.Token == "" {
		return errs.New(errs.KindConfig,
			"ESIOS_API_TOKEN is not set; create a .env with ESIOS_API_TOKEN=... or export it in your environment")
	}
	if _, ok := model.Indicators[c.Esios.Indicator]; !ok {
		return errs.Newf(errs.KindConfig, "unsupported indicator %d (supported: %s)",
			c.Esios.Indicator, model.IndicatorList())
	}
	return nil
}
