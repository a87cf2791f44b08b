package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	xdgAppName = "daybrief"
	configFile = "config.yaml"

	DefaultName    = "Muhitul"
	DefaultDataDir = "routines"
)

// Keys shared between the config file, environment variables and flags.
const (
	KeyBotToken    = "telegram.bot_token"
	KeyUserID      = "telegram.user_id"
	KeyTelegramURL = "telegram.base_url"
	KeySendTimeout = "telegram.timeout"
	KeyGeminiKey   = "gemini.api_key"
	KeyGeminiModel = "gemini.model"
	KeyGeminiURL   = "gemini.base_url"
	KeyAdviceTime  = "gemini.timeout"
	KeyName        = "name"
	KeyTimezone    = "timezone"
	KeyDataDir     = "data_dir"
	KeyCalendar    = "calendar"
	KeyTaskwarrior = "taskwarrior.enabled"
	KeyTaskFilter  = "taskwarrior.filter"
	KeyDryRun      = "dry_run"
	KeyOrgFiles    = "org_files"
)

type Telegram struct {
	BotToken string        `mapstructure:"bot_token" yaml:"-"`
	UserID   string        `mapstructure:"user_id" yaml:"user_id,omitempty"`
	BaseURL  string        `mapstructure:"base_url" yaml:"base_url,omitempty"`
	Timeout  time.Duration `mapstructure:"timeout" yaml:"timeout,omitempty"`
}

type Gemini struct {
	APIKey  string        `mapstructure:"api_key" yaml:"-"`
	Model   string        `mapstructure:"model" yaml:"model,omitempty"`
	BaseURL string        `mapstructure:"base_url" yaml:"base_url,omitempty"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout,omitempty"`
}

type Taskwarrior struct {
	Enabled bool     `mapstructure:"enabled" yaml:"enabled,omitempty"`
	Filter  []string `mapstructure:"filter" yaml:"filter,omitempty"`
}

// Config is the resolved configuration for a run. Secrets are never written
// back to the config file.
type Config struct {
	Name        string      `mapstructure:"name" yaml:"name,omitempty"`
	Timezone    string      `mapstructure:"timezone" yaml:"timezone,omitempty"`
	DataDir     string      `mapstructure:"data_dir" yaml:"data_dir,omitempty"`
	Calendar    string      `mapstructure:"calendar" yaml:"calendar,omitempty"`
	OrgFiles    []string    `mapstructure:"org_files" yaml:"org_files,omitempty"`
	DryRun      bool        `mapstructure:"dry_run" yaml:"-"`
	Telegram    Telegram    `mapstructure:"telegram" yaml:"telegram,omitempty"`
	Gemini      Gemini      `mapstructure:"gemini" yaml:"gemini,omitempty"`
	Taskwarrior Taskwarrior `mapstructure:"taskwarrior" yaml:"taskwarrior,omitempty"`
}

func GetConfigPath() (string, error) {
	xdgHome, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(xdgHome, ".config", xdgAppName, configFile), nil
}

// SetDefaults registers defaults and environment bindings on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyName, DefaultName)
	v.SetDefault(KeyTimezone, "Asia/Dhaka")
	v.SetDefault(KeyDataDir, DefaultDataDir)
	v.SetDefault(KeyTelegramURL, "https://api.telegram.org")
	v.SetDefault(KeySendTimeout, 30*time.Second)
	v.SetDefault(KeyGeminiModel, "gemini-2.0-flash")
	v.SetDefault(KeyAdviceTime, 20*time.Second)
	v.SetDefault(KeyTaskFilter, []string{"status:pending", "due.any:"})

	_ = v.BindEnv(KeyBotToken, "TELEGRAM_BOT_TOKEN")
	_ = v.BindEnv(KeyUserID, "TELEGRAM_USER_ID")
	_ = v.BindEnv(KeyGeminiKey, "GEMINI_API_KEY")
	_ = v.BindEnv(KeyTimezone, "DAYBRIEF_TIMEZONE")
	_ = v.BindEnv(KeyDataDir, "DAYBRIEF_DATA_DIR")
	_ = v.BindEnv(KeyName, "DAYBRIEF_NAME")
}

// Load resolves the configuration from defaults, the optional config file,
// the environment and any flags already bound to v.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// LoadFile reads the persisted config file without applying defaults or the environment.
func LoadFile() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

func Save(cfg *Config) error {
	path, err := GetConfigPath()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to open config file for writing: %w", err)
	}
	defer f.Close()

	encoder := yaml.NewEncoder(f)
	encoder.SetIndent(2)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return encoder.Close()
}
