package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Paintersrp/colecto/internal/constants"
	"github.com/Paintersrp/colecto/internal/logging"
)

type SortConfig struct {
	Field string `yaml:"field" json:"field"`
	Order string `yaml:"order" json:"order"`
}

type LogConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file"  json:"file"`
}

type ServerConfig struct {
	Addr           string   `yaml:"addr"                    json:"addr"`
	AllowOrigins   []string `yaml:"allow_origins,omitempty" json:"allow_origins"`
	AllowAnyFolder bool     `yaml:"allow_any_folder"        json:"allow_any_folder"`
}

type Config struct {
	Folder           string        `yaml:"folder"            json:"folder"`
	AutosaveInterval time.Duration `yaml:"autosave_interval" json:"autosave_interval"`
	Sort             SortConfig    `yaml:"sort"              json:"sort"`
	Log              LogConfig     `yaml:"log"               json:"log"`
	Server           ServerConfig  `yaml:"server"            json:"server"`

	home string `yaml:"-"`
}

const (
	SortModified = "modified"
	SortTitle    = "title"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

var ValidSortFields = map[string]bool{
	SortModified: true,
	SortTitle:    true,
}

var ValidSortOrders = map[string]bool{
	OrderAsc:  true,
	OrderDesc: true,
}

func newConfig(home string) *Config {
	cfg := &Config{home: home}
	cfg.ensureDefaults()
	return cfg
}

func (cfg *Config) ensureDefaults() {
	if cfg.AutosaveInterval <= 0 {
		cfg.AutosaveInterval = constants.DefaultAutosaveInterval
	}
	cfg.Sort.Field = strings.ToLower(strings.TrimSpace(cfg.Sort.Field))
	if cfg.Sort.Field == "" {
		cfg.Sort.Field = SortModified
	}
	cfg.Sort.Order = strings.ToLower(strings.TrimSpace(cfg.Sort.Order))
	if cfg.Sort.Order == "" {
		cfg.Sort.Order = OrderDesc
	}
	if strings.TrimSpace(cfg.Log.Level) == "" {
		cfg.Log.Level = "info"
	}
	if strings.TrimSpace(cfg.Log.File) == "" && cfg.home != "" {
		cfg.Log.File = filepath.Join(cfg.home, constants.ConfigDir, constants.LogFile)
	}
	if strings.TrimSpace(cfg.Server.Addr) == "" {
		cfg.Server.Addr = constants.DefaultServerAddr
	}
}

// Validate reports the first invalid setting.
func (cfg *Config) Validate() error {
	if !ValidSortFields[cfg.Sort.Field] {
		return fmt.Errorf(
			"invalid sort field: %q. Please choose from '%s' or '%s'",
			cfg.Sort.Field,
			SortModified,
			SortTitle,
		)
	}

	if !ValidSortOrders[cfg.Sort.Order] {
		return fmt.Errorf(
			"invalid sort order: %q. Please choose from '%s' or '%s'",
			cfg.Sort.Order,
			OrderAsc,
			OrderDesc,
		)
	}

	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		return err
	}

	return nil
}

// Load reads the config file under home. An empty file yields defaults.
func Load(home string) (*Config, error) {
	path := GetConfigPath(home)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{home: home}
	if len(strings.TrimSpace(string(data))) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	cfg.ensureDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.syncViper()
	return cfg, nil
}

// syncViper registers the file values as defaults so flags and environment
// variables still take precedence.
func (cfg *Config) syncViper() {
	viper.SetDefault("folder", cfg.Folder)
	viper.SetDefault("autosave_interval", cfg.AutosaveInterval)
	viper.SetDefault("sort.field", cfg.Sort.Field)
	viper.SetDefault("sort.order", cfg.Sort.Order)
	viper.SetDefault("log.level", cfg.Log.Level)
	viper.SetDefault("log.file", cfg.Log.File)
	viper.SetDefault("server.addr", cfg.Server.Addr)
	viper.SetDefault("server.allow_origins", cfg.Server.AllowOrigins)
	viper.SetDefault("server.allow_any_folder", cfg.Server.AllowAnyFolder)
}

func (cfg *Config) GetConfigPath() string {
	if cfg.home != "" {
		return GetConfigPath(cfg.home)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return GetConfigPath(homeDir)
}

// SetFolder records folder as the last selected note folder.
func (cfg *Config) SetFolder(folder string) error {
	abs, err := filepath.Abs(folder)
	if err != nil {
		return err
	}

	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("cannot use folder %q: %w", abs, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("cannot use folder %q: not a directory", abs)
	}

	cfg.Folder = abs
	viper.SetDefault("folder", abs)
	return cfg.Save()
}

func (cfg *Config) ChangeSort(field, order string) error {
	prev := cfg.Sort
	cfg.Sort = SortConfig{
		Field: strings.ToLower(strings.TrimSpace(field)),
		Order: strings.ToLower(strings.TrimSpace(order)),
	}
	if err := cfg.Validate(); err != nil {
		cfg.Sort = prev
		return err
	}

	return cfg.Save()
}

func (cfg *Config) Save() error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	cfg.syncViper()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	configPath := cfg.GetConfigPath()
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}
