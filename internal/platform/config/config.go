package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	StoreSQLite = "sqlite"
	StoreBadger = "badger"
	StoreJSON   = "json"
	StoreMemory = "memory"
)

type Config struct {
	DataDir      string            `yaml:"data_dir" validate:"required"`
	Store        string            `yaml:"store" validate:"oneof=sqlite badger json memory"`
	Policy       string            `yaml:"policy" validate:"oneof=header-blocks numbered"`
	FetchTimeout time.Duration     `yaml:"fetch_timeout" validate:"gt=0"`
	Watch        bool              `yaml:"watch"`
	ExportDir    string            `yaml:"export_dir"`
	DefaultBook  string            `yaml:"default_book"`
	Books        map[string]string `yaml:"books" validate:"dive,keys,required,endkeys,required"`
	Log          LogConfig         `yaml:"log"`
}

type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
	File   string `yaml:"file"`
}

// Overrides carries command-line values that win over the file.
type Overrides struct {
	DataDir string
	Store   string
	Policy  string
}

func Default() Config {
	base, err := os.UserConfigDir()
	if err != nil || base == "" {
		base = "."
	}
	return Config{
		DataDir:      filepath.Join(base, "readtrack"),
		Store:        StoreSQLite,
		Policy:       "header-blocks",
		FetchTimeout: 15 * time.Second,
		Books:        map[string]string{},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultPath is where Load looks when no explicit path is given.
func DefaultPath() string {
	base, err := os.UserConfigDir()
	if err != nil || base == "" {
		return ""
	}
	return filepath.Join(base, "readtrack", "config.yaml")
}

// Load layers defaults, the YAML file at path and overrides, then validates.
// A missing file is only an error when path was given explicitly.
func Load(path string, overrides Overrides) (Config, error) {
	cfg := Default()
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return Config{}, fmt.Errorf("decode config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && !explicit:
		default:
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}
	if overrides.DataDir != "" {
		cfg.DataDir = overrides.DataDir
	}
	if overrides.Store != "" {
		cfg.Store = overrides.Store
	}
	if overrides.Policy != "" {
		cfg.Policy = overrides.Policy
	}
	if cfg.Books == nil {
		cfg.Books = map[string]string{}
	}
	if cfg.ExportDir == "" {
		cfg.ExportDir = "."
	}
	if cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(cfg.DataDir, "readtrack.log")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// StorePath is the on-disk location of the selected progress backend.
func (c Config) StorePath() string {
	switch c.Store {
	case StoreBadger:
		return filepath.Join(c.DataDir, "badger")
	case StoreJSON:
		return filepath.Join(c.DataDir, "progress.json")
	case StoreMemory:
		return ""
	default:
		return filepath.Join(c.DataDir, "readtrack.db")
	}
}
