package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"

	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/domain"
)

// AppConfig is the content of config.toml.
type AppConfig struct {
	Server   ServerConfig               `toml:"server"`
	Data     DataConfig                 `toml:"data"`
	Database DatabaseConfig             `toml:"database"`
	Import   ImportConfig               `toml:"import"`
	Log      LogConfig                  `toml:"log"`
	Domains  map[string]domain.Override `toml:"domains"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port    int  `toml:"port" validate:"min=1,max=65535"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig locates the data directory, relative to the executable.
type DataConfig struct {
	DataDir string `toml:"data_dir" validate:"required"`
}

// DatabaseConfig selects the persister. An empty sqlite DSN means
// <data_dir>/rtc.db.
type DatabaseConfig struct {
	Driver string `toml:"driver" validate:"oneof=sqlite postgres"`
	DSN    string `toml:"dsn" validate:"required_if=Driver postgres"`
}

// ImportConfig tunes uploads and number parsing.
type ImportConfig struct {
	MaxUploadMB  int  `toml:"max_upload_mb" validate:"min=1"`
	DecimalComma bool `toml:"decimal_comma"`
}

// LogConfig configures zerolog.
type LogConfig struct {
	Level  string `toml:"level" validate:"oneof=trace debug info warn error"`
	Format string `toml:"format" validate:"oneof=console json"`
}

// LoadConfigInfo reports which values came from the file.
type LoadConfigInfo struct {
	Path          string
	PortSpecified bool
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server:   ServerConfig{Port: 20269},
		Data:     DataConfig{DataDir: "data"},
		Database: DatabaseConfig{Driver: "sqlite"},
		Import:   ImportConfig{MaxUploadMB: 20},
		Log:      LogConfig{Level: "info", Format: "console"},
	}
}

var validate = validator.New()

// Validate checks field constraints.
func (c *AppConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}
	server, ok := raw["server"].(map[string]any)
	if !ok {
		return false
	}
	_, ok = server["port"]
	return ok
}

// GetExeDir returns the directory of the running executable.
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

func exeDirOrDot() string {
	dir, err := GetExeDir()
	if err != nil {
		return "."
	}
	return dir
}

// LoadFile reads path over the defaults. A missing file yields the defaults.
// Environment variables RTC_DATA_DIR, RTC_DATABASE_DRIVER and RTC_DATABASE_DSN
// win over both.
func LoadFile(path string) (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{Path: path}
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		info.PortSpecified = isPortSpecifiedInToml(data)
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, info, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, info, err
	}

	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, info, err
	}
	return cfg, info, nil
}

func applyEnv(cfg *AppConfig) {
	if v := os.Getenv("RTC_DATA_DIR"); v != "" {
		cfg.Data.DataDir = v
	}
	if v := os.Getenv("RTC_DATABASE_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("RTC_DATABASE_DSN"); v != "" {
		cfg.Database.DSN = v
	}
}

// LoadConfigWithInfo loads config.toml next to the executable.
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	return LoadFile(filepath.Join(exeDirOrDot(), "config.toml"))
}

// DataDir resolves the data directory; relative paths hang off the executable.
func DataDir(cfg *AppConfig) string {
	if filepath.IsAbs(cfg.Data.DataDir) {
		return cfg.Data.DataDir
	}
	return filepath.Join(exeDirOrDot(), cfg.Data.DataDir)
}

// EnsureDataDir creates the data directory and its uploads subdirectory.
func EnsureDataDir(cfg *AppConfig) (string, error) {
	dir := DataDir(cfg)
	if err := os.MkdirAll(filepath.Join(dir, "uploads"), 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

// SQLitePath is the database file used by the sqlite driver.
func SQLitePath(cfg *AppConfig) string {
	if cfg.Database.DSN != "" {
		return cfg.Database.DSN
	}
	return filepath.Join(DataDir(cfg), "rtc.db")
}

// Registry builds the domain registry with [domains.*] overrides applied.
func (c *AppConfig) Registry() (*domain.Registry, error) {
	return domain.DefaultRegistry(c.Domains)
}

// MaxUploadBytes is the upload limit in bytes.
func (c *AppConfig) MaxUploadBytes() int64 {
	return int64(c.Import.MaxUploadMB) << 20
}
