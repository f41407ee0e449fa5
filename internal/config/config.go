// Package config provides configuration management for gamesl using Viper.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/Moushudyx/game-sl/internal/errors"
	"github.com/Moushudyx/game-sl/internal/paths"
	"github.com/Moushudyx/game-sl/pkg/fileutil"
)

// EnvPrefix is the prefix for environment variable overrides (GAMESL_BACKUP_DIR, ...).
const EnvPrefix = "GAMESL"

// Setting keys.
const (
	KeyVersion        = "version"
	KeyBackupDir      = "backup_dir"
	KeyExtraBackupDir = "extra_backup_dir"
	KeyLibraryPath    = "library_path"
	KeyTrashDir       = "trash_dir"
	KeyLogFormat      = "log_format"
)

// Config represents the tool settings file.
type Config struct {
	Version        int    `mapstructure:"version" yaml:"version" json:"version" toml:"version"`
	BackupDir      string `mapstructure:"backup_dir" yaml:"backup_dir" json:"backup_dir" toml:"backup_dir"`
	ExtraBackupDir string `mapstructure:"extra_backup_dir" yaml:"extra_backup_dir" json:"extra_backup_dir" toml:"extra_backup_dir"`
	LibraryPath    string `mapstructure:"library_path" yaml:"library_path" json:"library_path" toml:"library_path"`
	// TrashDir, when set, replaces the system recycle bin.
	TrashDir  string `mapstructure:"trash_dir" yaml:"trash_dir,omitempty" json:"trash_dir,omitempty" toml:"trash_dir,omitempty"`
	LogFormat string `mapstructure:"log_format" yaml:"log_format" json:"log_format" toml:"log_format"`
}

// Default returns the settings used when no file or override is present.
func Default() *Config {
	return &Config{
		Version:        1,
		BackupDir:      paths.BackupDir(),
		ExtraBackupDir: paths.ExtraBackupDir(),
		LibraryPath:    paths.LibraryFile(),
		LogFormat:      "text",
	}
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir())

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	def := Default()
	viper.SetDefault(KeyVersion, def.Version)
	viper.SetDefault(KeyBackupDir, def.BackupDir)
	viper.SetDefault(KeyExtraBackupDir, def.ExtraBackupDir)
	viper.SetDefault(KeyLibraryPath, def.LibraryPath)
	viper.SetDefault(KeyTrashDir, "")
	viper.SetDefault(KeyLogFormat, def.LogFormat)
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations.
// Returns the loaded configuration or default values if no file is found (when path is empty).
// The result is validated; the first validation error is returned marked ErrInvalidConfig.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
			// Implicit load falls back to defaults
		case errors.As(err, &notFound), os.IsNotExist(err):
			return nil, errors.WithKind(errors.Wrapf(err, "config file not found at %s", path), errors.KindNotFound)
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.MarkAs(errors.Wrap(errs[0], "validating config"), errors.ErrInvalidConfig, errors.KindInvalidInput)
	}

	return &cfg, nil
}

// Save writes cfg as YAML to path, creating the parent directory.
func Save(cfg *Config, path string) error {
	if errs := Validate(cfg); len(errs) > 0 {
		return errors.MarkAs(errors.Wrap(errs[0], "validating config"), errors.ErrInvalidConfig, errors.KindInvalidInput)
	}
	if err := paths.EnsureDir(filepath.Dir(path), 0); err != nil {
		return err
	}
	if err := fileutil.AtomicWriteYAML(path, cfg); err != nil {
		return errors.Wrapf(err, "writing config %s", path)
	}
	return nil
}

// ConfigFileUsed returns the path of the file Viper loaded, or "" if none.
func ConfigFileUsed() string {
	return viper.ConfigFileUsed()
}
