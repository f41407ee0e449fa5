package config

import (
	"path/filepath"
	"strings"

	"github.com/Moushudyx/game-sl/internal/errors"
)

// Validation errors for configuration fields.
var (
	// ErrVersionTooLow indicates the version field is below the minimum.
	ErrVersionTooLow = errors.New("version must be >= 1")

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")

	// ErrRelativePath indicates a directory setting is not absolute.
	ErrRelativePath = errors.New("path must be absolute")

	// ErrSharedDir indicates two settings point at the same directory.
	ErrSharedDir = errors.New("directory is shared with another setting")

	// ErrInvalidLogFormat indicates log_format is neither text nor json.
	ErrInvalidLogFormat = errors.New("log_format must be text or json")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version < 1 {
		errs = append(errs, ErrVersionTooLow)
	}

	fields := []struct {
		name     string
		value    string
		required bool
	}{
		{KeyBackupDir, cfg.BackupDir, true},
		{KeyExtraBackupDir, cfg.ExtraBackupDir, true},
		{KeyLibraryPath, cfg.LibraryPath, true},
		{KeyTrashDir, cfg.TrashDir, false},
	}
	for _, f := range fields {
		if f.value == "" && !f.required {
			continue
		}
		if err := validatePath(f.value); err != nil {
			errs = append(errs, &PathError{Field: f.name, Path: f.value, Err: err})
		}
	}

	// Protective snapshots must never be listed as user backups
	if cfg.BackupDir != "" && filepath.Clean(cfg.BackupDir) == filepath.Clean(cfg.ExtraBackupDir) {
		errs = append(errs, &PathError{Field: KeyExtraBackupDir, Path: cfg.ExtraBackupDir, Err: ErrSharedDir})
	}

	switch strings.ToLower(cfg.LogFormat) {
	case "", "text", "json":
	default:
		errs = append(errs, ErrInvalidLogFormat)
	}

	return errs
}

// validatePath checks if a path string is well-formed and absolute.
// It does not check if the path exists.
func validatePath(path string) error {
	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}

	cleaned := filepath.Clean(path)
	if cleaned == "" || cleaned == "." {
		return ErrInvalidPath
	}
	if !filepath.IsAbs(cleaned) {
		return ErrRelativePath
	}

	return nil
}

// PathError represents an error for a specific path field.
type PathError struct {
	Field string
	Path  string
	Err   error
}

func (e *PathError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Path
}

func (e *PathError) Unwrap() error {
	return e.Err
}
