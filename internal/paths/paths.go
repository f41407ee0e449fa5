package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/Moushudyx/game-sl/internal/errors"
)

// AppName is the directory name gamesl uses under the XDG base directories.
const AppName = "game-sl"

// Directory and file names inside the work directory.
const (
	BackupDirName      = "backup"
	ExtraBackupDirName = "extra-backup"
	LibraryFileName    = "library.json"
	ConfigFileName     = "config.yaml"
)

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")
)

// DefaultDirPerm is the default permission for newly created directories.
const DefaultDirPerm = 0o755

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	if err := os.MkdirAll(path, perm); err != nil {
		return errors.IOf(err, "creating directory %s", path)
	}
	return nil
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", errors.WithKind(errors.Wrap(ErrHomeDirNotFound, "resolving home"), errors.KindNotFound)
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// DataHome returns the XDG data home directory.
// On Linux: ~/.local/share
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func DataHome() string {
	return xdg.DataHome
}

// ConfigDir returns <ConfigHome>/game-sl.
func ConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// ConfigFile returns the default settings file path.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// WorkDir returns <DataHome>/game-sl.
func WorkDir() string {
	return filepath.Join(DataHome(), AppName)
}

// BackupDir returns the default directory for user backups.
func BackupDir() string {
	return filepath.Join(WorkDir(), BackupDirName)
}

// ExtraBackupDir returns the default directory for protective snapshots.
func ExtraBackupDir() string {
	return filepath.Join(WorkDir(), ExtraBackupDirName)
}

// LibraryFile returns the default game library path.
func LibraryFile() string {
	return filepath.Join(WorkDir(), LibraryFileName)
}

// IsWithin reports whether target is base or lies below it.
// Both paths are cleaned; no symlinks are resolved.
func IsWithin(base, target string) bool {
	rel, err := filepath.Rel(filepath.Clean(base), filepath.Clean(target))
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !startsWithParent(rel)
}

func startsWithParent(rel string) bool {
	return len(rel) >= 3 && rel[:2] == ".." && os.IsPathSeparator(rel[2])
}

// IsRoot reports whether path is a filesystem root such as "/" or `C:\`.
func IsRoot(path string) bool {
	clean := filepath.Clean(path)
	return filepath.Dir(clean) == clean
}
