package backup

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Moushudyx/game-sl/internal/errors"
	"github.com/Moushudyx/game-sl/internal/logging"
	"github.com/Moushudyx/game-sl/internal/paths"
	"github.com/Moushudyx/game-sl/pkg/fileutil"
)

// Manager creates, lists, annotates and restores save-data archives.
// It is not safe for concurrent use.
type Manager struct {
	backupDir      string
	extraBackupDir string
	resolver       PathResolver
	store          ConfigStore
	trash          Trasher
	now            func() time.Time
	logger         *slog.Logger

	// extract is swapped in tests to simulate extraction failures.
	extract func(pkg, destDir string) error
}

// Option configures a Manager.
type Option func(*Manager)

// WithBackupDir sets the directory holding user backups.
func WithBackupDir(dir string) Option {
	return func(m *Manager) {
		m.backupDir = dir
	}
}

// WithExtraBackupDir sets the directory holding protective snapshots.
func WithExtraBackupDir(dir string) Option {
	return func(m *Manager) {
		m.extraBackupDir = dir
	}
}

// WithResolver sets the save-path template resolver.
func WithResolver(r PathResolver) Option {
	return func(m *Manager) {
		m.resolver = r
	}
}

// WithStore sets the game library store.
func WithStore(s ConfigStore) Option {
	return func(m *Manager) {
		m.store = s
	}
}

// WithTrash sets where restore moves the replaced save directory.
func WithTrash(t Trasher) Option {
	return func(m *Manager) {
		m.trash = t
	}
}

// WithClock sets the time source used for archive names.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithLogger sets the logger. A nil logger discards output.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = l
	}
}

// NewManager creates a new Manager with the given options.
// The resolver, store and trash default to nothing and must be supplied for
// the operations that need them.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		backupDir:      paths.BackupDir(),
		extraBackupDir: paths.ExtraBackupDir(),
		now:            time.Now,
		extract:        Extract,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = logging.NewDiscard()
	}
	return m
}

// BackupDir returns the user backup directory.
func (m *Manager) BackupDir() string {
	return m.backupDir
}

// ExtraBackupDir returns the protective snapshot directory.
func (m *Manager) ExtraBackupDir() string {
	return m.extraBackupDir
}

// Backup archives the game's save directory into the backup directory.
// The archive is written under a temporary name and renamed once complete,
// so a failed backup leaves nothing behind. An existing archive with the
// same name is never replaced.
func (m *Manager) Backup(req BackupRequest) (*BackupResult, error) {
	safe, err := safeName(req.Name)
	if err != nil {
		return nil, err
	}
	if m.resolver == nil || m.store == nil {
		return nil, errors.New("backup requires a resolver and a store")
	}

	src, err := m.resolver.Resolve(req.PathTemplate, req.UserContext)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving save path for %q", req.Name)
	}
	info, err := os.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundf("save directory %s does not exist", src)
		}
		return nil, errors.IOf(err, "reading save directory %s", src)
	}
	if !info.IsDir() {
		return nil, errors.InvalidInputf("save path %s is not a directory", src)
	}

	if err := paths.EnsureDir(m.backupDir, 0); err != nil {
		return nil, err
	}

	now := m.now()
	fileName := BackupStem(safe, now) + ArchiveExt
	dest := filepath.Join(m.backupDir, fileName)

	stats, err := m.archiveAtomic(src, dest)
	if err != nil {
		return nil, err
	}
	m.logger.Info("backup created",
		"game", req.Name,
		"archive", dest,
		"dirs", stats.Dirs,
		"files", stats.Files,
		"bytes", stats.Bytes,
	)

	result := &BackupResult{
		FileName:  fileName,
		FilePath:  dest,
		Timestamp: now,
	}

	if strings.TrimSpace(req.Remark) != "" {
		remarkPath := RemarkPath(dest)
		if err := fileutil.AtomicWriteFile(remarkPath, []byte(req.Remark), 0o644); err != nil {
			return nil, errors.Wrapf(err, "writing remark for %s", fileName)
		}
		result.RemarkPath = remarkPath
	}

	lib, err := m.store.RecordTimestamp(req.Name, now.UnixMilli())
	if err != nil {
		return nil, errors.Wrapf(err, "recording last save for %q", req.Name)
	}
	result.Library = lib

	return result, nil
}

// archiveAtomic archives src into dest through a hidden partial file.
// It refuses to replace an existing dest.
func (m *Manager) archiveAtomic(src, dest string) (ArchiveStats, error) {
	if _, err := os.Lstat(dest); err == nil {
		return ArchiveStats{}, errors.Wrapf(ErrArchiveExists, "%s", filepath.Base(dest))
	}
	root, err := sourceRoot(src)
	if err != nil {
		return ArchiveStats{}, err
	}
	if root != src {
		m.logger.Debug("following symlinked source", "source", src, "target", root)
	}

	var stats ArchiveStats
	err = fileutil.AtomicWriteFunc(dest, 0o644, func(w io.Writer) error {
		var werr error
		stats, werr = writeArchive(w, root)
		return werr
	})
	if err != nil {
		return stats, errors.Wrapf(err, "archiving %s", src)
	}
	for _, name := range stats.Skipped {
		m.logger.Debug("skipped special file", "source", src, "entry", name)
	}
	return stats, nil
}

// safeName sanitizes name and rejects names that sanitize to nothing.
func safeName(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", errors.ErrMissingName
	}
	safe := Sanitize(name)
	if safe == "" {
		return "", errors.InvalidInputf("name %q has no usable characters", name)
	}
	return safe, nil
}
