package backup

import (
	"path/filepath"
	"strings"

	"github.com/Moushudyx/game-sl/internal/errors"
)

// backupPrefix is the file-name prefix of a game's user backups.
func backupPrefix(safe string) string {
	return safe + strings.TrimSuffix(BackupMarker, "-")
}

// extraBackupPrefix is the file-name prefix of a game's protective snapshots.
func extraBackupPrefix(safe string) string {
	return safe + strings.TrimSuffix(ExtraBackupMarker, "-")
}

// ArchivePath returns the full path of a user backup file.
func (m *Manager) ArchivePath(fileName string) string {
	return filepath.Join(m.backupDir, fileName)
}

// checkBareName rejects file names carrying a directory component.
func checkBareName(fileName string) error {
	if fileName == "" || fileName != filepath.Base(fileName) || strings.ContainsAny(fileName, `/\`) {
		return errors.Wrapf(ErrNameMismatch, "%q is not a bare file name", fileName)
	}
	return nil
}
