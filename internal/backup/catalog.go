package backup

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/Moushudyx/game-sl/internal/errors"
	"github.com/Moushudyx/game-sl/pkg/fileutil"
)

// List returns the user backups of the named game, newest first.
// Archives whose time cannot be determined are listed last in file-name
// order. A missing or unreadable backup directory yields an empty list.
func (m *Manager) List(name string) ([]Archive, error) {
	safe, err := safeName(name)
	if err != nil {
		return nil, err
	}
	return m.scan(m.backupDir, backupPrefix(safe)), nil
}

// ListProtective returns the protective snapshots of the named game, newest first.
func (m *Manager) ListProtective(name string) ([]Archive, error) {
	safe, err := safeName(name)
	if err != nil {
		return nil, err
	}
	return m.scan(m.extraBackupDir, extraBackupPrefix(safe)), nil
}

func (m *Manager) scan(dir, prefix string) []Archive {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			m.logger.Warn("cannot read backup directory", "dir", dir, "error", err)
		}
		return []Archive{}
	}

	archives := make([]Archive, 0, len(entries))
	for _, entry := range entries {
		fileName := entry.Name()
		if !entry.Type().IsRegular() || !hasListableExt(fileName) || !strings.HasPrefix(fileName, prefix) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}

		path := filepath.Join(dir, fileName)
		archives = append(archives, Archive{
			FileName:  fileName,
			FilePath:  path,
			Timestamp: archiveTimestamp(fileName, info.ModTime()),
			Size:      info.Size(),
			Remark:    readRemark(path),
		})
	}

	sortArchives(archives)
	return archives
}

// archiveTimestamp prefers the time encoded in the name, then modTime.
func archiveTimestamp(fileName string, modTime time.Time) Timestamp {
	if t, ok := DecodeTimestamp(fileName); ok {
		return Timestamp{Time: t, Source: TimeSourceName}
	}
	if !modTime.IsZero() {
		return Timestamp{Time: modTime, Source: TimeSourceModTime}
	}
	return Timestamp{Source: TimeSourceUnknown}
}

// sortArchives orders known times newest first, then unknown ones.
// Ties keep directory order.
func sortArchives(archives []Archive) {
	slices.SortStableFunc(archives, func(a, b Archive) int {
		switch {
		case a.Timestamp.Known() && !b.Timestamp.Known():
			return -1
		case !a.Timestamp.Known() && b.Timestamp.Known():
			return 1
		case !a.Timestamp.Known():
			return 0
		}
		return b.Timestamp.Time.Compare(a.Timestamp.Time)
	})
}

// readRemark returns the sidecar text of an archive, or "" when it is
// missing or unreadable.
func readRemark(archivePath string) string {
	data, err := fileutil.ReadFileLimit(RemarkPath(archivePath), fileutil.MaxRemarkSize)
	if err != nil {
		return ""
	}
	return string(data)
}

// SetAnnotation writes the remark sidecar of a user backup. Blank text
// removes the sidecar; removing an absent sidecar succeeds.
func (m *Manager) SetAnnotation(name, fileName, text string) error {
	safe, err := safeName(name)
	if err != nil {
		return err
	}
	if err := checkBareName(fileName); err != nil {
		return err
	}
	if !strings.HasPrefix(fileName, backupPrefix(safe)) {
		return errors.Wrapf(ErrNameMismatch, "%q is not a backup of %q", fileName, name)
	}

	archivePath := m.ArchivePath(fileName)
	if _, err := os.Stat(archivePath); err != nil {
		if os.IsNotExist(err) {
			return errors.NotFoundf("backup %s does not exist", fileName)
		}
		return errors.IOf(err, "reading backup %s", fileName)
	}

	remarkPath := RemarkPath(archivePath)
	if strings.TrimSpace(text) == "" {
		if err := os.Remove(remarkPath); err != nil && !os.IsNotExist(err) {
			return errors.IOf(err, "removing remark %s", remarkPath)
		}
		m.logger.Debug("remark cleared", "archive", fileName)
		return nil
	}

	if err := fileutil.AtomicWriteFile(remarkPath, []byte(text), 0o644); err != nil {
		return errors.Wrapf(err, "writing remark %s", remarkPath)
	}
	m.logger.Debug("remark written", "archive", fileName)
	return nil
}

// Annotation returns the remark of a user backup, "" when there is none.
func (m *Manager) Annotation(fileName string) string {
	return readRemark(m.ArchivePath(fileName))
}
