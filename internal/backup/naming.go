package backup

import (
	"path/filepath"
	"strings"
	"time"
)

// Name markers and formats shared by backups and protective snapshots.
const (
	BackupMarker      = "-Backup-"
	ExtraBackupMarker = "-ExtraBackup-"
	ArchiveExt        = ".zip"
	RemarkExt         = ".txt"

	// StampLayout is the local wall-clock layout embedded in archive names.
	StampLayout = "20060102-150405"
)

// listableExts are the archive extensions the catalog reports. ".7z" is
// listed but cannot be restored.
var listableExts = []string{".zip", ".7z"}

var reservedChars = strings.NewReplacer(
	"<", "_", ">", "_", ":", "_", `"`, "_", "|", "_",
	"?", "_", "*", "_", "/", "_", `\`, "_",
)

// Sanitize makes name safe for use as a file-name prefix on every platform.
// Reserved characters become '_', surrounding whitespace and dots are trimmed.
// Sanitize(Sanitize(x)) == Sanitize(x).
func Sanitize(name string) string {
	s := name
	for {
		next := reservedChars.Replace(s)
		next = strings.TrimSpace(next)
		next = strings.Trim(next, ".")
		if next == s {
			return s
		}
		s = next
	}
}

// BackupStem returns "{safe}-Backup-{YYYYMMDD-HHMMSS}" for t in local time.
func BackupStem(safe string, t time.Time) string {
	return safe + BackupMarker + t.In(time.Local).Format(StampLayout)
}

// ExtraBackupStem returns "{safe}-ExtraBackup-{YYYYMMDD-HHMMSS}" for t in local time.
func ExtraBackupStem(safe string, t time.Time) string {
	return safe + ExtraBackupMarker + t.In(time.Local).Format(StampLayout)
}

// RemarkPath returns the sidecar path for an archive path.
func RemarkPath(archivePath string) string {
	return strings.TrimSuffix(archivePath, filepath.Ext(archivePath)) + RemarkExt
}

// DecodeTimestamp recovers the creation time embedded in an archive file name.
// It returns false when no marker is present, the stamp is malformed, or the
// stamp names a local wall time that is skipped or repeated by a DST change.
func DecodeTimestamp(fileName string) (time.Time, bool) {
	return decodeTimestampIn(fileName, time.Local)
}

func decodeTimestampIn(fileName string, loc *time.Location) (time.Time, bool) {
	segment, ok := stampSegment(fileName, BackupMarker)
	if !ok {
		segment, ok = stampSegment(fileName, ExtraBackupMarker)
	}
	if !ok {
		return time.Time{}, false
	}

	if i := strings.IndexByte(segment, '.'); i >= 0 {
		segment = segment[:i]
	}

	// Parsing in UTC validates the fields without zone adjustments
	wall, err := time.Parse(StampLayout, segment)
	if err != nil {
		return time.Time{}, false
	}
	return uniqueLocal(wall, loc)
}

// stampSegment returns the text between the first marker and the next one.
func stampSegment(fileName, marker string) (string, bool) {
	parts := strings.Split(fileName, marker)
	if len(parts) < 2 {
		return "", false
	}
	return parts[1], true
}

// uniqueLocal maps the wall-clock fields of wall onto loc. It fails when the
// wall time does not exist in loc or exists twice.
func uniqueLocal(wall time.Time, loc *time.Location) (time.Time, bool) {
	t := time.Date(wall.Year(), wall.Month(), wall.Day(), wall.Hour(), wall.Minute(), wall.Second(), 0, loc)

	_, before := t.Add(-24 * time.Hour).Zone()
	_, after := t.Add(24 * time.Hour).Zone()
	offsets := []int{before}
	if after != before {
		offsets = append(offsets, after)
	}

	var match time.Time
	matches := 0
	for _, off := range offsets {
		candidate := wall.Add(-time.Duration(off) * time.Second).In(loc)
		if sameWall(candidate, wall) {
			match = candidate
			matches++
		}
	}
	if matches != 1 {
		return time.Time{}, false
	}
	return match, true
}

func sameWall(t, wall time.Time) bool {
	return t.Year() == wall.Year() && t.Month() == wall.Month() && t.Day() == wall.Day() &&
		t.Hour() == wall.Hour() && t.Minute() == wall.Minute() && t.Second() == wall.Second()
}

// hasListableExt reports whether name ends in a catalogued archive extension.
func hasListableExt(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range listableExts {
		if ext == e {
			return true
		}
	}
	return false
}

// isRestorable reports whether name has the one extension restore accepts.
func isRestorable(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ArchiveExt)
}
