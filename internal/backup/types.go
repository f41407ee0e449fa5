package backup

import (
	"time"

	"github.com/Moushudyx/game-sl/internal/config"
	"github.com/Moushudyx/game-sl/internal/errors"
)

// Sentinel errors for backup operations.
var (
	// ErrArchiveExists indicates an archive with the generated name is already present.
	// Archives are never overwritten.
	ErrArchiveExists = errors.NewSentinel(errors.KindInvalidInput, "archive already exists")

	// ErrNameMismatch indicates a file name does not belong to the requested game.
	ErrNameMismatch = errors.NewSentinel(errors.KindInvalidInput, "file name does not match")

	// ErrUnsafeEntry indicates an archive entry would escape the extraction directory.
	ErrUnsafeEntry = errors.NewSentinel(errors.KindInvalidInput, "unsafe archive entry")

	// ErrUnsupportedFormat indicates the archive format cannot be restored.
	ErrUnsupportedFormat = errors.NewSentinel(errors.KindPolicyViolation, "unsupported archive format")
)

// PathResolver expands a save-path template into an absolute directory.
type PathResolver interface {
	Resolve(template, userContext string) (string, error)
}

// ConfigStore is the slice of the game library the engine reads and writes.
type ConfigStore interface {
	// ReadPolicyFlag returns the boolean setting key, or def when unset.
	ReadPolicyFlag(key string, def bool) bool
	// RecordTimestamp stores the last-save time of a game in epoch milliseconds.
	RecordTimestamp(name string, millis int64) (*config.Library, error)
}

// Trasher moves a path somewhere recoverable instead of deleting it.
type Trasher interface {
	MoveToTrash(path string) error
}

// TimeSource says where an archive's timestamp came from.
type TimeSource int

// Timestamp sources, in order of preference.
const (
	TimeSourceUnknown TimeSource = iota
	TimeSourceName
	TimeSourceModTime
)

// String returns the wire name of the source.
func (s TimeSource) String() string {
	switch s {
	case TimeSourceName:
		return "file-name"
	case TimeSourceModTime:
		return "modified-time"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s TimeSource) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Timestamp is an archive time together with its source.
// Time is meaningful only when Source is not TimeSourceUnknown.
type Timestamp struct {
	Time   time.Time  `json:"time,omitzero"`
	Source TimeSource `json:"source"`
}

// Known reports whether the timestamp carries a usable time.
func (t Timestamp) Known() bool {
	return t.Source != TimeSourceUnknown
}

// Archive describes one backup package on disk.
type Archive struct {
	FileName  string    `json:"file_name"`
	FilePath  string    `json:"file_path"`
	Timestamp Timestamp `json:"timestamp"`
	Size      int64     `json:"size"`
	Remark    string    `json:"remark,omitempty"`
}

// ArchiveStats summarises what Archive wrote.
type ArchiveStats struct {
	Dirs    int
	Files   int
	Bytes   int64
	Skipped []string
}

// BackupRequest describes a backup to create.
type BackupRequest struct {
	// Name is the game name as stored in the library.
	Name string
	// PathTemplate is the save directory, possibly with placeholders.
	PathTemplate string
	// UserContext fills {SteamUID}.
	UserContext string
	// Remark is written to the .txt sidecar when not blank.
	Remark string
}

// BackupResult describes a created backup.
type BackupResult struct {
	FileName   string          `json:"file_name"`
	FilePath   string          `json:"file_path"`
	Timestamp  time.Time       `json:"timestamp"`
	RemarkPath string          `json:"remark_path,omitempty"`
	Library    *config.Library `json:"-"`
}

// RestoreRequest describes a restore to perform.
type RestoreRequest struct {
	Name         string
	PathTemplate string
	// ArchivePath is the .zip to restore from.
	ArchivePath string
	UserContext string
}

// RestoreOutcome describes a successful restore.
type RestoreOutcome struct {
	TargetPath  string `json:"target_path"`
	ArchivePath string `json:"archive_path"`
	// ExtraBackupPath is the protective snapshot taken first, empty when none was made.
	ExtraBackupPath string          `json:"extra_backup_path,omitempty"`
	Timestamp       time.Time       `json:"timestamp"`
	Library         *config.Library `json:"-"`
}
