package backup

import (
	"os"
	"path/filepath"
	"time"

	"github.com/Moushudyx/game-sl/internal/config"
	"github.com/Moushudyx/game-sl/internal/errors"
	"github.com/Moushudyx/game-sl/internal/paths"
	"github.com/Moushudyx/game-sl/pkg/fileutil"
)

// Stage identifies a step of a restore.
type Stage int

// Restore stages in execution order.
const (
	StageCheck Stage = iota
	StageProtectiveBackup
	StageRemove
	StageExtract
	StageFinalize
)

// Code returns the stage code used in error messages.
func (s Stage) Code() string {
	switch s {
	case StageCheck:
		return "CHECK"
	case StageProtectiveBackup:
		return "EXTRA_BACKUP"
	case StageRemove:
		return "DELETE"
	case StageExtract:
		return "EXTRACT"
	case StageFinalize:
		return "UPDATE_CONFIG"
	default:
		return "UNKNOWN"
	}
}

func (s Stage) String() string {
	switch s {
	case StageCheck:
		return "check"
	case StageProtectiveBackup:
		return "protective-backup"
	case StageRemove:
		return "remove"
	case StageExtract:
		return "extract"
	case StageFinalize:
		return "finalize"
	default:
		return "unknown"
	}
}

// RestoreError reports the stage at which a restore failed.
// Its message has the form "[CODE] detail".
type RestoreError struct {
	Stage Stage
	Err   error
}

func (e *RestoreError) Error() string {
	return "[" + e.Stage.Code() + "] " + e.Err.Error()
}

func (e *RestoreError) Unwrap() error {
	return e.Err
}

// StageOf returns the stage of a restore failure.
func StageOf(err error) (Stage, bool) {
	var rerr *RestoreError
	if errors.As(err, &rerr) {
		return rerr.Stage, true
	}
	return 0, false
}

// restoreRun carries state between stages.
type restoreRun struct {
	req          RestoreRequest
	safe         string
	archive      string
	target       string
	targetExists bool
	snapshot     string
	timestamp    time.Time
	lib          *config.Library
}

type restoreStep struct {
	stage Stage
	run   func(*restoreRun) error
}

// restoreSteps is the fixed restore pipeline. The protective snapshot is
// always taken before the target is trashed, and the target is always
// trashed before extraction.
func (m *Manager) restoreSteps() []restoreStep {
	return []restoreStep{
		{StageCheck, m.checkRestore},
		{StageProtectiveBackup, m.protectTarget},
		{StageRemove, m.removeTarget},
		{StageExtract, m.extractArchive},
		{StageFinalize, m.finalizeRestore},
	}
}

// Restore replaces the game's save directory with the contents of an archive.
//
// The current save directory is first archived into the extra-backup
// directory (when the restoreExtraBackup setting allows it), then moved to
// the trash, and the archive is extracted in its place. If extraction fails
// the partial directory is removed and the protective snapshot, if any, is
// extracted back. Every failure is a *RestoreError.
func (m *Manager) Restore(req RestoreRequest) (*RestoreOutcome, error) {
	run := &restoreRun{req: req}

	for _, step := range m.restoreSteps() {
		m.logger.Debug("restore stage", "game", req.Name, "stage", step.stage.String())
		if err := step.run(run); err != nil {
			m.logger.Error("restore failed", "game", req.Name, "stage", step.stage.String(), "error", err)
			return nil, &RestoreError{Stage: step.stage, Err: err}
		}
	}

	m.logger.Info("restore complete", "game", req.Name, "archive", run.archive, "target", run.target)
	return &RestoreOutcome{
		TargetPath:      run.target,
		ArchivePath:     run.archive,
		ExtraBackupPath: run.snapshot,
		Timestamp:       run.timestamp,
		Library:         run.lib,
	}, nil
}

func (m *Manager) checkRestore(run *restoreRun) error {
	safe, err := safeName(run.req.Name)
	if err != nil {
		return err
	}
	run.safe = safe

	if m.resolver == nil || m.store == nil || m.trash == nil {
		return errors.New("restore requires a resolver, a store and a trash")
	}

	archive, err := filepath.Abs(run.req.ArchivePath)
	if err != nil {
		return errors.InvalidInputf("invalid archive path %q", run.req.ArchivePath)
	}
	info, err := os.Stat(archive)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NotFoundf("archive %s does not exist", archive)
		}
		return errors.IOf(err, "reading archive %s", archive)
	}
	if !info.Mode().IsRegular() {
		return errors.InvalidInputf("archive %s is not a regular file", archive)
	}
	if !isRestorable(archive) {
		return errors.Wrapf(ErrUnsupportedFormat, "cannot restore %s, only %s archives are supported", filepath.Base(archive), ArchiveExt)
	}
	run.archive = archive

	target, err := m.resolver.Resolve(run.req.PathTemplate, run.req.UserContext)
	if err != nil {
		return errors.Wrapf(err, "resolving save path for %q", run.req.Name)
	}
	if paths.IsRoot(target) {
		return errors.InvalidInputf("refusing to replace filesystem root %s", target)
	}
	if paths.IsWithin(target, archive) {
		return errors.InvalidInputf("archive %s is inside the save directory %s", archive, target)
	}
	run.target = target

	if _, err := os.Lstat(target); err == nil {
		run.targetExists = true
	} else if !os.IsNotExist(err) {
		return errors.IOf(err, "reading save directory %s", target)
	}
	return nil
}

func (m *Manager) protectTarget(run *restoreRun) error {
	if !run.targetExists {
		m.logger.Debug("nothing to protect", "target", run.target)
		return nil
	}
	if !m.store.ReadPolicyFlag(config.SettingRestoreExtraBackup, true) {
		m.logger.Debug("protective backup disabled", "game", run.req.Name)
		return nil
	}

	if err := paths.EnsureDir(m.extraBackupDir, 0); err != nil {
		return err
	}

	snapshot := filepath.Join(m.extraBackupDir, ExtraBackupStem(run.safe, m.now())+ArchiveExt)
	if _, err := m.archiveAtomic(run.target, snapshot); err != nil {
		return errors.Wrapf(err, "creating protective backup of %s", run.target)
	}
	run.snapshot = snapshot

	note := "Created automatically before restoring " + filepath.Base(run.archive) + "\n"
	if err := fileutil.AtomicWriteFile(RemarkPath(snapshot), []byte(note), 0o644); err != nil {
		m.logger.Warn("cannot write protective backup note", "snapshot", snapshot, "error", err)
	}

	m.logger.Info("protective backup created", "game", run.req.Name, "snapshot", snapshot)
	return nil
}

func (m *Manager) removeTarget(run *restoreRun) error {
	if !run.targetExists {
		return nil
	}
	if err := m.trash.MoveToTrash(run.target); err != nil {
		return errors.WithKind(errors.Wrapf(err, "moving %s to trash", run.target), errors.KindIO)
	}
	m.logger.Debug("save directory trashed", "target", run.target)
	return nil
}

func (m *Manager) extractArchive(run *restoreRun) error {
	err := os.MkdirAll(run.target, 0o755)
	if err != nil {
		err = errors.IOf(err, "creating save directory %s", run.target)
	} else {
		err = m.extract(run.archive, run.target)
	}
	if err != nil {
		m.rollback(run)
		return errors.Wrapf(err, "extracting %s", filepath.Base(run.archive))
	}
	return nil
}

// rollback clears a partially extracted target and puts the protective
// snapshot back. Its own failures are only logged.
func (m *Manager) rollback(run *restoreRun) {
	if err := os.RemoveAll(run.target); err != nil {
		m.logger.Error("cannot remove partial save directory", "target", run.target, "error", err)
	}
	if run.snapshot == "" {
		m.logger.Warn("no protective backup to roll back to", "target", run.target)
		return
	}

	if err := os.MkdirAll(run.target, 0o755); err != nil {
		m.logger.Error("rollback failed", "target", run.target, "error", err)
		return
	}
	if err := Extract(run.snapshot, run.target); err != nil {
		m.logger.Error("rollback failed", "target", run.target, "snapshot", run.snapshot, "error", err)
		return
	}
	m.logger.Info("rolled back to protective backup", "target", run.target, "snapshot", run.snapshot)
}

func (m *Manager) finalizeRestore(run *restoreRun) error {
	run.timestamp = m.restoredTime(run.archive)

	lib, err := m.store.RecordTimestamp(run.req.Name, run.timestamp.UnixMilli())
	if err != nil {
		return errors.Wrapf(err, "files restored but last save not recorded for %q", run.req.Name)
	}
	run.lib = lib
	return nil
}

// restoredTime is the archive's name time, else its mod time, else now.
func (m *Manager) restoredTime(archive string) time.Time {
	if t, ok := DecodeTimestamp(filepath.Base(archive)); ok {
		return t
	}
	if info, err := os.Stat(archive); err == nil && !info.ModTime().IsZero() {
		return info.ModTime()
	}
	return m.now()
}
