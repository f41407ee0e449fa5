package backup

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Moushudyx/game-sl/internal/backup/mocks"
	"github.com/Moushudyx/game-sl/internal/config"
	"github.com/Moushudyx/game-sl/internal/errors"
	"github.com/Moushudyx/game-sl/internal/paths"
)

func TestManager_Backup(t *testing.T) {
	env := newTestEnv(t)
	writeTree(t, env.saves, map[string][]byte{
		"save0.celeste":  []byte("chapter 7"),
		"settings.xml":   []byte("<settings/>"),
		"modsettings":    nil,
		"log/latest.txt": []byte("ok"),
	})

	res, err := env.mgr.Backup(BackupRequest{
		Name:         "Celeste",
		PathTemplate: testTemplate,
		Remark:       "before farewell",
	})
	if err != nil {
		t.Fatalf("Backup() error = %v", err)
	}

	if res.FileName != "Celeste-Backup-20240102-030405.zip" {
		t.Errorf("FileName = %q", res.FileName)
	}
	if want := filepath.Join(env.backupDir, res.FileName); res.FilePath != want {
		t.Errorf("FilePath = %q, want %q", res.FilePath, want)
	}
	if want := filepath.Join(env.backupDir, "Celeste-Backup-20240102-030405.txt"); res.RemarkPath != want {
		t.Errorf("RemarkPath = %q, want %q", res.RemarkPath, want)
	}
	if !res.Timestamp.Equal(env.clock) {
		t.Errorf("Timestamp = %v, want %v", res.Timestamp, env.clock)
	}

	remark, err := os.ReadFile(res.RemarkPath)
	if err != nil || string(remark) != "before farewell" {
		t.Errorf("remark = %q (%v), want %q", remark, err, "before farewell")
	}

	g, ok := res.Library.Game("Celeste")
	if !ok || g.LastSave == nil {
		t.Fatalf("returned library lacks last save: %+v", g)
	}
	if *g.LastSave != env.clock.UnixMilli() {
		t.Errorf("LastSave = %d, want %d", *g.LastSave, env.clock.UnixMilli())
	}
	if got := lastSave(t, env.store, "Celeste"); got != env.clock.UnixMilli() {
		t.Errorf("stored LastSave = %d, want %d", got, env.clock.UnixMilli())
	}

	// Only the archive and its sidecar, no partial files
	entries, err := os.ReadDir(env.backupDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("backup dir has %d entries, want 2", len(entries))
	}

	dest := t.TempDir()
	if err := Extract(res.FilePath, dest); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	assertTree(t, readTree(t, dest), readTree(t, env.saves))

	archives, err := env.mgr.List("Celeste")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(archives) != 1 {
		t.Fatalf("List() returned %d archives, want 1", len(archives))
	}
	if archives[0].Remark != "before farewell" {
		t.Errorf("Remark = %q", archives[0].Remark)
	}
	if archives[0].Timestamp.Source != TimeSourceName || !archives[0].Timestamp.Time.Equal(env.clock) {
		t.Errorf("Timestamp = %+v, want name time %v", archives[0].Timestamp, env.clock)
	}
}

func TestManager_Backup_SymlinkedSaveDir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated privileges on Windows")
	}

	env := newTestEnv(t)
	realSaves := filepath.Join(env.home, "Library", "Celeste")
	tree := map[string][]byte{
		"save0.celeste": []byte("chapter 7"),
		"modsettings":   nil,
	}
	writeTree(t, realSaves, tree)
	if err := os.MkdirAll(filepath.Dir(env.saves), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(realSaves, env.saves); err != nil {
		t.Fatal(err)
	}

	res, err := env.mgr.Backup(BackupRequest{Name: "Celeste", PathTemplate: testTemplate})
	if err != nil {
		t.Fatalf("Backup() error = %v", err)
	}

	dest := t.TempDir()
	if err := Extract(res.FilePath, dest); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	assertTree(t, readTree(t, dest), tree)
}

func TestManager_Backup_BlankRemark(t *testing.T) {
	env := newTestEnv(t)
	writeTree(t, env.saves, map[string][]byte{"save": []byte("x")})

	res, err := env.mgr.Backup(BackupRequest{Name: "Celeste", PathTemplate: testTemplate, Remark: "   "})
	if err != nil {
		t.Fatalf("Backup() error = %v", err)
	}
	if res.RemarkPath != "" {
		t.Errorf("RemarkPath = %q, want empty", res.RemarkPath)
	}
	if _, err := os.Stat(RemarkPath(res.FilePath)); !os.IsNotExist(err) {
		t.Errorf("sidecar written for a blank remark: %v", err)
	}
}

func TestManager_Backup_RefusesOverwrite(t *testing.T) {
	env := newTestEnv(t)
	writeTree(t, env.saves, map[string][]byte{"save": []byte("x")})

	first, err := env.mgr.Backup(BackupRequest{Name: "Celeste", PathTemplate: testTemplate})
	if err != nil {
		t.Fatalf("Backup() error = %v", err)
	}
	before, err := os.ReadFile(first.FilePath)
	if err != nil {
		t.Fatal(err)
	}

	writeTree(t, env.saves, map[string][]byte{"save": []byte("changed")})
	_, err = env.mgr.Backup(BackupRequest{Name: "Celeste", PathTemplate: testTemplate})
	if !errors.Is(err, ErrArchiveExists) {
		t.Fatalf("second Backup() error = %v, want ErrArchiveExists", err)
	}
	if got := errors.KindOf(err); got != errors.KindInvalidInput {
		t.Errorf("KindOf() = %v, want %v", got, errors.KindInvalidInput)
	}

	after, err := os.ReadFile(first.FilePath)
	if err != nil {
		t.Fatal(err)
	}
	if string(after) != string(before) {
		t.Error("existing archive was modified")
	}
}

func TestManager_Backup_Errors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, env *testEnv) BackupRequest
		kind  errors.Kind
	}{
		{
			name: "missing save directory",
			setup: func(t *testing.T, env *testEnv) BackupRequest {
				return BackupRequest{Name: "Celeste", PathTemplate: testTemplate}
			},
			kind: errors.KindNotFound,
		},
		{
			name: "save path is a file",
			setup: func(t *testing.T, env *testEnv) BackupRequest {
				touch(t, env.saves, "not a dir", time.Time{})
				return BackupRequest{Name: "Celeste", PathTemplate: testTemplate}
			},
			kind: errors.KindInvalidInput,
		},
		{
			name: "missing steam uid",
			setup: func(t *testing.T, env *testEnv) BackupRequest {
				return BackupRequest{Name: "Celeste", PathTemplate: "{Home}/{SteamUID}/saves"}
			},
			kind: errors.KindInvalidInput,
		},
		{
			name: "empty name",
			setup: func(t *testing.T, env *testEnv) BackupRequest {
				return BackupRequest{Name: " ", PathTemplate: testTemplate}
			},
			kind: errors.KindInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			req := tt.setup(t, env)

			_, err := env.mgr.Backup(req)
			if err == nil {
				t.Fatal("Backup() expected error, got nil")
			}
			if got := errors.KindOf(err); got != tt.kind {
				t.Errorf("KindOf() = %v, want %v (error: %v)", got, tt.kind, err)
			}

			if entries, _ := os.ReadDir(env.backupDir); len(entries) != 0 {
				t.Errorf("backup dir has %d entries, want none", len(entries))
			}
		})
	}
}

func TestManager_Backup_UnknownGame(t *testing.T) {
	env := newTestEnv(t)
	other := filepath.Join(env.home, "saves", "Other")
	writeTree(t, other, map[string][]byte{"save": []byte("x")})

	_, err := env.mgr.Backup(BackupRequest{Name: "Other", PathTemplate: "{Home}/saves/Other"})
	if !errors.Is(err, config.ErrGameNotFound) {
		t.Errorf("Backup() error = %v, want ErrGameNotFound", err)
	}
}

func TestManager_Backup_RecordsRawName(t *testing.T) {
	home := t.TempDir()
	saves := filepath.Join(home, "saves")
	writeTree(t, saves, map[string][]byte{"save": []byte("x")})

	clock := time.Date(2024, 1, 2, 3, 4, 5, 0, time.Local)
	store := mocks.NewMockConfigStore(t)
	store.EXPECT().
		RecordTimestamp("Zelda: BotW", clock.UnixMilli()).
		Return(&config.Library{}, nil).
		Once()

	backupDir := filepath.Join(home, "backup")
	mgr := NewManager(
		WithBackupDir(backupDir),
		WithResolver(paths.NewResolver(paths.WithHome(home))),
		WithStore(store),
		WithClock(func() time.Time { return clock }),
	)

	res, err := mgr.Backup(BackupRequest{Name: "Zelda: BotW", PathTemplate: "{Home}/saves"})
	if err != nil {
		t.Fatalf("Backup() error = %v", err)
	}
	if !strings.HasPrefix(res.FileName, "Zelda_ BotW-Backup-") {
		t.Errorf("FileName = %q, want sanitized prefix", res.FileName)
	}
	store.AssertNotCalled(t, "ReadPolicyFlag", mock.Anything, mock.Anything)
}
