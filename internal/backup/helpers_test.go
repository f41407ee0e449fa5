package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Moushudyx/game-sl/internal/config"
	"github.com/Moushudyx/game-sl/internal/logging"
	"github.com/Moushudyx/game-sl/internal/paths"
	"github.com/Moushudyx/game-sl/internal/trash"
)

const testTemplate = "{Home}/saves/Celeste"

type testEnv struct {
	home      string
	saves     string
	backupDir string
	extraDir  string
	store     *config.LibraryStore
	trash     *trash.Dir
	clock     time.Time
	mgr       *Manager
}

func newTestEnv(t *testing.T, opts ...Option) *testEnv {
	t.Helper()
	root := t.TempDir()
	env := &testEnv{
		home:      filepath.Join(root, "home"),
		backupDir: filepath.Join(root, "backup"),
		extraDir:  filepath.Join(root, "extra-backup"),
		store:     config.NewLibraryStore(filepath.Join(root, "library.json")),
		trash:     trash.NewDir(filepath.Join(root, "home", ".trash")),
		clock:     time.Date(2024, 1, 2, 3, 4, 5, 0, time.Local),
	}
	env.saves = filepath.Join(env.home, "saves", "Celeste")

	if _, err := env.store.AddGame(config.Game{Name: "Celeste", Path: testTemplate}); err != nil {
		t.Fatal(err)
	}

	base := []Option{
		WithBackupDir(env.backupDir),
		WithExtraBackupDir(env.extraDir),
		WithResolver(paths.NewResolver(paths.WithHome(env.home))),
		WithStore(env.store),
		WithTrash(env.trash),
		WithClock(func() time.Time { return env.clock }),
		WithLogger(logging.ForTest(t)),
	}
	env.mgr = NewManager(append(base, opts...)...)
	return env
}

func touch(t *testing.T, path string, content string, mod time.Time) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if !mod.IsZero() {
		if err := os.Chtimes(path, mod, mod); err != nil {
			t.Fatal(err)
		}
	}
}

func lastSave(t *testing.T, store *config.LibraryStore, name string) int64 {
	t.Helper()
	g, err := store.Game(name)
	if err != nil {
		t.Fatal(err)
	}
	if g.LastSave == nil {
		return 0
	}
	return *g.LastSave
}
