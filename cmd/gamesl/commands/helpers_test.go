package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Moushudyx/game-sl/internal/config"
	"github.com/Moushudyx/game-sl/internal/logging"
	"github.com/Moushudyx/game-sl/internal/paths"
)

// testEnv points every command at temporary directories.
type testEnv struct {
	home  string
	cfg   *config.Config
	store *config.LibraryStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	root := t.TempDir()
	home := filepath.Join(root, "home")
	if err := os.MkdirAll(home, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{
		Version:        1,
		BackupDir:      filepath.Join(root, "backup"),
		ExtraBackupDir: filepath.Join(root, "extra-backup"),
		LibraryPath:    filepath.Join(root, "library.json"),
		TrashDir:       filepath.Join(root, "trash"),
		LogFormat:      "text",
	}

	origConfig, origResolver := loadedConfig, newResolver
	origQuiet := quiet
	t.Cleanup(func() {
		loadedConfig, newResolver = origConfig, origResolver
		quiet = origQuiet
	})

	loadedConfig = cfg
	newResolver = func() *paths.Resolver {
		return paths.NewResolver(paths.WithHome(home), paths.WithSteamDir(filepath.Join(root, "steam")))
	}
	quiet = false

	return &testEnv{
		home:  home,
		cfg:   cfg,
		store: config.NewLibraryStore(cfg.LibraryPath),
	}
}

func (e *testEnv) ctx(t *testing.T) context.Context {
	return logging.NewContext(t.Context(), logging.ForTest(t))
}

// addGame registers name with saves under {Home}/saves/<name> and writes
// files into that directory.
func (e *testEnv) addGame(t *testing.T, name string, files map[string]string) string {
	t.Helper()

	if _, err := e.store.AddGame(config.Game{Name: name, Path: "{Home}/saves/" + name}); err != nil {
		t.Fatalf("AddGame() error = %v", err)
	}

	dir := filepath.Join(e.home, "saves", name)
	for rel, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

// resetFlag restores *p to its current value when the test ends.
func resetFlag[T any](t *testing.T, p *T, v T) {
	t.Helper()
	orig := *p
	*p = v
	t.Cleanup(func() { *p = orig })
}
