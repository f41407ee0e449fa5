package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Moushudyx/game-sl/internal/errors"
)

func TestResolveHome(t *testing.T) {
	got, err := ResolveHome()
	want, _ := os.UserHomeDir()

	if err != nil {
		if !errors.Is(err, ErrHomeDirNotFound) {
			t.Errorf("unexpected error type: %v", err)
		}
	} else if got != want {
		t.Errorf("ResolveHome() = %q, want %q", got, want)
	}
}

func TestConfigHome(t *testing.T) {
	got := ConfigHome()
	if got == "" {
		t.Error("ConfigHome() returned empty string")
	}
	if !filepath.IsAbs(got) {
		t.Errorf("ConfigHome() = %q, want absolute path", got)
	}
}

func TestDataHome(t *testing.T) {
	got := DataHome()
	if got == "" {
		t.Error("DataHome() returned empty string")
	}
	if !filepath.IsAbs(got) {
		t.Errorf("DataHome() = %q, want absolute path", got)
	}
}

func TestWorkDirLayout(t *testing.T) {
	tests := []struct {
		name   string
		got    string
		parent string
		suffix string
	}{
		{"config dir", ConfigDir(), ConfigHome(), AppName},
		{"config file", ConfigFile(), ConfigDir(), ConfigFileName},
		{"work dir", WorkDir(), DataHome(), AppName},
		{"backup dir", BackupDir(), WorkDir(), BackupDirName},
		{"extra backup dir", ExtraBackupDir(), WorkDir(), ExtraBackupDirName},
		{"library file", LibraryFile(), WorkDir(), LibraryFileName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := filepath.Join(tt.parent, tt.suffix)
			if tt.got != want {
				t.Errorf("got %q, want %q", tt.got, want)
			}
		})
	}
}

func TestIsWithin(t *testing.T) {
	base := filepath.Join(string(filepath.Separator), "saves", "game")
	tests := []struct {
		name   string
		target string
		want   bool
	}{
		{"same", base, true},
		{"child", filepath.Join(base, "slot1"), true},
		{"nested child", filepath.Join(base, "a", "b", "c.sav"), true},
		{"parent", filepath.Dir(base), false},
		{"sibling", filepath.Join(filepath.Dir(base), "other"), false},
		{"sibling with shared prefix", base + "2", false},
		{"dotdot-named child", filepath.Join(base, "..hidden"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsWithin(base, tt.target); got != tt.want {
				t.Errorf("IsWithin(%q, %q) = %v, want %v", base, tt.target, got, tt.want)
			}
		})
	}
}

func TestIsRoot(t *testing.T) {
	if !IsRoot(string(filepath.Separator)) {
		t.Errorf("IsRoot(%q) = false, want true", string(filepath.Separator))
	}
	if IsRoot(t.TempDir()) {
		t.Error("IsRoot(tempdir) = true, want false")
	}
}

func TestEnsureDir(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("creates nested directories", func(t *testing.T) {
		path := filepath.Join(tmpDir, "parent", "child", "grandchild")
		if err := EnsureDir(path, 0o755); err != nil {
			t.Fatalf("EnsureDir failed: %v", err)
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat failed: %v", err)
		}
		if !info.IsDir() {
			t.Errorf("expected directory, got file")
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		path := filepath.Join(tmpDir, "existing")
		if err := os.Mkdir(path, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := EnsureDir(path, 0o700); err != nil {
			t.Errorf("EnsureDir failed on existing directory: %v", err)
		}

		// MkdirAll does not change permissions of existing directories.
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if info.Mode().Perm() != 0o755 {
			t.Errorf("expected original perm 0755 to be preserved, got %o", info.Mode().Perm())
		}
	})

	t.Run("file in the way", func(t *testing.T) {
		path := filepath.Join(tmpDir, "file")
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
		err := EnsureDir(filepath.Join(path, "sub"), 0)
		if err == nil {
			t.Fatal("EnsureDir() expected error when a file blocks the path")
		}
		if errors.KindOf(err) != errors.KindIO {
			t.Errorf("KindOf() = %v, want %v", errors.KindOf(err), errors.KindIO)
		}
	})
}
