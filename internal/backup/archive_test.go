package backup

import (
	"archive/zip"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"

	"github.com/Moushudyx/game-sl/internal/errors"
)

// writeTree creates files (content) and empty dirs (nil) under root.
func writeTree(t *testing.T, root string, tree map[string][]byte) {
	t.Helper()
	for rel, content := range tree {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if content == nil {
			if err := os.MkdirAll(path, 0o755); err != nil {
				t.Fatal(err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, content, 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

// readTree returns every file (content) and directory (nil) under root.
func readTree(t *testing.T, root string) map[string][]byte {
	t.Helper()
	tree := map[string][]byte{}
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		rel, _ := filepath.Rel(root, path)
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			tree[rel] = nil
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		tree[rel] = data
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	return tree
}

func assertTree(t *testing.T, got, want map[string][]byte) {
	t.Helper()
	if len(got) != len(want) {
		t.Errorf("tree has %d entries, want %d: %v", len(got), len(want), keys(got))
	}
	for rel, content := range want {
		gotContent, ok := got[rel]
		if !ok {
			t.Errorf("missing %s", rel)
			continue
		}
		if (content == nil) != (gotContent == nil) {
			t.Errorf("%s: directory/file mismatch", rel)
			continue
		}
		if string(gotContent) != string(content) {
			t.Errorf("%s = %q, want %q", rel, gotContent, content)
		}
	}
}

func keys(m map[string][]byte) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func TestArchiveExtract_RoundTrip(t *testing.T) {
	src := t.TempDir()
	tree := map[string][]byte{
		"save.dat":               []byte("slot 0"),
		"profiles":               nil,
		"profiles/1/prefs.json":  []byte(`{"volume": 7}`),
		"profiles/2":             nil,
		"empty":                  nil,
		"deep/a/b/c/d/notes.txt": []byte("deep"),
		"zero.bin":               []byte{},
	}
	writeTree(t, src, tree)

	pkg := filepath.Join(t.TempDir(), "out.zip")
	stats, err := ArchiveDir(src, pkg)
	if err != nil {
		t.Fatalf("ArchiveDir() error = %v", err)
	}
	if stats.Files != 4 {
		t.Errorf("stats.Files = %d, want 4", stats.Files)
	}

	dest := t.TempDir()
	if err := Extract(pkg, dest); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	// Intermediate directories are implied by the tree
	want := map[string][]byte{}
	for k, v := range tree {
		want[k] = v
	}
	for _, dir := range []string{"profiles/1", "deep", "deep/a", "deep/a/b", "deep/a/b/c", "deep/a/b/c/d"} {
		want[dir] = nil
	}
	assertTree(t, readTree(t, dest), want)
}

func TestArchive_EntryLayout(t *testing.T) {
	src := t.TempDir()
	writeTree(t, src, map[string][]byte{
		"empty":       nil,
		"sub/file.sv": []byte("x"),
	})

	pkg := filepath.Join(t.TempDir(), "out.zip")
	if _, err := ArchiveDir(src, pkg); err != nil {
		t.Fatalf("ArchiveDir() error = %v", err)
	}

	r, err := zip.OpenReader(pkg)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	got := map[string]uint16{}
	for _, f := range r.File {
		got[f.Name] = f.Method
	}
	want := map[string]uint16{
		"empty/":      zip.Store,
		"sub/":        zip.Store,
		"sub/file.sv": zip.Deflate,
	}
	if len(got) != len(want) {
		t.Errorf("entries = %v, want %v", got, want)
	}
	for name, method := range want {
		if m, ok := got[name]; !ok || m != method {
			t.Errorf("entry %q method = %v (present %v), want %v", name, m, ok, method)
		}
	}
}

func TestArchive_Symlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated privileges on Windows")
	}

	src := t.TempDir()
	outside := filepath.Join(t.TempDir(), "real.sav")
	if err := os.WriteFile(outside, []byte("linked"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(outside, filepath.Join(src, "link.sav")); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join(src, "missing"), filepath.Join(src, "dangling")); err != nil {
		t.Fatal(err)
	}

	pkg := filepath.Join(t.TempDir(), "out.zip")
	stats, err := ArchiveDir(src, pkg)
	if err != nil {
		t.Fatalf("ArchiveDir() error = %v", err)
	}
	if len(stats.Skipped) != 1 || stats.Skipped[0] != "dangling" {
		t.Errorf("Skipped = %v, want [dangling]", stats.Skipped)
	}

	dest := t.TempDir()
	if err := Extract(pkg, dest); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	assertTree(t, readTree(t, dest), map[string][]byte{"link.sav": []byte("linked")})
}

func TestArchive_SymlinkedRoot(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated privileges on Windows")
	}

	target := t.TempDir()
	tree := map[string][]byte{
		"save0.celeste":  []byte("chapter 3"),
		"log":            nil,
		"log/latest.txt": []byte("ok"),
	}
	writeTree(t, target, tree)
	src := filepath.Join(t.TempDir(), "Saves")
	if err := os.Symlink(target, src); err != nil {
		t.Fatal(err)
	}

	pkg := filepath.Join(t.TempDir(), "out.zip")
	stats, err := ArchiveDir(src, pkg)
	if err != nil {
		t.Fatalf("ArchiveDir() error = %v", err)
	}
	if stats.Files != 2 || stats.Dirs != 1 {
		t.Errorf("stats = %+v, want 2 files and 1 dir", stats)
	}

	dest := t.TempDir()
	if err := Extract(pkg, dest); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	assertTree(t, readTree(t, dest), tree)
}

func TestArchive_SourceErrors(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		src  string
		dest string
	}{
		{"missing source", filepath.Join(t.TempDir(), "missing"), filepath.Join(t.TempDir(), "a.zip")},
		{"source is a file", file, filepath.Join(t.TempDir(), "a.zip")},
		{"dest not creatable", t.TempDir(), filepath.Join(t.TempDir(), "no", "such", "a.zip")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ArchiveDir(tt.src, tt.dest)
			if err == nil {
				t.Fatal("ArchiveDir() expected error")
			}
			if errors.KindOf(err) != errors.KindIO {
				t.Errorf("KindOf() = %v, want %v", errors.KindOf(err), errors.KindIO)
			}
		})
	}
}

// writeRawZip builds a zip with the given entry names and contents.
func writeRawZip(t *testing.T, path string, entries [][2]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	for _, e := range entries {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: e[0], Method: zip.Deflate})
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(e[1])); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestExtract_BackslashEntries(t *testing.T) {
	pkg := filepath.Join(t.TempDir(), "win.zip")
	writeRawZip(t, pkg, [][2]string{
		{`saves\`, ""},
		{`saves\slot1.sav`, "one"},
	})

	dest := t.TempDir()
	if err := Extract(pkg, dest); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	assertTree(t, readTree(t, dest), map[string][]byte{
		"saves":           nil,
		"saves/slot1.sav": []byte("one"),
	})
}

func TestExtract_Overwrites(t *testing.T) {
	pkg := filepath.Join(t.TempDir(), "a.zip")
	writeRawZip(t, pkg, [][2]string{{"save.dat", "new"}})

	dest := t.TempDir()
	writeTree(t, dest, map[string][]byte{"save.dat": []byte("old and longer")})

	if err := Extract(pkg, dest); err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	assertTree(t, readTree(t, dest), map[string][]byte{"save.dat": []byte("new")})
}

func TestExtract_RejectsUnsafeEntries(t *testing.T) {
	tests := []struct {
		name  string
		entry string
	}{
		{"parent traversal", "../evil.txt"},
		{"nested traversal", "saves/../../evil.txt"},
		{"backslash traversal", `saves\..\..\evil.txt`},
		{"absolute", "/etc/evil"},
		{"backslash absolute", `\evil`},
		{"drive letter", "C:/evil.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := t.TempDir()
			pkg := filepath.Join(base, "bad.zip")
			writeRawZip(t, pkg, [][2]string{{tt.entry, "pwned"}})

			dest := filepath.Join(base, "dest")
			if err := os.MkdirAll(dest, 0o755); err != nil {
				t.Fatal(err)
			}

			err := Extract(pkg, dest)
			if !errors.Is(err, ErrUnsafeEntry) {
				t.Fatalf("Extract() error = %v, want ErrUnsafeEntry", err)
			}
			if errors.KindOf(err) != errors.KindInvalidInput {
				t.Errorf("KindOf() = %v, want %v", errors.KindOf(err), errors.KindInvalidInput)
			}
			if _, err := os.Stat(filepath.Join(base, "evil.txt")); !os.IsNotExist(err) {
				t.Error("entry escaped the destination")
			}
		})
	}
}

func TestExtract_NotAZip(t *testing.T) {
	pkg := filepath.Join(t.TempDir(), "fake.zip")
	if err := os.WriteFile(pkg, []byte("not a zip"), 0o644); err != nil {
		t.Fatal(err)
	}
	err := Extract(pkg, t.TempDir())
	if errors.KindOf(err) != errors.KindIO {
		t.Errorf("KindOf() = %v, want %v", errors.KindOf(err), errors.KindIO)
	}
}
