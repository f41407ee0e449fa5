package backup

import (
	"archive/zip"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Moushudyx/game-sl/internal/errors"
	"github.com/Moushudyx/game-sl/internal/paths"
)

// ArchiveDir packs the tree under srcDir into a new zip file at dest.
// The root itself is not stored and is followed when it is a symlink;
// directories get explicit entries ending in '/', files are deflated.
// Symlinks to regular files are stored by content, other special files are
// skipped and reported in the stats.
//
// A partially written dest is left in place on failure.
func ArchiveDir(srcDir, dest string) (stats ArchiveStats, err error) {
	root, err := sourceRoot(srcDir)
	if err != nil {
		return ArchiveStats{}, err
	}

	f, err := os.Create(dest)
	if err != nil {
		return ArchiveStats{}, errors.IOf(err, "creating archive %s", dest)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.IOf(cerr, "closing archive %s", dest)
		}
	}()

	return writeArchive(f, root)
}

// sourceRoot resolves symlinks in srcDir and checks it is a directory.
// filepath.WalkDir does not descend into a symlinked root.
func sourceRoot(srcDir string) (string, error) {
	root, err := filepath.EvalSymlinks(srcDir)
	if err != nil {
		return "", errors.IOf(err, "reading source %s", srcDir)
	}
	info, err := os.Stat(root)
	if err != nil {
		return "", errors.IOf(err, "reading source %s", srcDir)
	}
	if !info.IsDir() {
		return "", errors.IOf(errors.Newf("%s is not a directory", srcDir), "reading source %s", srcDir)
	}
	return root, nil
}

// writeArchive streams the zip encoding of srcDir into w. srcDir must
// already be resolved by sourceRoot.
func writeArchive(w io.Writer, srcDir string) (ArchiveStats, error) {
	var stats ArchiveStats
	zw := zip.NewWriter(w)

	walkErr := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.IOf(err, "walking %s", path)
		}
		if path == srcDir {
			return nil
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return errors.IOf(err, "relativizing %s", path)
		}
		name := filepath.ToSlash(rel)

		info, err := entryInfo(path, d)
		if err != nil {
			return err
		}
		if info == nil {
			stats.Skipped = append(stats.Skipped, name)
			return nil
		}

		if info.IsDir() {
			stats.Dirs++
			return addDirEntry(zw, info, name)
		}

		n, err := addFileEntry(zw, info, name, path)
		if err != nil {
			return err
		}
		stats.Files++
		stats.Bytes += n
		return nil
	})
	if walkErr != nil {
		_ = zw.Close()
		return stats, walkErr
	}

	if err := zw.Close(); err != nil {
		return stats, errors.IOf(err, "finishing archive")
	}
	return stats, nil
}

// entryInfo returns the info to archive for d, following symlinks to
// regular files. A nil info means the entry is skipped.
func entryInfo(path string, d fs.DirEntry) (fs.FileInfo, error) {
	if d.Type()&fs.ModeSymlink != 0 {
		target, err := os.Stat(path)
		if err != nil || !target.Mode().IsRegular() {
			return nil, nil
		}
		return target, nil
	}
	if !d.IsDir() && !d.Type().IsRegular() {
		return nil, nil
	}
	info, err := d.Info()
	if err != nil {
		return nil, errors.IOf(err, "stat %s", path)
	}
	return info, nil
}

func addDirEntry(zw *zip.Writer, info fs.FileInfo, name string) error {
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return errors.IOf(err, "creating header for %s", name)
	}
	header.Name = name + "/"
	header.Method = zip.Store
	if _, err := zw.CreateHeader(header); err != nil {
		return errors.IOf(err, "adding directory %s", name)
	}
	return nil
}

func addFileEntry(zw *zip.Writer, info fs.FileInfo, name, path string) (int64, error) {
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return 0, errors.IOf(err, "creating header for %s", name)
	}
	header.Name = name
	header.Method = zip.Deflate

	writer, err := zw.CreateHeader(header)
	if err != nil {
		return 0, errors.IOf(err, "adding file %s", name)
	}

	src, err := os.Open(path)
	if err != nil {
		return 0, errors.IOf(err, "opening %s", path)
	}
	defer src.Close()

	n, err := io.Copy(writer, src)
	if err != nil {
		return n, errors.IOf(err, "compressing %s", path)
	}
	return n, nil
}

// Extract unpacks the zip at pkg into destDir, overwriting existing files.
// Entry names using '\' separators are accepted. Entries that are absolute,
// carry a drive letter, contain ".." or would land outside destDir are
// rejected with ErrUnsafeEntry. A partially extracted tree is left in place.
func Extract(pkg, destDir string) error {
	// Entry names are vetted below, so ErrInsecurePath is not fatal here
	r, err := zip.OpenReader(pkg)
	if err != nil && !(errors.Is(err, zip.ErrInsecurePath) && r != nil) {
		return errors.IOf(err, "opening archive %s", pkg)
	}
	defer r.Close()

	for _, f := range r.File {
		target, isDir, err := entryTarget(destDir, f.Name)
		if err != nil {
			return err
		}
		if isDir || f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return errors.IOf(err, "creating directory %s", target)
			}
			continue
		}
		if err := extractFile(f, target); err != nil {
			return err
		}
	}
	return nil
}

// entryTarget maps an entry name to a path under destDir.
func entryTarget(destDir, name string) (string, bool, error) {
	normalized := strings.ReplaceAll(name, `\`, "/")
	isDir := strings.HasSuffix(normalized, "/")

	switch {
	case strings.Trim(normalized, "/") == "":
		return "", false, errors.Wrapf(ErrUnsafeEntry, "empty entry name %q", name)
	case strings.HasPrefix(normalized, "/"):
		return "", false, errors.Wrapf(ErrUnsafeEntry, "absolute entry %q", name)
	case len(normalized) >= 2 && normalized[1] == ':':
		return "", false, errors.Wrapf(ErrUnsafeEntry, "drive-qualified entry %q", name)
	}
	for _, segment := range strings.Split(normalized, "/") {
		if segment == ".." {
			return "", false, errors.Wrapf(ErrUnsafeEntry, "entry %q escapes destination", name)
		}
	}

	target := filepath.Join(destDir, filepath.FromSlash(normalized))
	if !paths.IsWithin(destDir, target) {
		return "", false, errors.Wrapf(ErrUnsafeEntry, "entry %q escapes destination", name)
	}
	return target, isDir, nil
}

func extractFile(f *zip.File, target string) (err error) {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return errors.IOf(err, "creating directory for %s", target)
	}

	src, err := f.Open()
	if err != nil {
		return errors.IOf(err, "reading entry %s", f.Name)
	}
	defer src.Close()

	dst, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return errors.IOf(err, "creating %s", target)
	}
	defer func() {
		if cerr := dst.Close(); cerr != nil && err == nil {
			err = errors.IOf(cerr, "closing %s", target)
		}
	}()

	if _, err := io.Copy(dst, src); err != nil {
		return errors.IOf(err, "writing %s", target)
	}
	return nil
}
