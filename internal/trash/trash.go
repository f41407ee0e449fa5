package trash

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Bios-Marcel/wastebasket/v2"

	"github.com/Moushudyx/game-sl/internal/errors"
	"github.com/Moushudyx/game-sl/pkg/fileutil"
)

// RecordSuffix is appended to a trashed item's name to form its record file.
const RecordSuffix = ".trashinfo.json"

// System moves paths to the platform recycle bin.
type System struct{}

// MoveToTrash moves path to the recycle bin.
func (System) MoveToTrash(path string) error {
	if err := wastebasket.Trash(path); err != nil {
		return errors.IOf(err, "moving %s to trash", path)
	}
	return nil
}

// Record describes an item held by a Dir trash.
type Record struct {
	OriginalPath string    `json:"original_path"`
	TrashName    string    `json:"trash_name"`
	DeletedAt    time.Time `json:"deleted_at"`
}

// Dir moves paths into a directory. Each item is renamed to a unique name
// and gets a JSON record beside it.
type Dir struct {
	root string
	now  func() time.Time
}

// NewDir creates a Dir trash rooted at root.
func NewDir(root string) *Dir {
	return &Dir{root: root, now: time.Now}
}

// Root returns the trash directory.
func (d *Dir) Root() string {
	return d.root
}

// MoveToTrash renames path into the trash directory. The trash directory
// must be on the same filesystem as path.
func (d *Dir) MoveToTrash(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.IOf(err, "resolving %s", path)
	}
	if _, err := os.Lstat(abs); err != nil {
		return errors.IOf(err, "moving %s to trash", abs)
	}

	if err := os.MkdirAll(d.root, 0o755); err != nil {
		return errors.IOf(err, "creating trash directory %s", d.root)
	}

	deletedAt := d.now()
	name := d.uniqueName(filepath.Base(abs), deletedAt)
	if err := os.Rename(abs, filepath.Join(d.root, name)); err != nil {
		return errors.IOf(err, "moving %s to trash", abs)
	}

	rec := Record{OriginalPath: abs, TrashName: name, DeletedAt: deletedAt}
	if err := fileutil.AtomicWriteJSON(filepath.Join(d.root, name+RecordSuffix), rec); err != nil {
		return errors.Wrapf(err, "writing trash record for %s", abs)
	}
	return nil
}

// Records returns the records in the trash, newest first.
func (d *Dir) Records() ([]Record, error) {
	entries, err := os.ReadDir(d.root)
	if err != nil {
		if os.IsNotExist(err) {
			return []Record{}, nil
		}
		return nil, errors.IOf(err, "reading trash directory %s", d.root)
	}

	records := make([]Record, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), RecordSuffix) {
			continue
		}
		data, err := fileutil.ReadFileLimit(filepath.Join(d.root, entry.Name()), fileutil.MaxDocumentSize)
		if err != nil {
			continue
		}
		var rec Record
		if err := json.Unmarshal(data, &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].DeletedAt.After(records[j].DeletedAt)
	})
	return records, nil
}

func (d *Dir) uniqueName(base string, at time.Time) string {
	stamp := at.Format("20060102-150405")
	name := fmt.Sprintf("%s.%s", base, stamp)
	for i := 1; exists(filepath.Join(d.root, name)); i++ {
		name = fmt.Sprintf("%s.%s.%d", base, stamp, i)
	}
	return name
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
