package fileutil

import (
	"io"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/Moushudyx/game-sl/internal/errors"
)

// Read limits for files gamesl loads whole into memory.
const (
	// MaxRemarkSize bounds a remark sidecar or an edited remark.
	MaxRemarkSize = 64 << 10
	// MaxDocumentSize bounds the game library and trash records.
	MaxDocumentSize = 4 << 20
)

// ErrFileTooLarge indicates a file exceeded the limit passed to ReadFileLimit.
var ErrFileTooLarge = errors.NewSentinel(errors.KindInvalidInput, "file too large")

// ReadFileLimit reads the whole file at path, failing with ErrFileTooLarge
// when it holds more than limit bytes. Files that grow while being read
// are caught too.
func ReadFileLimit(path string, limit int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.IOf(err, "opening %s", path)
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil && info.Size() > limit {
		return nil, tooLarge(path, limit)
	}

	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, errors.IOf(err, "reading %s", path)
	}
	if int64(len(data)) > limit {
		return nil, tooLarge(path, limit)
	}
	return data, nil
}

func tooLarge(path string, limit int64) error {
	return errors.Wrapf(ErrFileTooLarge, "%s is larger than %s", path, humanize.IBytes(uint64(limit)))
}
