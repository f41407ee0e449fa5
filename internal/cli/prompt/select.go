// Package prompt provides interactive CLI prompts for user input.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Moushudyx/game-sl/internal/backup"
	"github.com/Moushudyx/game-sl/internal/errors"
)

// Sentinel errors for archive selection.
var (
	ErrNoArchives         = errors.NewSentinel(errors.KindNotFound, "no backups to select from")
	ErrInvalidSelection   = errors.NewSentinel(errors.KindInvalidInput, "invalid selection")
	ErrSelectionCancelled = errors.New("selection cancelled")
)

// Selector handles interactive selection prompts.
type Selector struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewSelector creates a new Selector using stdin and stdout.
func NewSelector() *Selector {
	return NewSelectorWithIO(os.Stdin, os.Stdout)
}

// NewSelectorWithIO creates a Selector with custom reader and writer for testing.
func NewSelectorWithIO(r io.Reader, w io.Writer) *Selector {
	return &Selector{
		reader: bufio.NewReader(r),
		writer: w,
	}
}

// SelectArchive prompts the user to choose one of a game's backups.
//
// Returns:
//   - ErrNoArchives if the list is empty
//   - The archive if only one exists (auto-selects without prompting)
//   - The selected archive based on user input, the first on empty input
//   - ErrInvalidSelection if the selection is out of range
//   - ErrSelectionCancelled if input is EOF (e.g., Ctrl+D)
func (s *Selector) SelectArchive(game string, archives []backup.Archive) (*backup.Archive, error) {
	if len(archives) == 0 {
		return nil, errors.Wrapf(ErrNoArchives, "for %q", game)
	}

	if len(archives) == 1 {
		return &archives[0], nil
	}

	fmt.Fprintf(s.writer, "Backups of %q:\n", game)
	for i, a := range archives {
		fmt.Fprintf(s.writer, "  [%d] %s\n", i+1, Label(a))
	}
	fmt.Fprintf(s.writer, "Select [1]: ")

	input, err := s.readLine()
	if err != nil {
		return nil, err
	}

	if input == "" {
		return &archives[0], nil
	}

	selection, err := strconv.Atoi(input)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidSelection, "%q is not a number", input)
	}

	if selection < 1 || selection > len(archives) {
		return nil, errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", selection, len(archives))
	}

	return &archives[selection-1], nil
}

// Confirm asks a yes/no question. Anything but "y" or "yes" is a no.
func (s *Selector) Confirm(question string) (bool, error) {
	fmt.Fprintf(s.writer, "%s [y/N]: ", question)

	input, err := s.readLine()
	if err != nil {
		return false, err
	}

	switch strings.ToLower(input) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (s *Selector) readLine() (string, error) {
	input, err := s.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && input == "" {
			return "", ErrSelectionCancelled
		}
		if !errors.Is(err, io.EOF) {
			return "", errors.Wrap(err, "reading selection")
		}
	}
	return strings.TrimSpace(input), nil
}

// Label renders an archive as one line: file name, time and the first
// line of its remark.
func Label(a backup.Archive) string {
	when := "unknown time"
	if a.Timestamp.Known() {
		when = a.Timestamp.Time.Format("2006-01-02 15:04:05")
	}

	label := fmt.Sprintf("%s  (%s)", a.FileName, when)
	if remark := firstLine(a.Remark); remark != "" {
		label += "  " + remark
	}
	return label
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	return s
}
