package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/Moushudyx/game-sl/internal/backup"
	"github.com/Moushudyx/game-sl/internal/cli/prompt"
	"github.com/Moushudyx/game-sl/internal/errors"
)

var (
	restoreUID    string
	restoreYes    bool
	restoreLatest bool
)

func init() {
	restoreCmd.Flags().StringVar(&restoreUID, "uid", "", "Steam user ID for {SteamUID} in the save path")
	restoreCmd.Flags().BoolVarP(&restoreYes, "yes", "y", false, "do not ask for confirmation")
	restoreCmd.Flags().BoolVar(&restoreLatest, "latest", false, "restore the newest backup without asking")
	rootCmd.AddCommand(restoreCmd)
}

var restoreCmd = &cobra.Command{
	Use:   "restore <game> [archive]",
	Short: "Restore a backup over a game's save directory",
	Long: `Replace the save directory of a game with the contents of a backup.

The archive may be a file name from "gamesl list" or a path to any .zip.
Without one, a picker is shown: a fuzzy finder on a terminal, a numbered
prompt otherwise.

Before anything is replaced, the current save directory is archived into
the extra-backup directory (unless the restoreExtraBackup setting is off)
and then moved to the trash. If extraction fails the directory is rolled
back from that snapshot.`,
	Example: `  # Pick a backup interactively
  gamesl restore Celeste

  # Restore a specific backup without confirmation
  gamesl restore Celeste Celeste-Backup-20240102-030405.zip --yes

  # Restore the newest backup from a script
  gamesl restore Celeste --latest --yes

  See Also:
    gamesl list Celeste --extra - Snapshots taken before restores`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runRestore,
}

// archivePicker chooses one of a game's archives.
type archivePicker func(game string, archives []backup.Archive) (*backup.Archive, error)

func runRestore(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	sel := prompt.NewSelectorWithIO(cmd.InOrStdin(), w)

	pick := sel.SelectArchive
	if stdinIsTerminal() {
		pick = fuzzyPick
	}
	return runRestoreWithIO(cmd.Context(), args, sel, w, pick)
}

// runRestoreWithIO restores with sel answering the confirmation and pick
// choosing the archive when none is named.
func runRestoreWithIO(ctx context.Context, args []string, sel *prompt.Selector, w io.Writer, pick archivePicker) error {
	a := newApp(ctx)
	name := args[0]

	game, err := a.store.Game(name)
	if err != nil {
		return err
	}

	archivePath, err := chooseArchive(a, game.Name, args[1:], pick)
	if err != nil {
		if errors.Is(err, prompt.ErrSelectionCancelled) {
			fmt.Fprintln(w, "Restore cancelled")
			return nil
		}
		return err
	}

	if !restoreYes {
		question := fmt.Sprintf("Replace the saves of %s with %s?", game.Name, displayPath(a, archivePath))
		ok, err := sel.Confirm(question)
		if err != nil && !errors.Is(err, prompt.ErrSelectionCancelled) {
			return err
		}
		if !ok {
			fmt.Fprintln(w, "Restore cancelled")
			return nil
		}
	}

	outcome, err := a.manager.Restore(backup.RestoreRequest{
		Name:         game.Name,
		PathTemplate: game.Path,
		ArchivePath:  archivePath,
		UserContext:  restoreUID,
	})
	if err != nil {
		return restoreFailure(err)
	}

	out := w
	if quiet {
		out = io.Discard
	}
	fmt.Fprintf(out, "%s Restored %s from %s\n", styleSuccess("✓"), game.Name, displayPath(a, outcome.ArchivePath))
	fmt.Fprintf(out, "  saves:        %s\n", outcome.TargetPath)
	if outcome.ExtraBackupPath != "" {
		fmt.Fprintf(out, "  extra backup: %s\n", outcome.ExtraBackupPath)
	}
	return nil
}

// chooseArchive resolves the archive argument, or asks for one.
func chooseArchive(a *app, name string, rest []string, pick archivePicker) (string, error) {
	if len(rest) > 0 {
		return a.archivePath(rest[0]), nil
	}

	archives, err := a.manager.List(name)
	if err != nil {
		return "", err
	}
	archives = restorable(archives)
	if len(archives) == 0 {
		return "", errors.NotFoundf("no restorable backups of %q in %s", name, a.manager.BackupDir())
	}

	if restoreLatest {
		return archives[0].FilePath, nil
	}

	selected, err := pick(name, archives)
	if err != nil {
		return "", err
	}
	return selected.FilePath, nil
}

// restorable drops archives in formats that cannot be restored.
func restorable(archives []backup.Archive) []backup.Archive {
	out := archives[:0:0]
	for _, a := range archives {
		if strings.EqualFold(filepath.Ext(a.FileName), backup.ArchiveExt) {
			out = append(out, a)
		}
	}
	return out
}

func fuzzyPick(game string, archives []backup.Archive) (*backup.Archive, error) {
	idx, err := fuzzyfinder.Find(
		archives,
		func(i int) string {
			return prompt.Label(archives[i])
		},
		fuzzyfinder.WithPromptString(game+"> "),
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			a := archives[i]
			return fmt.Sprintf("File: %s\nTime: %s\nSize: %d bytes\n\nRemark:\n%s",
				a.FileName,
				archiveTime(a, false),
				a.Size,
				a.Remark,
			)
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, prompt.ErrSelectionCancelled
		}
		return nil, errors.Wrap(err, "interactive selection failed")
	}
	return &archives[idx], nil
}

// restoreFailure adds a hint about where the previous saves went when
// extraction failed after the save directory was trashed.
func restoreFailure(err error) error {
	stage, ok := backup.StageOf(err)
	if !ok || stage != backup.StageExtract {
		return err
	}
	exitErr := errors.FromKind(err)
	exitErr.Suggestion = "The previous saves are in the trash and, unless disabled, in: gamesl list <game> --extra"
	return exitErr
}

// displayPath shortens archives inside the backup directory to their name.
func displayPath(a *app, path string) string {
	if a.manager.ArchivePath(filepath.Base(path)) == path {
		return filepath.Base(path)
	}
	return path
}

