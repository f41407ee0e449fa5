package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Moushudyx/game-sl/internal/editor"
	"github.com/Moushudyx/game-sl/internal/errors"
)

func init() {
	remarkCmd.AddCommand(remarkSetCmd)
	remarkCmd.AddCommand(remarkClearCmd)
	remarkCmd.AddCommand(remarkEditCmd)
	rootCmd.AddCommand(remarkCmd)
}

var remarkCmd = &cobra.Command{
	Use:   "remark",
	Short: "Manage backup remarks",
	Long: `Manage the notes stored next to backups.

A remark lives in a .txt file with the same name as the archive. Setting
an empty remark removes the file.`,
	Example: `  # Annotate a backup
  gamesl remark set Celeste Celeste-Backup-20240102-030405.zip "golden strawberry"

  # Edit in $EDITOR
  gamesl remark edit Celeste Celeste-Backup-20240102-030405.zip

  See Also: gamesl list`,
}

var remarkSetCmd = &cobra.Command{
	Use:   "set <game> <file> <text>",
	Short: "Set the remark of a backup",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRemarkSet(cmd.Context(), args[0], args[1], args[2], statusWriter(cmd))
	},
}

var remarkClearCmd = &cobra.Command{
	Use:   "clear <game> <file>",
	Short: "Remove the remark of a backup",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRemarkSet(cmd.Context(), args[0], args[1], "", statusWriter(cmd))
	},
}

var remarkEditCmd = &cobra.Command{
	Use:   "edit <game> <file>",
	Short: "Edit the remark of a backup in $EDITOR",
	Long: `Open the remark of a backup in your editor.

Uses $EDITOR, then $VISUAL, then nano or vi. Saving an empty file removes
the remark.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRemarkEdit(cmd.Context(), args[0], args[1], editor.EditText, statusWriter(cmd))
	},
}

func runRemarkSet(ctx context.Context, name, file, text string, w io.Writer) error {
	a := newApp(ctx)
	if err := a.manager.SetAnnotation(name, file, text); err != nil {
		return err
	}

	if strings.TrimSpace(text) == "" {
		fmt.Fprintf(w, "%s Cleared remark of %s\n", styleSuccess("✓"), file)
		return nil
	}
	fmt.Fprintf(w, "%s Saved remark of %s\n", styleSuccess("✓"), file)
	return nil
}

// editFunc edits text interactively, see editor.EditText.
type editFunc func(hint, initial string) (string, error)

func runRemarkEdit(ctx context.Context, name, file string, edit editFunc, w io.Writer) error {
	if filepath.Base(file) != file {
		return errors.InvalidInputf("%q is not a backup file name", file)
	}
	a := newApp(ctx)

	text, err := edit(strings.TrimSuffix(file, ".zip")+".txt", a.manager.Annotation(file))
	if err != nil {
		return err
	}
	return runRemarkSet(ctx, name, file, text, w)
}
