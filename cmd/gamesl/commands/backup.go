package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Moushudyx/game-sl/internal/backup"
	"github.com/Moushudyx/game-sl/internal/errors"
)

var (
	backupRemark string
	backupUID    string
)

func init() {
	backupCmd.Flags().StringVarP(&backupRemark, "remark", "m", "", "note stored next to the backup")
	backupCmd.Flags().StringVar(&backupUID, "uid", "", "Steam user ID for {SteamUID} in the save path")
	rootCmd.AddCommand(backupCmd)
}

var backupCmd = &cobra.Command{
	Use:   "backup <game>",
	Short: "Back up a game's save directory",
	Long: `Archive the save directory of a registered game into the backup
directory as <game>-Backup-<YYYYMMDD-HHMMSS>.zip.

The game's last-save time in the library is updated. A remark, when given,
is stored in a .txt file next to the archive.`,
	Example: `  # Back up a game
  gamesl backup Celeste

  # Back up with a note
  gamesl backup Celeste --remark "before the final boss"

  # Steam games need the user ID when the path uses {SteamUID}
  gamesl backup "Hollow Knight" --uid 12345678

  See Also:
    gamesl list    - List backups of a game
    gamesl restore - Restore a backup`,
	Args: cobra.ExactArgs(1),
	RunE: runBackup,
}

func runBackup(cmd *cobra.Command, args []string) error {
	return runBackupWithWriter(cmd.Context(), args[0], statusWriter(cmd))
}

func runBackupWithWriter(ctx context.Context, name string, w io.Writer) error {
	a := newApp(ctx)

	game, err := a.store.Game(name)
	if err != nil {
		return err
	}

	result, err := a.manager.Backup(backup.BackupRequest{
		Name:         game.Name,
		PathTemplate: game.Path,
		UserContext:  backupUID,
		Remark:       backupRemark,
	})
	if err != nil {
		return errors.Wrapf(err, "backing up %q", game.Name)
	}

	fmt.Fprintf(w, "%s Backed up %s to %s\n", styleSuccess("✓"), game.Name, result.FilePath)
	if result.RemarkPath != "" {
		fmt.Fprintf(w, "  remark: %s\n", result.RemarkPath)
	}
	return nil
}
