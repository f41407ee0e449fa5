package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Moushudyx/game-sl/internal/errors"
	"github.com/Moushudyx/game-sl/internal/trash"
)

func init() {
	trashCmd.AddCommand(trashListCmd)
	rootCmd.AddCommand(trashCmd)
}

var trashCmd = &cobra.Command{
	Use:   "trash",
	Short: "Inspect save directories replaced by restores",
	Long: `Inspect the private trash directory configured with trash_dir.

Without trash_dir, replaced save directories go to the system recycle bin
and can be recovered from there.`,
}

var trashListCmd = &cobra.Command{
	Use:   "list",
	Short: "List trashed save directories, newest first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runTrashList(cmd.Context(), cmd.OutOrStdout())
	},
}

func runTrashList(ctx context.Context, w io.Writer) error {
	a := newApp(ctx)
	if a.cfg.TrashDir == "" {
		fmt.Fprintln(w, "Replaced saves go to the system recycle bin (trash_dir is not set)")
		return nil
	}

	d := trash.NewDir(a.cfg.TrashDir)
	records, err := d.Records()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintf(w, "Trash %s is empty\n", d.Root())
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DELETED\tORIGINAL PATH\tTRASHED AS")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\n",
			humanize.Time(r.DeletedAt),
			r.OriginalPath,
			filepath.Join(d.Root(), r.TrashName))
	}
	return errors.Wrap(tw.Flush(), "flushing tabwriter")
}
