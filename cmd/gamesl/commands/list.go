package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Moushudyx/game-sl/internal/backup"
	"github.com/Moushudyx/game-sl/internal/config"
	"github.com/Moushudyx/game-sl/internal/errors"
)

var (
	listJSON  bool
	listExtra bool
)

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().BoolVar(&listExtra, "extra", false, "List protective extra backups instead")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list <game>",
	Short: "List backups of a game",
	Long: `List the backups of a game, newest first.

Times come from the archive name, or from the file's modification time
when the name carries none. Archives whose time cannot be determined are
listed last. With the library setting useRelativeTime, times are shown
relative to now.`,
	Example: `  # List backups
  gamesl list Celeste

  # Protective snapshots taken before restores
  gamesl list Celeste --extra

  # Output as JSON
  gamesl list Celeste --json

  See Also:
    gamesl backup  - Create a backup
    gamesl restore - Restore a backup`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	return runListWithWriter(cmd.Context(), args[0], cmd.OutOrStdout())
}

func runListWithWriter(ctx context.Context, name string, w io.Writer) error {
	a := newApp(ctx)

	var (
		archives []backup.Archive
		err      error
	)
	if listExtra {
		archives, err = a.manager.ListProtective(name)
	} else {
		archives, err = a.manager.List(name)
	}
	if err != nil {
		return errors.Wrapf(err, "listing backups of %q", name)
	}

	if listJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(archives), "encoding backups")
	}

	relative := a.store.ReadPolicyFlag(config.SettingUseRelativeTime, true)
	return outputListTabular(w, name, archives, relative)
}

func outputListTabular(w io.Writer, name string, archives []backup.Archive, relative bool) error {
	kind := "Backups"
	if listExtra {
		kind = "Extra backups"
	}
	fmt.Fprintf(w, "%s\n", styleHeader(fmt.Sprintf("%s of %s", kind, name)))

	if len(archives) == 0 {
		fmt.Fprintf(w, "  %s\n", styleMuted("(no backups available)"))
		if !listExtra {
			fmt.Fprintln(w)
			fmt.Fprintf(w, "Create one with: gamesl backup %q\n", name)
		}
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  FILE\tTIME\tSIZE\tREMARK")
	for _, a := range archives {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n",
			styleName(a.FileName),
			archiveTime(a, relative),
			humanize.IBytes(uint64(max(a.Size, 0))),
			truncate(firstLine(a.Remark), 40))
	}
	return errors.Wrap(tw.Flush(), "flushing tabwriter")
}

// archiveTime renders an archive's time for humans.
func archiveTime(a backup.Archive, relative bool) string {
	if !a.Timestamp.Known() {
		return "unknown"
	}
	if relative {
		return humanize.Time(a.Timestamp.Time)
	}
	return a.Timestamp.Time.Format(timeLayout)
}
