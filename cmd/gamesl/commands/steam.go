package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func init() {
	steamCmd.AddCommand(steamUIDsCmd)
	rootCmd.AddCommand(steamCmd)
}

var steamCmd = &cobra.Command{
	Use:   "steam",
	Short: "Inspect the local Steam installation",
}

var steamUIDsCmd = &cobra.Command{
	Use:   "uids",
	Short: "List Steam user IDs usable as --uid",
	Long: `List the user IDs found under Steam's userdata directory. Any of them
can be passed as --uid to fill {SteamUID} in a save-path template.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runSteamUIDs(cmd.OutOrStdout())
	},
}

func runSteamUIDs(w io.Writer) error {
	r := newResolver()

	dir, err := r.SteamDir()
	if err != nil {
		return err
	}

	uids := r.ListSteamUIDs()
	if len(uids) == 0 {
		fmt.Fprintf(w, "No Steam users found in %s\n", dir)
		return nil
	}
	for _, uid := range uids {
		fmt.Fprintln(w, uid)
	}
	return nil
}
