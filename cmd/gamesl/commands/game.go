package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Moushudyx/game-sl/internal/config"
	"github.com/Moushudyx/game-sl/internal/errors"
)

var (
	gameListJSON bool
	gameAddIcon  string
	gameAddType  string
)

func init() {
	gameListCmd.Flags().BoolVar(&gameListJSON, "json", false, "Output in JSON format")
	gameAddCmd.Flags().StringVar(&gameAddIcon, "icon", "", "icon file shown by front ends")
	gameAddCmd.Flags().StringVar(&gameAddType, "type", "", "free-form game type, e.g. steam")

	gameCmd.AddCommand(gameListCmd)
	gameCmd.AddCommand(gameAddCmd)
	gameCmd.AddCommand(gameRemoveCmd)
	gameCmd.AddCommand(gameReorderCmd)
	rootCmd.AddCommand(gameCmd)
}

var gameCmd = &cobra.Command{
	Use:   "game",
	Short: "Manage the game library",
	Long: `Manage the games registered in the library.

Each game has a name and a save-path template. Templates may use these
placeholders:

  {Home}      the user's home directory
  {AppData}   the roaming application-data directory
  {User}      same as {Home}
  {Steam}     the Steam installation directory
  {SteamUID}  a Steam user ID, given with --uid

Without a subcommand, lists the games.`,
	Example: `  # Register a game
  gamesl game add Celeste "{Home}/.local/share/Celeste/Saves"

  # A Steam cloud save
  gamesl game add "Hollow Knight" "{Steam}/userdata/{SteamUID}/367520" --type steam

  See Also: gamesl steam uids`,
	RunE: runGameList,
}

var gameListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered games",
	RunE:  runGameList,
}

var gameAddCmd = &cobra.Command{
	Use:   "add <name> <path-template>",
	Short: "Register a game",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		g := config.Game{
			Name: args[0],
			Path: args[1],
			Icon: gameAddIcon,
			Type: gameAddType,
		}
		return runGameAdd(cmd.Context(), g, statusWriter(cmd))
	},
}

var gameRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Unregister a game",
	Long: `Remove a game from the library.

Its backups stay on disk.`,
	Aliases: []string{"rm"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGameRemove(cmd.Context(), args[0], statusWriter(cmd))
	},
}

var gameReorderCmd = &cobra.Command{
	Use:   "reorder <name>...",
	Short: "Move games to the front of the library",
	Long: `Move the named games to the front of the library in the given order.
Games not named keep their relative order after them.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGameReorder(cmd.Context(), args, cmd.OutOrStdout())
	},
}

func runGameList(cmd *cobra.Command, _ []string) error {
	return runGameListWithWriter(cmd.Context(), cmd.OutOrStdout())
}

func runGameListWithWriter(ctx context.Context, w io.Writer) error {
	a := newApp(ctx)
	lib, err := a.store.Read()
	if err != nil {
		return err
	}

	if gameListJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(lib.Games), "encoding games")
	}
	return outputGames(w, lib.Games)
}

func outputGames(w io.Writer, games []config.Game) error {
	if len(games) == 0 {
		fmt.Fprintln(w, "No games registered")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Add one with: gamesl game add <name> <path-template>")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSAVE PATH\tLAST SAVE")
	for _, g := range games {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", styleName(g.Name), g.Path, formatMillis(g.LastSave))
	}
	return errors.Wrap(tw.Flush(), "flushing tabwriter")
}

func runGameAdd(ctx context.Context, g config.Game, w io.Writer) error {
	a := newApp(ctx)
	if _, err := a.store.AddGame(g); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s Added %s (%s)\n", styleSuccess("✓"), g.Name, g.Path)
	return nil
}

func runGameRemove(ctx context.Context, name string, w io.Writer) error {
	a := newApp(ctx)
	if _, err := a.store.RemoveGame(name); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s Removed %s\n", styleSuccess("✓"), name)
	fmt.Fprintf(w, "  %s\n", styleMuted("its backups were kept in "+a.manager.BackupDir()))
	return nil
}

func runGameReorder(ctx context.Context, order []string, w io.Writer) error {
	a := newApp(ctx)
	lib, err := a.store.Reorder(order)
	if err != nil {
		return err
	}
	return outputGames(w, lib.Games)
}
