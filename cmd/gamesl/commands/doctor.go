package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Moushudyx/game-sl/internal/config"
	"github.com/Moushudyx/game-sl/internal/doctor"
	"github.com/Moushudyx/game-sl/internal/errors"
)

var (
	doctorJSON bool
	doctorAll  bool
	doctorUID  string
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorAll, "all", false, "show passed and informational checks too")
	doctorCmd.Flags().StringVar(&doctorUID, "uid", "", "Steam user ID used to resolve {SteamUID}")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose setup problems",
	Long: `Check the settings file, the storage directories, the game library and
the save path of every registered game.

Exit codes:
  0 - No errors or warnings
  1 - Warnings present, no errors
  2 - Errors present`,
	Example: `  # Show problems only
  gamesl doctor

  # Show every check
  gamesl doctor --all`,
	RunE: runDoctor,
}

// errDoctorWarnings is a sentinel error for exit code 1.
var errDoctorWarnings = errors.New("doctor found warnings")

// errDoctorErrors is a sentinel error for exit code 2.
var errDoctorErrors = errors.New("doctor found errors")

func runDoctor(cmd *cobra.Command, _ []string) error {
	return runDoctorWithWriter(cmd.Context(), cmd.OutOrStdout())
}

func runDoctorWithWriter(ctx context.Context, w io.Writer) error {
	report := doctorRunner(newApp(ctx)).Run()

	var err error
	if doctorJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = errors.Wrap(enc.Encode(report), "encoding report")
	} else {
		outputDoctorText(w, report)
	}
	if err != nil {
		return err
	}

	switch {
	case report.HasErrors():
		return errors.NewExitError(errDoctorErrors, errors.ExitSystem)
	case report.HasWarnings():
		return errors.NewExitError(errDoctorWarnings, errors.ExitUser)
	}
	return nil
}

// doctorRunner assembles the checks for the current setup.
func doctorRunner(a *app) *doctor.Runner {
	r := doctor.NewRunner(
		&doctor.ConfigCheck{Path: config.ConfigFileUsed(), Err: configLoadErr},
		&doctor.DirCheck{Label: "backup-dir", Path: a.cfg.BackupDir},
		&doctor.DirCheck{Label: "extra-backup-dir", Path: a.cfg.ExtraBackupDir},
		&doctor.TrashCheck{Dir: a.cfg.TrashDir},
		&doctor.LibraryCheck{Store: a.store},
		&doctor.SteamCheck{Locator: a.resolver},
	)

	if lib, err := a.store.Read(); err == nil {
		for _, g := range lib.Games {
			r.AddCheck(&doctor.SaveDirCheck{Game: g, Resolver: a.resolver, UserContext: doctorUID})
		}
	}
	return r
}

func outputDoctorText(w io.Writer, report *doctor.Report) {
	shown := 0
	for _, res := range report.Results {
		if !doctorAll && res.Status != doctor.SeverityError && res.Status != doctor.SeverityWarning {
			continue
		}
		shown++
		fmt.Fprintf(w, "%s [%s] %s: %s\n", statusIcon(res.Status), res.Category, res.Name, res.Message)
		if res.FixHint != "" {
			fmt.Fprintf(w, "  hint: %s\n", res.FixHint)
		}
	}
	if shown > 0 {
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return styleSuccess("✓")
	case doctor.SeverityInfo:
		return "ℹ"
	case doctor.SeverityWarning:
		return styleWarn("⚠")
	case doctor.SeverityError:
		return styleError("✗")
	default:
		return "?"
	}
}
