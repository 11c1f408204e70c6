// Package cli implements the plconv command line.
package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/llehouerou/plconv/internal/config"
	"github.com/llehouerou/plconv/internal/diag"
	"github.com/llehouerou/plconv/internal/errmsg"
	"github.com/llehouerou/plconv/internal/logging"
)

// app holds what every subcommand needs once the root command has run.
type app struct {
	configPath string
	debug      bool

	cfg *config.Config
	log *logging.Logger
}

// NewRootCommand builds the plconv command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "plconv",
		Short: "Work with playlists in several formats",
		Long: "Convert playlists between Winamp, Rhythmbox, iTunes and plain M3U, " +
			"re-encoding them and reconciling their tracks against a music library.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "additional config file")
	root.PersistentFlags().BoolVarP(&a.debug, "debug", "d", false, "turn on debug output")

	root.AddCommand(
		newNormalizeCommand(a),
		newGetTracksCommand(a),
		newItunifyCommand(a),
		newRhythmboxCommand(a),
		newWinampCommand(a),
	)
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	return run(NewRootCommand(), os.Args[1:], os.Stderr)
}

func run(root *cobra.Command, args []string, stderr io.Writer) int {
	root.SetArgs(args)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		logging.New(stderr, diag.LevelError).Errorf("%v", err)
		return 1
	}
	return 0
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	var extra []string
	if a.configPath != "" {
		extra = append(extra, a.configPath)
	}
	cfg, err := config.Load(extra...)
	if err != nil {
		return errmsg.Error(errmsg.OpConfigLoad, a.configPath, err)
	}
	a.cfg = cfg

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return errmsg.Error(errmsg.OpConfigLoad, a.configPath, err)
	}
	level = logging.LevelFromEnv(level)
	if a.debug {
		level = diag.LevelDebug
	}
	a.log = logging.New(cmd.ErrOrStderr(), level)
	return nil
}
