package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/llehouerou/plconv/internal/errmsg"
	"github.com/llehouerou/plconv/internal/pipeline"
)

func newNormalizeCommand(a *app) *cobra.Command {
	var f outputFlags
	cmd := &cobra.Command{
		Use:   "normalize-m3u FILE...",
		Short: "Re-encode M3U playlists and rewrite their entries",
		Long: "Decode each playlist, canonicalise every line, apply the replacement rules " +
			"and write it to the output directory under its (renamed) title.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := a.normalizer(cmd, &f)
			if err != nil {
				return err
			}
			var t tally
			for _, path := range args {
				w, ok, err := n.NormalizeFile(pipeline.Title(path), path)
				if err != nil {
					return errmsg.Error(errmsg.OpPlaylistNormalize, path, err)
				}
				if ok {
					t.add(w)
				}
			}
			t.report(a)
			return nil
		},
	}
	f.register(cmd, true)
	return cmd
}

func newGetTracksCommand(a *app) *cobra.Command {
	var (
		codepage     string
		checkMissing bool
	)
	cmd := &cobra.Command{
		Use:   "get-tracks FILE...",
		Short: "Print the distinct tracks referenced by M3U playlists",
		Long: "Print every distinct track path found in the given playlists, one per line. " +
			"The output can be fed to xargs to copy the tracks to another host.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("codepage") {
				codepage = a.cfg.Codepage
			}
			paths, err := pipeline.CollectTracks(args, codepage, checkMissing, a.log)
			if err != nil {
				return errmsg.Error(errmsg.OpTracksCollect, "", err)
			}
			out := cmd.OutOrStdout()
			for _, p := range paths {
				fmt.Fprintln(out, p)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&codepage, "codepage", "c", "", "input codepage; inferred from the extension if unset")
	cmd.Flags().BoolVarP(&checkMissing, "check-missing", "m", false, "only print tracks missing on this machine")
	return cmd
}
