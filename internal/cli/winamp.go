package cli

import (
	"github.com/spf13/cobra"

	"github.com/llehouerou/plconv/internal/errmsg"
	"github.com/llehouerou/plconv/internal/winamp"
)

func newWinampCommand(a *app) *cobra.Command {
	var (
		f   outputFlags
		sel selection
	)
	cmd := &cobra.Command{
		Use:   "get-winamp-ml PLAYLISTS",
		Short: "Export Winamp Media Library playlists as M3U",
		Long: "Read the playlists.xml of a Winamp Media Library (usually Plugins/ml/playlists.xml) " +
			"and normalize every playlist it lists, as normalize-m3u does, under its Media Library title.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := a.normalizer(cmd, &f)
			if err != nil {
				return err
			}
			pls, err := winamp.LoadPlaylists(args[0], sel.keep)
			if err != nil {
				return errmsg.Error(errmsg.OpWinampPlaylistsLoad, args[0], err)
			}
			if len(pls) == 0 {
				a.log.Warnf("no playlists selected for output")
				return nil
			}

			var t tally
			for _, pl := range pls {
				a.log.Debugf("%s: %d songs, %d seconds", pl.Title, pl.Songs, pl.Seconds)
				w, ok, err := n.NormalizeFile(pl.Title, pl.Path)
				if err != nil {
					return errmsg.Error(errmsg.OpPlaylistNormalize, pl.Title, err)
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
	sel.register(cmd)
	return cmd
}
