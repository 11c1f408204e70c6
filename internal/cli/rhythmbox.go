package cli

import (
	"github.com/spf13/cobra"

	"github.com/llehouerou/plconv/internal/errmsg"
	"github.com/llehouerou/plconv/internal/rhythmbox"
)

func newRhythmboxCommand(a *app) *cobra.Command {
	var (
		f   outputFlags
		sel selection
	)
	cmd := &cobra.Command{
		Use:   "get-playlists-xml [DB [PLAYLISTS]]",
		Short: "Export Rhythmbox static playlists as M3U",
		Long: "Read the static playlists of a Rhythmbox playlists.xml, look their tracks up in " +
			"rhythmdb.xml for extended information, and write one M3U playlist per playlist. " +
			"DB and PLAYLISTS default to the configured or standard Rhythmbox files.",
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, plPath := a.cfg.RhythmboxDB(), a.cfg.RhythmboxPlaylists()
			if len(args) > 0 {
				dbPath = args[0]
			}
			if len(args) > 1 {
				plPath = args[1]
			}

			n, err := a.normalizer(cmd, &f)
			if err != nil {
				return err
			}

			pls, err := rhythmbox.LoadPlaylists(plPath, sel.keep)
			if err != nil {
				return errmsg.Error(errmsg.OpRhythmboxPlaylistsLoad, plPath, err)
			}
			if len(pls) == 0 {
				a.log.Warnf("no playlists selected for output")
				return nil
			}
			db, err := rhythmbox.LoadDB(dbPath)
			if err != nil {
				return errmsg.Error(errmsg.OpRhythmboxDBLoad, dbPath, err)
			}

			var t tally
			for _, pl := range pls {
				w, err := n.Export(pl.Name, db.Tracks(pl))
				if err != nil {
					return errmsg.Error(errmsg.OpPlaylistExport, pl.Name, err)
				}
				t.add(w)
			}
			t.report(a)
			return nil
		},
	}
	f.register(cmd, false)
	sel.register(cmd)
	return cmd
}
