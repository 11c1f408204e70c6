package cli

import (
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/plconv/internal/config"
	"github.com/llehouerou/plconv/internal/errmsg"
	"github.com/llehouerou/plconv/internal/itunes"
	"github.com/llehouerou/plconv/internal/library"
	"github.com/llehouerou/plconv/internal/match"
	"github.com/llehouerou/plconv/internal/pipeline"
	"github.com/llehouerou/plconv/internal/rhythmbox"
	"github.com/llehouerou/plconv/internal/textcodec"
)

type itunifyOptions struct {
	codepage    string
	output      string
	maxDistance int
	itunesDB    string
	rhythmboxDB string
	replace     []string
	useBOM      bool
}

func newItunifyCommand(a *app) *cobra.Command {
	var o itunifyOptions
	cmd := &cobra.Command{
		Use:   "itunify-m3u FILE",
		Short: "Point an M3U playlist at the tracks of a local library",
		Long: "Match every entry of the playlist against the iTunes library (or a Rhythmbox " +
			"database) by artist and title, falling back to the closest match by edit distance, " +
			"and write a UTF-8 playlist referencing the library's files. Unmatched entries are dropped.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.itunify(cmd, &o, args[0])
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&o.codepage, "codepage", "c", "", "input codepage; inferred from the extension if unset")
	fl.StringVarP(&o.output, "output", "o", "", "output file (default: <title>.m3u8 in the output directory)")
	fl.IntVarP(&o.maxDistance, "max-edit-distance", "m", 0, "reject fuzzy matches further away than this (0: no limit)")
	fl.StringVarP(&o.itunesDB, "itunes-db", "i", "", "path to the iTunes Music Library.xml")
	fl.StringVar(&o.rhythmboxDB, "rhythmbox-db", "", "match against this Rhythmbox rhythmdb.xml instead of iTunes")
	fl.StringArrayVarP(&o.replace, "replace", "p", nil, "replacement rule PATTERN=>REPLACEMENT (repeatable)")
	fl.BoolVarP(&o.useBOM, "use-bom", "b", false, "start the output with a byte-order mark")
	return cmd
}

func (a *app) itunify(cmd *cobra.Command, o *itunifyOptions, path string) error {
	fl := cmd.Flags()
	cfg := *a.cfg
	if fl.Changed("codepage") {
		cfg.Codepage = o.codepage
	}
	if fl.Changed("max-edit-distance") {
		cfg.MaxEditDistance = o.maxDistance
	}
	if fl.Changed("itunes-db") {
		cfg.ITunes.Library = o.itunesDB
	}
	if fl.Changed("use-bom") {
		cfg.UseBOM = o.useBOM
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	eol, err := cfg.EOL()
	if err != nil {
		return err
	}
	rules, err := a.rules(cmd, o.replace)
	if err != nil {
		return err
	}

	ix, err := a.loadIndex(&cfg, o.rhythmboxDB)
	if err != nil {
		return err
	}

	r := &pipeline.Reconciler{
		Index:       ix,
		MaxDistance: cfg.MaxEditDistance,
		Encoding:    cfg.Codepage,
		Rules:       rules,
		UseBOM:      cfg.UseBOM,
		Reporter:    a.log,
	}
	res, err := r.ConvertFile(path)
	if err != nil {
		return errmsg.Error(errmsg.OpPlaylistConvert, path, err)
	}
	if res.Skipped {
		return nil
	}

	out := pipeline.Output{Dir: cfg.Output, Target: textcodec.UTF8, EOL: eol, Rename: cfg.Rename}
	dest := o.output
	if dest == "" {
		if dest, err = out.Path(pipeline.Title(path)); err != nil {
			return err
		}
	}
	w, err := out.WriteTo(dest, res.Lines)
	if err != nil {
		return errmsg.Error(errmsg.OpPlaylistWrite, dest, err)
	}

	a.log.Infof("%s => %s: matched %s of %s tracks (%s)",
		path, w.Path,
		humanize.Comma(int64(res.Matched)),
		humanize.Comma(int64(res.Tracks)),
		humanize.Bytes(uint64(w.Bytes)))
	for _, s := range []match.Stage{match.StageExact, match.StageExtInf, match.StageWeighted, match.StageUnweighted} {
		if n := res.Stages[s]; n > 0 {
			a.log.Debugf("  %s: %d", s, n)
		}
	}
	if d := res.Dropped(); d > 0 {
		a.log.Warnf("%s dropped: %d unmatched tracks", path, d)
	}
	return nil
}

// loadIndex builds the library index from a Rhythmbox database when one
// is given, and from the iTunes library otherwise.
func (a *app) loadIndex(cfg *config.Config, rhythmboxDB string) (*library.Index, error) {
	var entries []library.Entry
	if rhythmboxDB != "" {
		db, err := rhythmbox.LoadDB(rhythmboxDB)
		if err != nil {
			return nil, errmsg.Error(errmsg.OpRhythmboxDBLoad, rhythmboxDB, err)
		}
		entries = db.IndexEntries()
	} else {
		path := cfg.ITunesLibrary()
		var err error
		if entries, err = itunes.LoadIndexEntries(path); err != nil {
			return nil, errmsg.Error(errmsg.OpITunesLoad, path, err)
		}
	}
	ix := library.Build(entries, a.log)
	a.log.Debugf("indexed %s tracks", humanize.Comma(int64(ix.Len())))
	return ix, nil
}
