package cli

import (
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/plconv/internal/diag"
	"github.com/llehouerou/plconv/internal/errmsg"
	"github.com/llehouerou/plconv/internal/pipeline"
	"github.com/llehouerou/plconv/internal/rename"
	"github.com/llehouerou/plconv/internal/replace"
	"github.com/llehouerou/plconv/internal/textcodec"
)

// outputFlags are the options shared by every command that writes
// playlists into a directory. Set flags override the configuration.
type outputFlags struct {
	codepage string
	output   string
	replace  []string
	rename   string
	utf8     bool
	useBOM   bool
}

func (f *outputFlags) register(cmd *cobra.Command, withCodepage bool) {
	fl := cmd.Flags()
	if withCodepage {
		fl.StringVarP(&f.codepage, "codepage", "c", "", "input codepage (e.g. cp1252); inferred from the extension if unset")
	}
	fl.StringVarP(&f.output, "output", "o", "", "output directory")
	fl.StringArrayVarP(&f.replace, "replace", "p", nil, "replacement rule PATTERN=>REPLACEMENT (repeatable)")
	fl.StringVarP(&f.rename, "rename", "r", "", "rename codes: l lowercases, - replaces spaces with dashes")
	fl.BoolVarP(&f.utf8, "utf8", "u", false, "write UTF-8 .m3u8 files instead of Windows-1252 .m3u")
	fl.BoolVarP(&f.useBOM, "use-bom", "b", false, "start UTF-8 output with a byte-order mark")
}

// rules compiles the replacement rules, from the flags when given and
// from the configuration otherwise.
func (a *app) rules(cmd *cobra.Command, flagRules []string) (replace.Rules, error) {
	sources := a.cfg.Replace
	if cmd.Flags().Changed("replace") {
		sources = flagRules
	}
	rules, err := replace.CompileAll(sources)
	if err != nil {
		return nil, errmsg.Error(errmsg.OpRulesCompile, "", err)
	}
	return rules, nil
}

// normalizer merges flags and configuration into a pipeline.Normalizer.
func (a *app) normalizer(cmd *cobra.Command, f *outputFlags) (*pipeline.Normalizer, error) {
	fl := cmd.Flags()
	cfg := *a.cfg
	if fl.Changed("codepage") {
		cfg.Codepage = f.codepage
	}
	if fl.Changed("output") {
		cfg.Output = f.output
	}
	if fl.Changed("rename") {
		cfg.Rename = f.rename
	}
	if fl.Changed("utf8") {
		cfg.UTF8 = f.utf8
	}
	if fl.Changed("use-bom") {
		cfg.UseBOM = f.useBOM
	}
	if err := rename.Validate(cfg.Rename); err != nil {
		return nil, err
	}
	eol, err := cfg.EOL()
	if err != nil {
		return nil, err
	}
	rules, err := a.rules(cmd, f.replace)
	if err != nil {
		return nil, err
	}

	return &pipeline.Normalizer{
		Encoding: cfg.Codepage,
		Rules:    rules,
		Output: pipeline.Output{
			Dir:    cfg.Output,
			Target: textcodec.TargetFor(cfg.UTF8),
			UseBOM: cfg.UseBOM,
			EOL:    eol,
			Rename: cfg.Rename,
		},
		Reporter: a.log,
	}, nil
}

// selection restricts which catalogue playlists are exported.
type selection struct {
	only    []string
	exclude []string
}

func (s *selection) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&s.only, "only", "y", nil, "only export this playlist (repeatable)")
	cmd.Flags().StringArrayVarP(&s.exclude, "exclude", "x", nil, "do not export this playlist (repeatable)")
}

func (s *selection) keep(name string) bool {
	if len(s.only) > 0 && !slices.Contains(s.only, name) {
		return false
	}
	return !slices.Contains(s.exclude, name)
}

// tally accumulates what a command wrote.
type tally struct {
	files  int
	tracks int
	bytes  int
}

func (t *tally) add(w pipeline.Written) {
	t.files++
	t.tracks += w.Tracks
	t.bytes += w.Bytes
}

func (t *tally) report(a *app) {
	a.log.Infof("wrote %s playlists with %s tracks (%s), %s warnings",
		humanize.Comma(int64(t.files)),
		humanize.Comma(int64(t.tracks)),
		humanize.Bytes(uint64(t.bytes)),
		humanize.Comma(int64(a.log.Count(diag.LevelWarn))))
}
