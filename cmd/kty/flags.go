package main

import (
	"github.com/spf13/pflag"

	"github.com/heartmarshall/kty/internal/app/builder"
	"github.com/heartmarshall/kty/internal/config"
	"github.com/heartmarshall/kty/internal/kaikki"
)

// flagGroup selects the flags a command accepts on top of the common ones.
type flagGroup int

const (
	flagsNone flagGroup = iota
	flagsBuild
	flagsIndex
	flagsRelease
)

type flags struct {
	config   string
	verbose  bool
	rootDir  string
	useIndex bool

	filter       []string
	reject       []string
	first        int
	pretty       bool
	saveTemps    bool
	experimental bool

	workers  int
	editions string
}

func (f *flags) register(fs *pflag.FlagSet, group flagGroup) {
	if group == flagsNone {
		return
	}
	fs.StringVarP(&f.config, "config", "c", "", "path to YAML config file (default $KTY_CONFIG_PATH or ./kty.yaml)")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log at debug level")
	fs.StringVar(&f.rootDir, "root-dir", "", "root of the kaikki and dict directories")

	switch group {
	case flagsBuild:
		fs.BoolVar(&f.useIndex, "use-index", false, "read records from the SQLite corpus index")
		fs.StringArrayVar(&f.filter, "filter", nil, "keep records whose key equals value (key,value; repeatable)")
		fs.StringArrayVar(&f.reject, "reject", nil, "drop records whose key equals value (key,value; repeatable)")
		fs.IntVar(&f.first, "first", -1, "stop each dataset after this many records (-1 keeps all)")
		fs.BoolVar(&f.pretty, "pretty", false, "indent JSON output")
		fs.BoolVar(&f.saveTemps, "save-temps", false, "write snapshots and loose banks instead of a zip archive")
		fs.BoolVar(&f.experimental, "experimental", false, "enable experimental features")
	case flagsRelease:
		fs.IntVarP(&f.workers, "workers", "j", 4, "builds run in parallel")
		fs.StringVar(&f.editions, "editions", "", "comma-separated editions to release, or all")
		fs.BoolVar(&f.pretty, "pretty", false, "indent JSON output")
		fs.BoolVar(&f.experimental, "experimental", false, "enable experimental features")
	}
}

// apply copies the flags given on the command line over cfg.
func (f *flags) apply(fs *pflag.FlagSet, cfg *config.Config) {
	if f.verbose {
		cfg.Log.Level = "debug"
	}
	if fs.Changed("root-dir") {
		cfg.Build.RootDir = f.rootDir
	}
	if fs.Changed("use-index") {
		cfg.Corpus.UseIndex = f.useIndex
	}
	if fs.Changed("first") {
		cfg.Build.First = f.first
	}
	if fs.Changed("pretty") {
		cfg.Build.Pretty = f.pretty
	}
	if fs.Changed("save-temps") {
		cfg.Build.SaveTemps = f.saveTemps
	}
	if fs.Changed("experimental") {
		cfg.Build.Experimental = f.experimental
	}
	if fs.Changed("workers") {
		cfg.Release.Workers = f.workers
	}
	if fs.Changed("editions") {
		cfg.Release.EditionsRaw = f.editions
	}
}

func (f *flags) filters() (builder.Filters, error) {
	var out builder.Filters
	for _, s := range f.filter {
		ff, err := kaikki.ParseFieldFilter(s)
		if err != nil {
			return builder.Filters{}, err
		}
		out.Filter = append(out.Filter, ff)
	}
	for _, s := range f.reject {
		ff, err := kaikki.ParseFieldFilter(s)
		if err != nil {
			return builder.Filters{}, err
		}
		out.Reject = append(out.Reject, ff)
	}
	return out, nil
}
