package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/heartmarshall/kty/internal/app/builder"
	"github.com/heartmarshall/kty/internal/config"
	"github.com/heartmarshall/kty/internal/dict"
	"github.com/heartmarshall/kty/internal/lang"
)

type command struct {
	name  string
	args  string
	help  string
	flags flagGroup

	minArgs int
	maxArgs int
	// nameArg is the position of the optional dictionary name argument.
	// Zero means the command takes none.
	nameArg int

	// plain commands need neither config nor builder.
	plain func(args []string) error
	run   func(ctx context.Context, b *builder.Builder, cfg *config.Config, args []string) error
}

var commands = []command{
	{
		name: "main", args: "<source> <target> [dict-name]",
		help:  "build the main dictionary",
		flags: flagsBuild, minArgs: 2, maxArgs: 3, nameArg: 2,
		run: buildCommand(dict.KindMain),
	},
	{
		name: "glossary", args: "<source> <target> [dict-name]",
		help:  "build a translation glossary from the source edition",
		flags: flagsBuild, minArgs: 2, maxArgs: 3, nameArg: 2,
		run: buildCommand(dict.KindGlossary),
	},
	{
		name: "glossary-extended", args: "<edition> <source> <target> [dict-name]",
		help:  "build a glossary between two languages through a third edition",
		flags: flagsBuild, minArgs: 3, maxArgs: 4, nameArg: 3,
		run: buildCommand(dict.KindGlossaryExtended),
	},
	{
		name: "ipa", args: "<source> <target> [dict-name]",
		help:  "build a pronunciation dictionary",
		flags: flagsBuild, minArgs: 2, maxArgs: 3, nameArg: 2,
		run: buildCommand(dict.KindIPA),
	},
	{
		name: "ipa-merged", args: "<target> [dict-name]",
		help:  "build a pronunciation dictionary merged over every edition",
		flags: flagsBuild, minArgs: 1, maxArgs: 2, nameArg: 1,
		run: buildCommand(dict.KindIPAMerged),
	},
	{
		name: "index", args: "<edition>",
		help:  "import an edition dump into the corpus index and describe it",
		flags: flagsIndex, minArgs: 1, maxArgs: 1,
		run: runIndex,
	},
	{
		name: "release", args: "",
		help:  "build every released dictionary of the configured editions",
		flags: flagsRelease,
		run:   runRelease,
	},
	{
		name: "iso", args: "",
		help:  "list supported languages",
		plain: runISO,
	},
}

func commandByName(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

// parseRequest reads the positional languages of a build command. Editions
// are checked where the variant reads from one: the target of main and ipa,
// the source of glossary and the first argument of glossary-extended.
func parseRequest(kind dict.Kind, args []string) (builder.Request, error) {
	req := builder.Request{Kind: kind, Edition: lang.Any(), Source: lang.Any(), Target: lang.Any()}

	var err error
	switch kind {
	case dict.KindMain, dict.KindIPA:
		if req.Source, err = lang.ParseSpec(args[0]); err != nil {
			return req, fmt.Errorf("source: %w", err)
		}
		if req.Target, err = lang.ParseEditionSpec(args[1]); err != nil {
			return req, fmt.Errorf("target: %w", err)
		}
	case dict.KindGlossary:
		if req.Source, err = lang.ParseEditionSpec(args[0]); err != nil {
			return req, fmt.Errorf("source: %w", err)
		}
		if req.Target, err = lang.ParseSpec(args[1]); err != nil {
			return req, fmt.Errorf("target: %w", err)
		}
	case dict.KindGlossaryExtended:
		if req.Edition, err = lang.ParseEditionSpec(args[0]); err != nil {
			return req, fmt.Errorf("edition: %w", err)
		}
		if req.Source, err = lang.ParseSpec(args[1]); err != nil {
			return req, fmt.Errorf("source: %w", err)
		}
		if req.Target, err = lang.ParseSpec(args[2]); err != nil {
			return req, fmt.Errorf("target: %w", err)
		}
	case dict.KindIPAMerged:
		if req.Target, err = lang.ParseSpec(args[0]); err != nil {
			return req, fmt.Errorf("target: %w", err)
		}
	}
	return req, nil
}

func buildCommand(kind dict.Kind) func(context.Context, *builder.Builder, *config.Config, []string) error {
	return func(ctx context.Context, b *builder.Builder, _ *config.Config, args []string) error {
		req, err := parseRequest(kind, args)
		if err != nil {
			return err
		}
		res, err := b.Build(ctx, req)
		if err != nil {
			return err
		}
		if len(res.Artifacts) == 0 {
			slog.Warn("no dictionary written: nothing matched", slog.String("request", res.Request.String()))
		}
		for _, a := range res.Artifacts {
			fmt.Println(a.Path)
		}
		return nil
	}
}

func runIndex(ctx context.Context, b *builder.Builder, _ *config.Config, args []string) error {
	edition, err := lang.ParseEdition(args[0])
	if err != nil {
		return err
	}
	info, err := b.Index(ctx, edition)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %s records\n", info.Path, humanize.Comma(int64(info.Records)))
	for _, imp := range info.Imports {
		fmt.Printf("  imported %s records from %s (%s)\n",
			humanize.Comma(int64(imp.Records)), imp.Source, humanize.Time(imp.ImportedAt))
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, lc := range info.Langs {
		fmt.Fprintf(w, "  %s\t%s\t%s\t\n", lc.Lang, lang.Lang(lc.Lang).Long(), humanize.Comma(int64(lc.Records)))
	}
	return w.Flush()
}

func runRelease(ctx context.Context, b *builder.Builder, cfg *config.Config, _ []string) error {
	editions := lang.Editions()
	if len(cfg.Release.Editions) > 0 {
		editions = make([]lang.Edition, len(cfg.Release.Editions))
		for i, e := range cfg.Release.Editions {
			editions[i] = lang.Edition(e)
		}
	}
	summary, err := b.Release(ctx, editions, cfg.Release.Workers)
	if err != nil {
		return err
	}
	fmt.Printf("%d jobs, %d dictionaries in %s\n", summary.Jobs, summary.Artifacts, summary.Duration.Round(time.Millisecond))
	return nil
}

func runISO([]string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ISO\tNAME\tNATIVE\tEDITION")
	for _, l := range lang.All() {
		edition := ""
		if l.IsEdition() {
			edition = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", l, l.Long(), l.Native(), edition)
	}
	return w.Flush()
}
