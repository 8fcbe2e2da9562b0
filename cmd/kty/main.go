// Command kty converts Wiktionary data extracted by wiktextract (Kaikki JSONL
// dumps) into Yomitan dictionaries.
//
// Usage:
//
//	kty main <source> <target> [dict-name]
//	kty glossary <source> <target> [dict-name]
//	kty glossary-extended <edition> <source> <target> [dict-name]
//	kty ipa <source> <target> [dict-name]
//	kty ipa-merged <target> [dict-name]
//	kty index <edition>
//	kty release
//	kty iso
//
// Languages are ISO codes or "all". Dumps are read from <root-dir>/kaikki and
// dictionaries written under <root-dir>/dict.
//
// Exit codes: 0 = success, 1 = error, 2 = usage error.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/heartmarshall/kty/internal/app"
	"github.com/heartmarshall/kty/internal/app/builder"
	"github.com/heartmarshall/kty/internal/config"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	name := os.Args[1]
	switch name {
	case "-h", "--help", "help":
		usage()
		return
	case "-V", "--version", "version":
		fmt.Println("kty", app.BuildVersion())
		return
	}

	cmd, ok := commandByName(name)
	if !ok {
		fmt.Fprintf(os.Stderr, "kty: unknown command %q\n\n", name)
		usage()
		os.Exit(2)
	}

	var f flags
	fs := pflag.NewFlagSet("kty "+cmd.name, pflag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: kty %s %s\n\n%s\n\nFlags:\n", cmd.name, cmd.args, cmd.help)
		fs.PrintDefaults()
	}
	f.register(fs, cmd.flags)
	if err := fs.Parse(os.Args[2:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		os.Exit(2)
	}
	args := fs.Args()
	if len(args) < cmd.minArgs || len(args) > cmd.maxArgs {
		fs.Usage()
		os.Exit(2)
	}

	if cmd.run == nil {
		if err := cmd.plain(args); err != nil {
			fmt.Fprintln(os.Stderr, "kty:", err)
			os.Exit(1)
		}
		return
	}

	filters, err := f.filters()
	if err != nil {
		fmt.Fprintln(os.Stderr, "kty:", err)
		os.Exit(2)
	}

	cfg, logger, err := app.Setup(f.config, func(cfg *config.Config) {
		f.apply(fs, cfg)
		if cmd.nameArg > 0 && len(args) > cmd.nameArg {
			cfg.Build.DictName = args[cmd.nameArg]
		}
	})
	if err != nil {
		log.Fatalf("setup: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b := builder.New(logger, cfg, filters)
	err = cmd.run(ctx, b, cfg, args)
	if cerr := b.Close(); cerr != nil {
		logger.Warn("close corpus indexes", slog.String("error", cerr.Error()))
	}
	if err != nil {
		logger.Error(cmd.name+" failed", slog.String("error", err.Error()))
		stop()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "kty %s\n\nUsage: kty <command> [flags] <args>\n\nCommands:\n", app.BuildVersion())
	for _, c := range commands {
		fmt.Fprintf(os.Stderr, "  %-18s %s\n", c.name, c.help)
	}
	fmt.Fprintln(os.Stderr, "\nRun 'kty <command> --help' for the flags of a command.")
}
