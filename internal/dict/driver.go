package dict

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/heartmarshall/kty/internal/kaikki"
	"github.com/heartmarshall/kty/internal/lang"
	"github.com/heartmarshall/kty/internal/yomitan"
	"github.com/heartmarshall/kty/pkg/ordmap"
)

// progressEvery is the number of records between progress logs.
const progressEvery = 10_000

// Corpus yields the records of one dataset. Next returns io.EOF at the end.
type Corpus interface {
	Next() (*kaikki.Record, error)
	Close() error
}

// Opener opens the dataset an edition contributes to a run. langs lists the
// lang_code values the run cares about; an opener may use it to skip other
// records early.
type Opener func(ctx context.Context, edition lang.Edition, req DatasetRequest, langs []lang.Lang) (Corpus, error)

// Run is one invocation of a dictionary variant.
type Run struct {
	Edition lang.Spec
	Source  lang.Spec
	Target  lang.Spec
	Options Options
}

// Output is the encoded result of one accumulator.
type Output[I IR] struct {
	Key Key
	// Langs is the triple the accumulator was encoded for. Its Edition is
	// empty for collapsed keys.
	Langs       Langs
	IR          I
	Batches     []yomitan.Batch
	Diagnostics *Diagnostics
}

// Stats summarizes a run.
type Stats struct {
	Records int
	Matched int
	Keys    int
	Emitted int
	Empty   int
}

type accumulator[I IR] struct {
	langs Langs
	ir    I
}

// Make runs d over the datasets of every edition of run and hands each
// non-empty accumulator to emit, in first-seen order. A decode error aborts
// the run; ctx is checked before each dataset is opened.
func Make[I IR](ctx context.Context, log *slog.Logger, d Dictionary[I], run Run, open Opener, emit func(Output[I]) error) (Stats, error) {
	var stats Stats
	accs := ordmap.New[Key, *accumulator[I]](8)

	for _, edition := range run.Edition.Variants(lang.Editions()) {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		triples := d.Triples(edition, run.Source, run.Target)
		if len(triples) == 0 {
			continue
		}
		req := d.Dataset(run.Source)

		var langs []lang.Lang
		for _, l := range triples {
			if rl := d.RelevantLang(l); !slices.Contains(langs, rl) {
				langs = append(langs, rl)
			}
		}

		corpus, err := open(ctx, edition, req, langs)
		if err != nil {
			return stats, fmt.Errorf("open %s dataset: %w", edition, err)
		}
		n, err := consume(log, d, run.Options, edition, triples, corpus, accs, &stats)
		closeErr := corpus.Close()
		if err != nil {
			return stats, err
		}
		if closeErr != nil {
			return stats, fmt.Errorf("close %s dataset: %w", edition, closeErr)
		}
		log.Info("dataset consumed", slog.String("kind", string(d.Kind())),
			slog.String("edition", string(edition)), slog.Int("records", n))
	}

	stats.Keys = accs.Len()
	for k, acc := range accs.All() {
		if acc.ir.Len() == 0 {
			log.Debug("nothing found", slog.String("key", k.String()))
			stats.Empty++
			continue
		}

		start := time.Now()
		d.Postprocess(acc.ir)
		diag := &Diagnostics{}
		batches := d.Encode(acc.langs, acc.ir, diag)
		log.Debug("encoded", slog.String("key", k.String()), slog.Int("ir_size", acc.ir.Len()),
			slog.Duration("duration", time.Since(start)))

		if err := emit(Output[I]{Key: k, Langs: acc.langs, IR: acc.ir, Batches: batches, Diagnostics: diag}); err != nil {
			return stats, fmt.Errorf("emit %s: %w", k, err)
		}
		stats.Emitted++
	}
	return stats, nil
}

func consume[I IR](log *slog.Logger, d Dictionary[I], opts Options, edition lang.Edition, triples []Langs,
	corpus Corpus, accs *ordmap.Map[Key, *accumulator[I]], stats *Stats) (int, error) {
	n := 0
	for {
		r, err := corpus.Next()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, fmt.Errorf("read %s dataset: %w", edition, err)
		}
		n++
		stats.Records++
		if n%progressEvery == 0 {
			log.Debug("progress", slog.String("edition", string(edition)), slog.Int("records", n))
		}

		for _, l := range triples {
			if r.LangCode != string(d.RelevantLang(l)) {
				continue
			}
			stats.Matched++
			k := d.Key(l)
			acc, _ := accs.GetOrInsert(k, func() *accumulator[I] {
				encLangs := l
				if k.Collapsed() {
					encLangs.Edition = ""
				}
				return &accumulator[I]{langs: encLangs, ir: d.NewIR()}
			})
			d.Preprocess(l, r, opts, acc.ir)
			d.Process(l, r, acc.ir)
		}
	}
}
