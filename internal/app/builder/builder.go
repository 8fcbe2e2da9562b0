// Package builder runs dictionary variants end to end: it resolves the
// corpora of a request, drives dict.Make over them and writes every
// resulting dictionary either as a Yomitan archive or as loose temp files.
package builder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/kty/internal/app"
	"github.com/heartmarshall/kty/internal/config"
	"github.com/heartmarshall/kty/internal/corpusdb"
	"github.com/heartmarshall/kty/internal/dict"
	"github.com/heartmarshall/kty/internal/kaikki"
	"github.com/heartmarshall/kty/internal/lang"
	"github.com/heartmarshall/kty/internal/yomitan"
	"github.com/heartmarshall/kty/pkg/ctxutil"
)

// Filters are the record filters given on the command line.
type Filters struct {
	Filter []kaikki.FieldFilter
	Reject []kaikki.FieldFilter
}

// Request is one dictionary build.
//
// Only glossary-extended reads Edition: the other variants derive it from
// their languages (main and ipa from the target, glossary from the source,
// ipa-merged reads every edition).
type Request struct {
	Kind    dict.Kind
	Edition lang.Spec
	Source  lang.Spec
	Target  lang.Spec
}

func (r Request) normalize() Request {
	switch r.Kind {
	case dict.KindMain, dict.KindIPA:
		r.Edition = r.Target
	case dict.KindGlossary:
		r.Edition = r.Source
	case dict.KindIPAMerged:
		r.Edition = lang.Any()
		r.Source = r.Target
	}
	return r
}

func (r Request) String() string {
	return fmt.Sprintf("%s %s:%s-%s", r.Kind, r.Edition, r.Source, r.Target)
}

// Artifact is one written dictionary.
type Artifact struct {
	Output  Output
	Path    string
	Banks   int
	Entries int
}

// Result reports a finished build.
type Result struct {
	Request   Request
	Stats     dict.Stats
	Artifacts []Artifact
	Duration  time.Duration
}

// Builder builds dictionaries. It is safe for concurrent use.
type Builder struct {
	log     *slog.Logger
	cfg     *config.Config
	layout  Layout
	filters Filters
	writer  *yomitan.Writer
	now     time.Time

	mu      sync.Mutex
	indexes map[lang.Edition]*corpusdb.DB
}

// New creates a Builder.
func New(log *slog.Logger, cfg *config.Config, filters Filters) *Builder {
	now := time.Now()
	return &Builder{
		log: log,
		cfg: cfg,
		layout: Layout{
			Root:         cfg.Build.RootDir,
			DictName:     cfg.Build.DictName,
			Experimental: cfg.Build.Experimental,
		},
		filters: filters,
		writer: yomitan.NewWriter(log, yomitan.WriterConfig{
			Pretty:           cfg.Build.Pretty,
			Experimental:     cfg.Build.Experimental,
			CompressionLevel: cfg.Build.CompressionLevel,
			Modified:         now,
		}),
		now:     now,
		indexes: make(map[lang.Edition]*corpusdb.DB),
	}
}

// Layout returns the path layout of the builder.
func (b *Builder) Layout() Layout { return b.layout }

// Close closes the corpus indexes opened by the builder.
func (b *Builder) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var first error
	for e, db := range b.indexes {
		if err := db.Close(); err != nil && first == nil {
			first = fmt.Errorf("close %s index: %w", e, err)
		}
		delete(b.indexes, e)
	}
	return first
}

// Build runs one request. Corpora are read from the files under the root
// directory, or from the corpus index when it is enabled.
func (b *Builder) Build(ctx context.Context, req Request) (Result, error) {
	open := b.openFile
	if b.cfg.Corpus.UseIndex {
		open = b.openIndexed
	}
	return b.run(ctx, req, open)
}

func (b *Builder) run(ctx context.Context, req Request, open dict.Opener) (Result, error) {
	req = req.normalize()
	if req.Edition.IsAll() {
		open = b.skipMissing(open)
	}
	switch req.Kind {
	case dict.KindMain:
		return build[*dict.Tidy](ctx, b, dict.Main{}, req, open)
	case dict.KindGlossary:
		return build[*dict.List[yomitan.TermEntry]](ctx, b, dict.Glossary{}, req, open)
	case dict.KindGlossaryExtended:
		return build[*dict.List[dict.Pivot]](ctx, b, dict.GlossaryExtended{}, req, open)
	case dict.KindIPA:
		return build[*dict.List[dict.Pronunciation]](ctx, b, dict.IPA{}, req, open)
	case dict.KindIPAMerged:
		return build[*dict.List[dict.Pronunciation]](ctx, b, dict.IPAMerged{}, req, open)
	default:
		return Result{Request: req}, fmt.Errorf("unknown dictionary kind %q", req.Kind)
	}
}

func build[I dict.IR](ctx context.Context, b *Builder, d dict.Dictionary[I], req Request, open dict.Opener) (Result, error) {
	if _, ok := ctxutil.RunIDFromCtx(ctx); !ok {
		ctx = ctxutil.WithRunID(ctx, uuid.New())
	}
	ctx = ctxutil.WithJob(ctx, req.String())
	log := app.ScopedLogger(ctx, b.log)

	start := time.Now()
	log.Info("starting build",
		slog.String("kind", string(req.Kind)),
		slog.String("edition", req.Edition.String()),
		slog.String("source", req.Source.String()),
		slog.String("target", req.Target.String()),
	)

	run := dict.Run{
		Edition: req.Edition,
		Source:  req.Source,
		Target:  req.Target,
		Options: dict.Options{Experimental: b.cfg.Build.Experimental},
	}

	res := Result{Request: req}
	stats, err := dict.Make(ctx, log, d, run, open, func(out dict.Output[I]) error {
		a, err := emit(ctx, b, log, req, out)
		if err != nil {
			return err
		}
		res.Artifacts = append(res.Artifacts, a)
		return nil
	})
	res.Stats = stats
	res.Duration = time.Since(start)
	if err != nil {
		return res, fmt.Errorf("%s: %w", req, err)
	}

	log.Info("build completed",
		slog.Int("records", stats.Records),
		slog.Int("matched", stats.Matched),
		slog.Int("dictionaries", stats.Emitted),
		slog.Int("empty", stats.Empty),
		slog.Duration("duration", res.Duration),
	)
	return res, nil
}

func (b *Builder) streamOptions(langs []lang.Lang) (kaikki.Options, []string) {
	codes := make([]string, len(langs))
	for i, l := range langs {
		codes[i] = string(l)
	}
	return kaikki.Options{
		Filter: b.filters.Filter,
		Reject: b.filters.Reject,
		First:  b.cfg.Build.First,
		Langs:  codes,
	}, codes
}

// openFile streams the corpus file serving req.
func (b *Builder) openFile(_ context.Context, edition lang.Edition, req dict.DatasetRequest, langs []lang.Lang) (dict.Corpus, error) {
	path, err := b.layout.Dataset(edition, req)
	if err != nil {
		return nil, err
	}
	src, err := kaikki.Open(path)
	if err != nil {
		return nil, err
	}
	b.log.Debug("reading dataset", slog.String("edition", string(edition)), slog.String("path", path))

	opts, _ := b.streamOptions(langs)
	return kaikki.NewStream(src, path, opts), nil
}

// skipMissing reads editions without a local dataset as empty, so that runs
// over every edition use whatever dumps are present.
func (b *Builder) skipMissing(open dict.Opener) dict.Opener {
	return func(ctx context.Context, edition lang.Edition, req dict.DatasetRequest, langs []lang.Lang) (dict.Corpus, error) {
		c, err := open(ctx, edition, req, langs)
		if errors.Is(err, ErrDatasetNotFound) {
			b.log.Debug("no dataset, skipping edition", slog.String("edition", string(edition)))
			return emptyCorpus{}, nil
		}
		return c, err
	}
}

type emptyCorpus struct{}

func (emptyCorpus) Next() (*kaikki.Record, error) { return nil, io.EOF }
func (emptyCorpus) Close() error                  { return nil }

// openIndexed streams the records of langs from the edition's corpus index.
func (b *Builder) openIndexed(ctx context.Context, edition lang.Edition, _ dict.DatasetRequest, langs []lang.Lang) (dict.Corpus, error) {
	db, err := b.index(ctx, edition)
	if err != nil {
		return nil, err
	}
	opts, codes := b.streamOptions(langs)
	src, err := db.Records(ctx, codes...)
	if err != nil {
		return nil, err
	}
	return kaikki.NewStream(src, db.Path(), opts), nil
}

// IndexInfo describes a corpus index.
type IndexInfo struct {
	Path    string
	Records int
	Langs   []corpusdb.LangCount
	Imports []corpusdb.Import
}

// Index opens the corpus index of edition, importing the edition dump when
// the index is empty, and describes it.
func (b *Builder) Index(ctx context.Context, edition lang.Edition) (IndexInfo, error) {
	db, err := b.index(ctx, edition)
	if err != nil {
		return IndexInfo{}, err
	}
	n, err := db.Count(ctx)
	if err != nil {
		return IndexInfo{}, err
	}
	langs, err := db.Langs(ctx)
	if err != nil {
		return IndexInfo{}, err
	}
	imports, err := db.Imports(ctx)
	if err != nil {
		return IndexInfo{}, err
	}
	return IndexInfo{Path: db.Path(), Records: n, Langs: langs, Imports: imports}, nil
}

func (b *Builder) index(ctx context.Context, edition lang.Edition) (*corpusdb.DB, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if db, ok := b.indexes[edition]; ok {
		return db, nil
	}

	db, err := corpusdb.Open(ctx, b.log, b.cfg.IndexPath(string(edition)))
	if err != nil {
		return nil, err
	}
	n, err := db.Count(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}
	if n == 0 {
		if err := b.importDump(ctx, db, edition); err != nil {
			db.Close()
			return nil, err
		}
	}
	b.indexes[edition] = db
	return db, nil
}

func (b *Builder) importDump(ctx context.Context, db *corpusdb.DB, edition lang.Edition) error {
	path, err := b.layout.EditionDump(edition)
	if err != nil {
		return fmt.Errorf("index %s: %w", edition, err)
	}
	src, err := kaikki.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	_, err = db.Import(ctx, path, src)
	return err
}
