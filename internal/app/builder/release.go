package builder

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/kty/internal/dict"
	"github.com/heartmarshall/kty/internal/lang"
	"github.com/heartmarshall/kty/pkg/ctxutil"
)

// ReleaseJobs lists the builds of a release of edition: main and ipa from
// every language into the edition, and glossaries from the edition into
// every other language.
func ReleaseJobs(edition lang.Edition) []Request {
	var jobs []Request
	for _, source := range lang.All() {
		// Finnish is not released from the English edition.
		if edition == "en" && source == "fi" {
			continue
		}
		for _, kind := range []dict.Kind{dict.KindMain, dict.KindIPA} {
			jobs = append(jobs, Request{Kind: kind, Source: lang.One(source), Target: lang.One(edition)})
		}
	}
	for _, target := range lang.All() {
		if target == edition {
			continue
		}
		jobs = append(jobs, Request{Kind: dict.KindGlossary, Source: lang.One(edition), Target: lang.One(target)})
	}
	return jobs
}

// ReleaseSummary reports a finished release.
type ReleaseSummary struct {
	Jobs      int
	Artifacts int
	Results   []Result
	Duration  time.Duration
}

// Release builds the release jobs of every edition with at most workers
// builds in flight. Releases always read through the corpus index; every
// index is prepared before the first job starts. The first failing job
// cancels the jobs that have not started yet.
func (b *Builder) Release(ctx context.Context, editions []lang.Edition, workers int) (ReleaseSummary, error) {
	start := time.Now()
	if _, ok := ctxutil.RunIDFromCtx(ctx); !ok {
		ctx = ctxutil.WithRunID(ctx, uuid.New())
	}

	for _, e := range editions {
		if _, err := b.index(ctx, e); err != nil {
			return ReleaseSummary{}, fmt.Errorf("prepare %s index: %w", e, err)
		}
	}

	var jobs []Request
	for _, e := range editions {
		jobs = append(jobs, ReleaseJobs(e)...)
	}
	b.log.InfoContext(ctx, "starting release",
		slog.Int("editions", len(editions)),
		slog.Int("jobs", len(jobs)),
		slog.Int("workers", workers),
	)

	var (
		mu      sync.Mutex
		summary = ReleaseSummary{Jobs: len(jobs)}
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := b.run(gctx, job, b.openIndexed)
			if err != nil {
				return err
			}
			mu.Lock()
			summary.Results = append(summary.Results, res)
			summary.Artifacts += len(res.Artifacts)
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()
	summary.Duration = time.Since(start)
	if err != nil {
		return summary, fmt.Errorf("release: %w", err)
	}

	b.log.InfoContext(ctx, "release completed",
		slog.Int("jobs", summary.Jobs),
		slog.Int("dictionaries", summary.Artifacts),
		slog.Duration("duration", summary.Duration),
	)
	return summary, nil
}
