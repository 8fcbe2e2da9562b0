package builder

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/kty/internal/dict"
	"github.com/heartmarshall/kty/internal/yomitan"
)

// emit writes one encoded dictionary.
func emit[I dict.IR](ctx context.Context, b *Builder, log *slog.Logger, req Request, out dict.Output[I]) (Artifact, error) {
	o := Output{
		Kind:    req.Kind,
		Edition: string(out.Langs.Edition),
		Source:  string(out.Langs.Source),
		Target:  string(out.Langs.Target),
	}
	if out.Key.Collapsed() {
		o.Edition = req.Edition.String()
	}
	logFound(ctx, log, out.Key, out.IR)

	if b.cfg.Build.SaveTemps {
		return b.writeTemps(ctx, log, o, out.Key, out.IR, out.Diagnostics, out.Batches)
	}
	return b.writeArchive(ctx, log, o, out.Batches)
}

// logFound reports what an accumulator holds before it is written.
func logFound(ctx context.Context, log *slog.Logger, key dict.Key, ir dict.IR) {
	tidy, ok := ir.(*dict.Tidy)
	if !ok {
		log.InfoContext(ctx, "found entries", slog.String("key", key.String()), slog.Int("entries", ir.Len()))
		return
	}
	log.InfoContext(ctx, "found entries",
		slog.String("key", key.String()),
		slog.Int("lemmas", tidy.LemmaCount()),
		slog.Int("forms", tidy.FormCount()),
		slog.Int("forms_inflection", tidy.FormCount(dict.FormInflection)),
		slog.Int("forms_extracted", tidy.FormCount(dict.FormExtracted)),
		slog.Int("forms_alt_of", tidy.FormCount(dict.FormAltOf)),
	)
}

func (b *Builder) writeArchive(ctx context.Context, log *slog.Logger, o Output, batches []yomitan.Batch) (Artifact, error) {
	path := b.layout.ArchivePath(o)
	idx := yomitan.NewIndex(b.layout.Title(o), o.Source, o.Target, b.now)

	sum, err := b.writer.WriteArchive(path, idx, batches)
	if err != nil {
		return Artifact{}, err
	}
	if fi, err := os.Stat(path); err == nil {
		log.DebugContext(ctx, "archive size", slog.String("path", path), slog.String("size", humanize.Bytes(uint64(fi.Size()))))
	}
	return Artifact{Output: o, Path: path, Banks: sum.Banks, Entries: sum.Entries}, nil
}

// writeTemps writes IR snapshots, diagnostics and loose banks under the temp
// directory of o instead of zipping.
func (b *Builder) writeTemps(ctx context.Context, log *slog.Logger, o Output, key dict.Key, ir dict.IR,
	diag *dict.Diagnostics, batches []yomitan.Batch) (Artifact, error) {
	if s, ok := ir.(dict.Snapshotter); ok {
		for _, snap := range s.Snapshots(key) {
			path, size, err := b.writeDoc(b.layout.TidyDir(o), snap.Name, snap.Value)
			if err != nil {
				return Artifact{}, fmt.Errorf("write snapshot %s: %w", snap.Name, err)
			}
			log.InfoContext(ctx, "wrote snapshot", slog.String("path", path), slog.String("size", humanize.Bytes(uint64(size))))
		}
	}

	if diag != nil && !diag.Empty() {
		reports := []struct {
			name   string
			report dict.Report
		}{
			{"pos", diag.POSReport()},
			{"tags", diag.TagReport()},
		}
		for _, r := range reports {
			if r.report.Empty() {
				continue
			}
			if _, _, err := b.writeDoc(b.layout.DiagnosticsDir(o), r.name, r.report); err != nil {
				return Artifact{}, fmt.Errorf("write %s diagnostics: %w", r.name, err)
			}
		}
	}

	dir := b.layout.TempDictDir(o)
	sum, err := b.writer.WriteDir(dir, batches)
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{Output: o, Path: dir, Banks: sum.Banks, Entries: sum.Entries}, nil
}

// writeDoc writes v as <dir>/<name>.json or .yaml, following the snapshot
// format, and returns the path and size written.
func (b *Builder) writeDoc(dir, name string, v any) (string, int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", 0, err
	}

	var (
		data []byte
		err  error
		ext  string
	)
	switch b.cfg.Build.SnapshotFormat {
	case "yaml":
		ext = ".yaml"
		data, err = yaml.Marshal(v)
	default:
		ext = ".json"
		if b.cfg.Build.Pretty {
			data, err = json.MarshalIndent(v, "", "  ")
		} else {
			data, err = json.Marshal(v)
		}
	}
	if err != nil {
		return "", 0, err
	}

	path := filepath.Join(dir, name+ext)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", 0, err
	}
	return path, len(data), nil
}
