package corpusdb

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/tidwall/gjson"

	"github.com/heartmarshall/kty/internal/kaikki"
)

// insertBatch is the number of rows per INSERT statement. SQLite caps bound
// parameters at 32766; four columns per row stay far below that.
const insertBatch = 500

var errInvalidJSON = errors.New("invalid json")

type row struct {
	lang, word, pos string
	entry           []byte
}

// Import copies every line of src into the index within one transaction and
// records the import. name identifies src in errors and in the import log.
// A line that is not a JSON object aborts the import and nothing is kept.
func (d *DB) Import(ctx context.Context, name string, src kaikki.LineSource) (int, error) {
	var n int
	err := runInTx(ctx, d.db, func(ctx context.Context) error {
		pending := make([]row, 0, insertBatch)
		line := 0
		for src.Scan() {
			line++
			raw := src.Bytes()
			if len(bytes.TrimSpace(raw)) == 0 {
				continue
			}
			if !gjson.ValidBytes(raw) {
				return &kaikki.LineError{Path: name, Line: line, Snippet: snippet(raw), Err: errInvalidJSON}
			}
			fields := gjson.GetManyBytes(raw, "lang_code", "word", "pos")
			pending = append(pending, row{
				lang:  fields[0].String(),
				word:  fields[1].String(),
				pos:   fields[2].String(),
				entry: d.enc.EncodeAll(raw, nil),
			})
			if len(pending) == insertBatch {
				if err := d.insert(ctx, pending); err != nil {
					return err
				}
				n += len(pending)
				pending = pending[:0]
				if n%(insertBatch*200) == 0 {
					d.log.DebugContext(ctx, "import progress", slog.String("source", name), slog.Int("records", n))
				}
			}
		}
		if err := src.Err(); err != nil {
			return fmt.Errorf("read %s after line %d: %w", name, line, err)
		}
		if len(pending) > 0 {
			if err := d.insert(ctx, pending); err != nil {
				return err
			}
			n += len(pending)
		}
		return d.logImport(ctx, name, n)
	})
	if err != nil {
		return 0, fmt.Errorf("import %s: %w", name, err)
	}

	d.log.InfoContext(ctx, "corpus imported",
		slog.String("source", name),
		slog.String("db", d.path),
		slog.Int("records", n),
	)
	return n, nil
}

func (d *DB) insert(ctx context.Context, rows []row) error {
	q := sq.Insert(table).Columns("lang", "word", "pos", "entry")
	for _, r := range rows {
		q = q.Values(r.lang, r.word, r.pos, r.entry)
	}
	query, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := querierFromCtx(ctx, d.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert records: %w", err)
	}
	return nil
}

func (d *DB) logImport(ctx context.Context, name string, n int) error {
	query, args, err := sq.Insert("imports").
		Columns("source", "records", "imported_at").
		Values(name, n, time.Now().UTC().Format(time.RFC3339)).
		ToSql()
	if err != nil {
		return fmt.Errorf("build import log: %w", err)
	}
	if _, err := querierFromCtx(ctx, d.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("log import: %w", err)
	}
	return nil
}

// Import is one row of the import log.
type Import struct {
	Source     string
	Records    int
	ImportedAt time.Time
}

// Imports returns the import log, oldest first.
func (d *DB) Imports(ctx context.Context) ([]Import, error) {
	query, args, err := sq.Select("source", "records", "imported_at").
		From("imports").
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build imports query: %w", err)
	}

	rows, err := querierFromCtx(ctx, d.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query imports: %w", err)
	}
	defer rows.Close()

	var out []Import
	for rows.Next() {
		var (
			imp Import
			at  string
		)
		if err := rows.Scan(&imp.Source, &imp.Records, &at); err != nil {
			return nil, fmt.Errorf("scan import: %w", err)
		}
		if imp.ImportedAt, err = time.Parse(time.RFC3339, at); err != nil {
			return nil, fmt.Errorf("parse import time %q: %w", at, err)
		}
		out = append(out, imp)
	}
	return out, rows.Err()
}

func snippet(line []byte) string {
	const limit = 80
	r := []rune(string(line))
	if len(r) > limit {
		return string(r[:limit]) + "..."
	}
	return string(r)
}
