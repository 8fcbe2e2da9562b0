// Package corpusdb keeps a kaikki corpus in a SQLite database indexed by
// language, so that repeated builds over one language skip the rest of an
// edition dump.
//
// Records are stored as zstd-compressed JSON lines next to their lang, word
// and pos. The schema is managed by embedded goose migrations.
package corpusdb

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	sq "github.com/Masterminds/squirrel"
	"github.com/klauspost/compress/zstd"
	"github.com/pressly/goose/v3"

	// Registers the "sqlite" database/sql driver.
	_ "modernc.org/sqlite"
)

const table = "wiktextract"

//go:embed migrations/*.sql
var migrations embed.FS

// DB is an open corpus index.
type DB struct {
	db   *sql.DB
	log  *slog.Logger
	path string

	enc *zstd.Encoder
	dec *zstd.Decoder
}

// Open opens or creates the index at path and applies pending migrations.
func Open(ctx context.Context, log *slog.Logger, path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create index dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(10000)")
	if err != nil {
		return nil, fmt.Errorf("open index %s: %w", path, err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping index %s: %w", path, err)
	}
	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		db.Close()
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &DB{db: db, log: log, path: path, enc: enc, dec: dec}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("migrations fs: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, fsys)
	if err != nil {
		return fmt.Errorf("goose new provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// Close releases the database and the codecs.
func (d *DB) Close() error {
	d.dec.Close()
	if err := d.enc.Close(); err != nil {
		d.db.Close()
		return fmt.Errorf("close zstd encoder: %w", err)
	}
	return d.db.Close()
}

// Path returns the database file.
func (d *DB) Path() string { return d.path }

// Count returns the number of records, restricted to langs when given.
func (d *DB) Count(ctx context.Context, langs ...string) (int, error) {
	q := sq.Select("COUNT(*)").From(table)
	if len(langs) > 0 {
		q = q.Where(sq.Eq{"lang": langs})
	}
	query, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var n int
	if err := querierFromCtx(ctx, d.db).QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}

// Langs returns the distinct languages in the index with their record
// counts, most frequent first.
func (d *DB) Langs(ctx context.Context) ([]LangCount, error) {
	query, args, err := sq.Select("lang", "COUNT(*) AS n").
		From(table).
		GroupBy("lang").
		OrderBy("n DESC", "lang ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build langs query: %w", err)
	}

	rows, err := querierFromCtx(ctx, d.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query langs: %w", err)
	}
	defer rows.Close()

	var out []LangCount
	for rows.Next() {
		var lc LangCount
		if err := rows.Scan(&lc.Lang, &lc.Records); err != nil {
			return nil, fmt.Errorf("scan lang: %w", err)
		}
		out = append(out, lc)
	}
	return out, rows.Err()
}

// LangCount is a language and its number of records.
type LangCount struct {
	Lang    string
	Records int
}
