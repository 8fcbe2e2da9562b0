package corpusdb

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/klauspost/compress/zstd"

	"github.com/heartmarshall/kty/internal/kaikki"
)

// Records returns the decompressed JSON lines of every record whose lang is
// in langs, in import order. No langs means every record.
//
// The source holds a connection until it is closed.
func (d *DB) Records(ctx context.Context, langs ...string) (kaikki.LineSource, error) {
	q := sq.Select("entry").From(table).OrderBy("id")
	if len(langs) > 0 {
		q = q.Where(sq.Eq{"lang": langs})
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build records query: %w", err)
	}

	rows, err := querierFromCtx(ctx, d.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	return &rowSource{rows: rows, dec: d.dec}, nil
}

// rowSource adapts *sql.Rows to kaikki.LineSource.
type rowSource struct {
	rows *sql.Rows
	dec  *zstd.Decoder

	blob []byte
	line []byte
	err  error
}

func (s *rowSource) Scan() bool {
	if s.err != nil || !s.rows.Next() {
		return false
	}
	if err := s.rows.Scan(&s.blob); err != nil {
		s.err = fmt.Errorf("scan record: %w", err)
		return false
	}
	line, err := s.dec.DecodeAll(s.blob, s.line[:0])
	if err != nil {
		s.err = fmt.Errorf("decompress record: %w", err)
		return false
	}
	s.line = line
	return true
}

func (s *rowSource) Bytes() []byte { return s.line }

func (s *rowSource) Err() error {
	if s.err != nil {
		return s.err
	}
	return s.rows.Err()
}

func (s *rowSource) Close() error { return s.rows.Close() }
