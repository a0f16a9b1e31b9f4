// Package tablestore implements durable, crash-safe storage of flat CSV
// tables. Each table is one header-prefixed CSV file; full rewrites are
// staged to a temporary file and promoted with a single rename, and pure
// insertions take an append fast path. Mutations on a table serialize;
// reads always see the last fully committed version.
package tablestore

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"mesa/internal/models"
	"mesa/internal/observability"
)

// Schema describes how records of type T map onto CSV rows. Column order is
// part of the on-disk contract.
type Schema[T any] struct {
	Name    string
	Columns []string
	Encode  func(T) []string
	Decode  func([]string) (T, error)
}

// Table provides atomic read/rewrite access to one flat table.
type Table[T any] struct {
	fs     afero.Fs
	path   string
	schema Schema[T]
	logger *observability.TableLogger

	// mu serializes mutations; readers go straight to the committed file.
	mu sync.Mutex
}

// New creates a Table stored at dir/<name>.csv on the given filesystem.
// The file is created lazily on first write; an absent table reads as empty.
func New[T any](fs afero.Fs, dir string, schema Schema[T]) *Table[T] {
	return &Table[T]{
		fs:     fs,
		path:   filepath.Join(dir, schema.Name+".csv"),
		schema: schema,
		logger: observability.NewTableLogger(schema.Name),
	}
}

// Name returns the table name.
func (t *Table[T]) Name() string { return t.schema.Name }

// All returns every record in the table. A missing file is treated as an
// empty table, not an error.
func (t *Table[T]) All(ctx context.Context) ([]T, error) {
	f, err := t.fs.Open(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		observability.TableErrors.WithLabelValues(t.schema.Name, "read").Inc()
		t.logger.LogError(ctx, "read", err)
		return nil, models.NewIOError(err)
	}
	defer f.Close()

	records, err := t.decodeAll(f)
	if err != nil {
		observability.TableErrors.WithLabelValues(t.schema.Name, "read").Inc()
		t.logger.LogError(ctx, "read", err)
		return nil, err
	}
	return records, nil
}

// Replace atomically replaces the entire table contents. The new contents
// are staged to a sibling temporary file and promoted with one rename; on
// any failure the staging file is discarded and the committed table is left
// untouched.
func (t *Table[T]) Replace(ctx context.Context, records []T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.replaceLocked(ctx, records)
}

// Append adds one record without rewriting the table. The encoded row is
// written with a single write call so a crash mid-append leaves the table
// either with or without the record, never truncated.
func (t *Table[T]) Append(ctx context.Context, record T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	needHeader, err := t.missingOrEmpty()
	if err != nil {
		observability.TableErrors.WithLabelValues(t.schema.Name, "append").Inc()
		t.logger.LogError(ctx, "append", err)
		return models.NewIOError(err)
	}
	if needHeader {
		if err := w.Write(t.schema.Columns); err != nil {
			return models.NewIOError(err)
		}
	}
	if err := w.Write(t.schema.Encode(record)); err != nil {
		return models.NewIOError(err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return models.NewIOError(err)
	}

	f, err := t.fs.OpenFile(t.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		observability.TableErrors.WithLabelValues(t.schema.Name, "append").Inc()
		t.logger.LogError(ctx, "append", err)
		return models.NewIOError(err)
	}
	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		observability.TableErrors.WithLabelValues(t.schema.Name, "append").Inc()
		t.logger.LogError(ctx, "append", err)
		return models.NewIOError(err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return models.NewIOError(err)
	}
	if err := f.Close(); err != nil {
		return models.NewIOError(err)
	}

	observability.TableAppends.WithLabelValues(t.schema.Name).Inc()
	t.logger.LogAppend(ctx)
	return nil
}

// Update applies fn to the current table contents and commits the result as
// one atomic rewrite. The table's mutation lock is held across the
// read-modify-write, so concurrent updates on the same table serialize.
// The records slice passed to fn is owned by fn and may be mutated freely.
func (t *Table[T]) Update(ctx context.Context, fn func(records []T) ([]T, error)) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	current, err := t.readLocked(ctx)
	if err != nil {
		return nil, err
	}
	updated, err := fn(current)
	if err != nil {
		return nil, err
	}
	if err := t.replaceLocked(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (t *Table[T]) readLocked(ctx context.Context) ([]T, error) {
	f, err := t.fs.Open(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		t.logger.LogError(ctx, "read", err)
		return nil, models.NewIOError(err)
	}
	defer f.Close()
	return t.decodeAll(f)
}

func (t *Table[T]) replaceLocked(ctx context.Context, records []T) (err error) {
	staging := fmt.Sprintf("%s.%s.tmp", t.path, uuid.New().String()[:8])

	defer func() {
		if err != nil {
			// Discard the staging file on every failed exit path. The
			// committed table is only ever replaced by the rename below.
			_ = t.fs.Remove(staging)
			observability.TableErrors.WithLabelValues(t.schema.Name, "rewrite").Inc()
			t.logger.LogError(ctx, "rewrite", err)
		}
	}()

	f, err := t.fs.OpenFile(staging, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return models.NewIOError(err)
	}

	w := csv.NewWriter(f)
	if werr := w.Write(t.schema.Columns); werr != nil {
		f.Close()
		return models.NewIOError(werr)
	}
	for _, rec := range records {
		if werr := w.Write(t.schema.Encode(rec)); werr != nil {
			f.Close()
			return models.NewIOError(werr)
		}
	}
	w.Flush()
	if werr := w.Error(); werr != nil {
		f.Close()
		return models.NewIOError(werr)
	}
	if serr := f.Sync(); serr != nil {
		f.Close()
		return models.NewIOError(serr)
	}
	if cerr := f.Close(); cerr != nil {
		return models.NewIOError(cerr)
	}

	if rerr := t.fs.Rename(staging, t.path); rerr != nil {
		return models.NewIOError(rerr)
	}

	observability.TableRewrites.WithLabelValues(t.schema.Name).Inc()
	t.logger.LogRewrite(ctx, len(records))
	return nil
}

func (t *Table[T]) decodeAll(r io.Reader) ([]T, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, models.NewIOError(err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	// First row is the header written by Replace/Append.
	records := make([]T, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) != len(t.schema.Columns) {
			return nil, models.NewIOError(fmt.Errorf(
				"table %s: row has %d fields, want %d", t.schema.Name, len(row), len(t.schema.Columns)))
		}
		rec, err := t.schema.Decode(row)
		if err != nil {
			return nil, models.NewIOError(fmt.Errorf("table %s: %w", t.schema.Name, err))
		}
		records = append(records, rec)
	}
	return records, nil
}

func (t *Table[T]) missingOrEmpty() (bool, error) {
	info, err := t.fs.Stat(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, err
	}
	return info.Size() == 0, nil
}
