// Package persist implements the third pipeline stage: serializing a
// feature-enriched batch into the relational store, one relation per
// lottery, always as a full replace.
//
// A fresh Repository is opened per batch and released on every path;
// storage faults propagate as errors with no retries.
package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/PauloHMTeixeira/etl-loteria-federal/internal/ddl"
	"github.com/PauloHMTeixeira/etl-loteria-federal/internal/loterias"
	"github.com/PauloHMTeixeira/etl-loteria-federal/internal/storage"
	"github.com/PauloHMTeixeira/etl-loteria-federal/internal/transformer/builtin"
	"github.com/PauloHMTeixeira/etl-loteria-federal/pkg/records"
)

// ErrEmptyBatch is returned when a batch has no rows; without a row there is
// no lottery identifier to name the relation after. The driver skips such
// batches before calling Replace.
var ErrEmptyBatch = errors.New("persist: empty batch")

// Replace writes the batch to the store, destroying any prior relation of
// the same name. The relation name is the batch's normalized lottery
// identifier.
func Replace(ctx context.Context, cfg storage.Config, b records.Batch) error {
	if b.Len() == 0 {
		return ErrEmptyBatch
	}
	table := loterias.NormalizeName(builtin.AsString(b.Rows[0]["loteria"]))
	if table == "" {
		return fmt.Errorf("persist: batch has no loteria value")
	}

	enc := EncodeLists(b)
	def := ddl.TableDef{Name: table, Columns: ddl.Infer(enc.Columns, enc.Rows)}
	stmts, err := storage.BuildReplaceDDL(cfg.Kind, def)
	if err != nil {
		return err
	}

	repo, err := storage.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer repo.Close()

	for _, stmt := range stmts {
		if err := repo.Exec(ctx, stmt); err != nil {
			return err
		}
	}

	rows := make([][]any, 0, enc.Len())
	for _, r := range enc.Rows {
		row := make([]any, len(enc.Columns))
		for i, c := range enc.Columns {
			row[i] = bindValue(r[c])
		}
		rows = append(rows, row)
	}
	if _, err := repo.CopyFrom(ctx, table, enc.Columns, rows); err != nil {
		return err
	}
	return nil
}

// EncodeLists rewrites every column that holds structured values into its
// flat JSON text encoding; the relational model has no native list type.
// Scalar columns pass through unchanged.
func EncodeLists(b records.Batch) records.Batch {
	structured := make([]string, 0)
	for _, col := range b.Columns {
		for _, r := range b.Rows {
			if isStructured(r[col]) {
				structured = append(structured, col)
				break
			}
		}
	}
	if len(structured) == 0 {
		return b
	}
	for _, r := range b.Rows {
		for _, col := range structured {
			v := r[col]
			if v == nil {
				continue
			}
			if enc, err := json.Marshal(v); err == nil {
				r[col] = string(enc)
			} else {
				r[col] = nil
			}
		}
	}
	return b
}

func isStructured(v any) bool {
	switch v.(type) {
	case []any, []int64, []string, map[string]any:
		return true
	default:
		return false
	}
}

// bindValue flattens a record value into something every driver binds
// natively: time.Time becomes an ISO date string, json.Number becomes
// int64/float64, everything else passes through.
func bindValue(v any) any {
	switch t := v.(type) {
	case time.Time:
		return t.Format("2006-01-02")
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	default:
		return v
	}
}
