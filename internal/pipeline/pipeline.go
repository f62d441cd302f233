// Package pipeline contains the run driver: it acquires the raw document,
// partitions it per lottery, and pushes each batch through the
// clean → features → persist stages, reporting progress and metrics.
//
// The driver processes lottery types strictly sequentially; each batch is
// an independent value and the store connection is scoped to a single
// batch write. Whether one lottery's fatal error aborts the whole run is
// the driver's continue_on_error policy, not the stages'.
package pipeline

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/PauloHMTeixeira/etl-loteria-federal/internal/clean"
	"github.com/PauloHMTeixeira/etl-loteria-federal/internal/config"
	"github.com/PauloHMTeixeira/etl-loteria-federal/internal/dataset"
	"github.com/PauloHMTeixeira/etl-loteria-federal/internal/datasource/feed"
	"github.com/PauloHMTeixeira/etl-loteria-federal/internal/features"
	"github.com/PauloHMTeixeira/etl-loteria-federal/internal/loterias"
	"github.com/PauloHMTeixeira/etl-loteria-federal/internal/metrics"
	"github.com/PauloHMTeixeira/etl-loteria-federal/internal/persist"
	"github.com/PauloHMTeixeira/etl-loteria-federal/internal/storage"
	"github.com/PauloHMTeixeira/etl-loteria-federal/pkg/records"
)

// Runner executes one full ETL run for a pipeline spec.
type Runner struct {
	Spec config.Pipeline
	Log  zerolog.Logger
}

// Summary reports what a run accomplished.
type Summary struct {
	Lotteries int      // batches processed
	Persisted int64    // total rows written
	Failed    []string // lotteries skipped under continue_on_error
}

// Run loads and partitions the document, then drives every batch through
// the three stages in sorted lottery order.
func (r Runner) Run(ctx context.Context) (Summary, error) {
	var sum Summary

	rows, err := r.loadSource(ctx)
	if err != nil {
		return sum, err
	}
	batches, err := dataset.Partition(rows)
	if err != nil {
		return sum, err
	}
	r.Log.Info().Int("rows", len(rows)).Int("lotteries", len(batches)).Msg("document partitioned")

	if r.Spec.Partition.WriteCSV {
		if err := dataset.WritePartitions(r.Spec.Partition.Dir, batches); err != nil {
			return sum, err
		}
	}

	storageCfg := storage.Config{Kind: r.Spec.Storage.Kind, DSN: r.Spec.Storage.DB.DSN}

	for _, name := range r.order(batches) {
		log := r.Log.With().Str("loteria", name).Logger()
		raw := batches[name]
		metrics.RecordRows(name, "raw", int64(raw.Len()))

		cleaned := r.timed(name, "clean", func() records.Batch { return clean.Clean(raw) })
		if dropped := raw.Len() - cleaned.Len(); dropped > 0 {
			metrics.RecordRows(name, "dropped", int64(dropped))
			log.Debug().Int("dropped", dropped).Msg("rows removed by cleaning")
		}

		enriched := r.timed(name, "features", func() records.Batch { return features.Enrich(cleaned) })

		if enriched.Len() == 0 {
			log.Warn().Msg("no rows survived cleaning; nothing to persist")
			continue
		}

		start := time.Now()
		err := persist.Replace(ctx, storageCfg, enriched)
		metrics.RecordStage(name, "persist", err, time.Since(start))
		if err != nil {
			if r.Spec.Runtime.ContinueOnError {
				log.Error().Err(err).Msg("persistence failed; continuing with next lottery")
				sum.Failed = append(sum.Failed, name)
				continue
			}
			return sum, fmt.Errorf("pipeline: %s: %w", name, err)
		}

		metrics.RecordRows(name, "persisted", int64(enriched.Len()))
		sum.Lotteries++
		sum.Persisted += int64(enriched.Len())
		log.Info().
			Int("rows_in", raw.Len()).
			Int("rows_out", enriched.Len()).
			Int("columns", len(enriched.Columns)).
			Msg("lottery persisted")
	}

	r.Log.Info().
		Int("lotteries", sum.Lotteries).
		Int64("rows", sum.Persisted).
		Strs("failed", sum.Failed).
		Msg("run complete")
	return sum, nil
}

// timed wraps an in-memory stage with duration metrics. In-memory stages
// cannot fail; errors only exist at the persistence boundary.
func (r Runner) timed(loteria, stage string, fn func() records.Batch) records.Batch {
	start := time.Now()
	out := fn()
	metrics.RecordStage(loteria, stage, nil, time.Since(start))
	return out
}

// order returns the batch names to process: sorted, filtered by the
// spec's lottery list when present.
func (r Runner) order(batches map[string]records.Batch) []string {
	want := map[string]struct{}{}
	for _, l := range r.Spec.Lotteries {
		want[loterias.NormalizeName(l)] = struct{}{}
	}
	names := make([]string, 0, len(batches))
	for name := range batches {
		if len(want) > 0 {
			if _, ok := want[name]; !ok {
				continue
			}
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// loadSource acquires the raw document from the configured source.
func (r Runner) loadSource(ctx context.Context) ([]records.Record, error) {
	switch r.Spec.Source.Kind {
	case "file":
		return dataset.LoadFile(r.Spec.Source.File.Path)
	case "http":
		client, err := feed.NewClient(feed.Config{
			BaseURL:     r.Spec.Source.HTTP.BaseURL,
			Concurrency: r.Spec.Source.HTTP.Concurrency,
		})
		if err != nil {
			return nil, err
		}
		lotteries := r.Spec.Lotteries
		if len(lotteries) == 0 {
			lotteries = loterias.Known()
		}
		normalized := make([]string, 0, len(lotteries))
		for _, l := range lotteries {
			normalized = append(normalized, loterias.NormalizeName(l))
		}
		return client.FetchAll(ctx, normalized)
	default:
		return nil, fmt.Errorf("pipeline: unsupported source kind %q", r.Spec.Source.Kind)
	}
}
