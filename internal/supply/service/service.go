package service

import (
	"github.com/rs/zerolog"

	"supply-service/internal/supply/model"
	"supply-service/internal/supply/normalize"
	"supply-service/internal/supply/schema"
	"supply-service/internal/supply/store"
)

// Mode selects how an ingestion pass merges into the store.
type Mode string

const (
	// ModeReplace: a record from this pass fully replaces the stored
	// record for its date.
	ModeReplace Mode = "replace"
	// ModeMerge: only the fields this file actually mapped overwrite;
	// the mode multi-source loads (plan file, then actuals file) use.
	ModeMerge Mode = "merge"
)

func ParseMode(s string) Mode {
	if s == string(ModeMerge) {
		return ModeMerge
	}
	return ModeReplace
}

type Options struct {
	ScanRows   int
	MaxDailyGJ float64
}

// Result summarizes one ingestion pass for the caller.
type Result struct {
	Upserted  int               `json:"upserted"`
	Skipped   model.RejectStats `json:"skipped"`
	HeaderRow int               `json:"headerRow"`
	Mapping   model.Mapping     `json:"mapping"`
	Mode      Mode              `json:"mode"`
	Source    string            `json:"source"`
}

// Ingest runs one full pass over a grid: locate the header, map the
// columns, normalize every row, then upsert. The pass is atomic — the
// store is only touched after the whole grid normalized, so a
// HeaderNotFound or mapping failure leaves existing records intact.
// Per-row drops never fail the pass; they come back as counters.
func Ingest(st *store.Store, grid [][]string, mode Mode, source string, opt Options, log zerolog.Logger) (Result, error) {
	headerRow, err := schema.FindHeaderRow(grid, opt.ScanRows)
	if err != nil {
		return Result{}, err
	}
	mapping, err := schema.MapFields(grid[headerRow])
	if err != nil {
		return Result{}, err
	}

	recs, skipped := normalize.Normalize(grid, headerRow, mapping, normalize.Options{MaxDailyGJ: opt.MaxDailyGJ})

	switch mode {
	case ModeMerge:
		st.UpsertSubset(recs, mappedFields(mapping), source)
	default:
		st.Upsert(recs, source)
	}

	if skipped.Total() > 0 {
		log.Info().
			Int("invalid_date", skipped.InvalidDate).
			Int("aggregate_row", skipped.AggregateRow).
			Msg("rows skipped as invalid")
	}

	return Result{
		Upserted:  len(recs),
		Skipped:   skipped,
		HeaderRow: headerRow,
		Mapping:   mapping,
		Mode:      mode,
		Source:    source,
	}, nil
}

// mappedFields — the subset-merge footprint of a pass is exactly the
// numeric fields its file resolved.
func mappedFields(m model.Mapping) model.FieldSet {
	fs := make(model.FieldSet)
	for _, f := range model.NumericFields {
		if m.Has(f) {
			fs[f] = true
		}
	}
	return fs
}
