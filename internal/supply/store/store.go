package store

import (
	"sort"
	"time"

	"supply-service/internal/supply/model"
)

// Store is the per-session source of truth: one canonical record per
// calendar date plus the label of the pass that last wrote it. It is
// not safe for concurrent writers — the session registry serializes
// access per session.
type Store struct {
	records    map[time.Time]model.Record
	provenance map[time.Time]string
}

func New() *Store {
	return &Store{
		records:    make(map[time.Time]model.Record),
		provenance: make(map[time.Time]string),
	}
}

// Upsert merges records in full-replace mode: a later record for the
// same date wins wholesale, no field-by-field blending.
func (s *Store) Upsert(recs []model.Record, source string) {
	for _, r := range recs {
		key := model.Day(r.Date)
		r.Date = key
		s.records[key] = r
		s.provenance[key] = source
	}
}

// UpsertSubset merges records field-subset style: only the fields named
// in present overwrite the stored record, everything else survives.
// This is what lets a plan-only file and an actuals-only file coexist —
// upserted plan-then-actual, the actual pass does not zero the plan.
func (s *Store) UpsertSubset(recs []model.Record, present model.FieldSet, source string) {
	for _, r := range recs {
		s.UpsertOne(r, present, source)
	}
}

// UpsertOne merges a single record in subset mode. Interactive edits
// (one cell, one date) come through here.
func (s *Store) UpsertOne(r model.Record, present model.FieldSet, source string) {
	key := model.Day(r.Date)
	cur, ok := s.records[key]
	if !ok {
		cur = model.Record{Date: key}
	}
	if present[model.FieldPlannedEnergy] {
		cur.PlannedGJ = r.PlannedGJ
	}
	if present[model.FieldActualEnergy] {
		cur.ActualGJ = r.ActualGJ
	}
	if present[model.FieldPlannedVolume] {
		cur.PlannedM3 = r.PlannedM3
	}
	if present[model.FieldActualVolume] {
		cur.ActualM3 = r.ActualM3
	}
	if present[model.FieldTemperature] {
		cur.Temperature = r.Temperature
	}
	s.records[key] = cur
	s.provenance[key] = source
}

// Query returns the record for a date, or false when absent.
func (s *Store) Query(date time.Time) (model.Record, bool) {
	r, ok := s.records[model.Day(date)]
	return r, ok
}

// Provenance reports which pass last wrote the record for a date.
func (s *Store) Provenance(date time.Time) string {
	return s.provenance[model.Day(date)]
}

// Range returns records with from <= date <= to, ordered by date.
func (s *Store) Range(from, to time.Time) []model.Record {
	from, to = model.Day(from), model.Day(to)
	out := make([]model.Record, 0)
	for key, r := range s.records {
		if !key.Before(from) && !key.After(to) {
			out = append(out, r)
		}
	}
	sortByDate(out)
	return out
}

// All returns every record ordered by date.
func (s *Store) All() []model.Record {
	out := make([]model.Record, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r)
	}
	sortByDate(out)
	return out
}

func (s *Store) Len() int { return len(s.records) }

// Reset drops everything. The only way records leave the store.
func (s *Store) Reset() {
	s.records = make(map[time.Time]model.Record)
	s.provenance = make(map[time.Time]string)
}

func sortByDate(recs []model.Record) {
	sort.Slice(recs, func(i, j int) bool { return recs[i].Date.Before(recs[j].Date) })
}
