package model

import "time"

// Field — canonical field identifiers every header variant resolves to.
type Field string

const (
	FieldDate          Field = "date"
	FieldYear          Field = "year"
	FieldMonth         Field = "month"
	FieldDay           Field = "day"
	FieldPlannedEnergy Field = "planned_energy"
	FieldActualEnergy  Field = "actual_energy"
	FieldPlannedVolume Field = "planned_volume"
	FieldActualVolume  Field = "actual_volume"
	FieldTemperature   Field = "temperature"
)

// NumericFields — every field carrying a quantity (everything but the date identity).
var NumericFields = []Field{
	FieldPlannedEnergy, FieldActualEnergy,
	FieldPlannedVolume, FieldActualVolume,
	FieldTemperature,
}

// Mapping — canonical field -> column index, plus per-field scale to GJ
// (1/1000 when the header said MJ, 1 otherwise).
type Mapping struct {
	Columns map[Field]int     `json:"columns"`
	Scale   map[Field]float64 `json:"scale,omitempty"`
}

func NewMapping() Mapping {
	return Mapping{
		Columns: make(map[Field]int),
		Scale:   make(map[Field]float64),
	}
}

func (m Mapping) Has(f Field) bool {
	_, ok := m.Columns[f]
	return ok
}

// ScaleFor returns the GJ conversion factor for a field (default 1).
func (m Mapping) ScaleFor(f Field) float64 {
	if s, ok := m.Scale[f]; ok && s != 0 {
		return s
	}
	return 1
}

// HasDateIdentity — either a single date column or the full year/month/day triple.
func (m Mapping) HasDateIdentity() bool {
	if m.Has(FieldDate) {
		return true
	}
	return m.Has(FieldYear) && m.Has(FieldMonth) && m.Has(FieldDay)
}

// MissingDateFields lists what is still needed to complete the date identity.
// Reported relative to the closer of the two variants.
func (m Mapping) MissingDateFields() []Field {
	if m.HasDateIdentity() {
		return nil
	}
	var missing []Field
	for _, f := range []Field{FieldYear, FieldMonth, FieldDay} {
		if !m.Has(f) {
			missing = append(missing, f)
		}
	}
	if len(missing) == 3 {
		return []Field{FieldDate}
	}
	return missing
}

// Record — the unit of truth in the store. One per calendar date.
// Numeric fields are already unit-normalized (GJ, m3) and non-negative.
type Record struct {
	Date        time.Time `json:"date"`
	PlannedGJ   float64   `json:"plannedGJ"`
	ActualGJ    float64   `json:"actualGJ"`
	PlannedM3   float64   `json:"plannedM3"`
	ActualM3    float64   `json:"actualM3"`
	Temperature *float64  `json:"temperature,omitempty"`
}

// Day normalizes a timestamp to its calendar date (UTC midnight) — the store key.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FieldSet marks which fields an upsert actually carries (subset-merge mode).
type FieldSet map[Field]bool

func Fields(fs ...Field) FieldSet {
	s := make(FieldSet, len(fs))
	for _, f := range fs {
		s[f] = true
	}
	return s
}

// Aggregate — plan vs actual sums for one window (day / MTD / YTD).
type Aggregate struct {
	PlannedGJ float64 `json:"plannedGJ"`
	ActualGJ  float64 `json:"actualGJ"`
	PlannedM3 float64 `json:"plannedM3"`
	ActualM3  float64 `json:"actualM3"`
	Rate      float64 `json:"rate"` // actual/planned*100, 0 when planned is 0
}

// Summary — the three windows for a query date.
type Summary struct {
	Date  time.Time `json:"date"`
	Day   Aggregate `json:"day"`
	MTD   Aggregate `json:"mtd"`
	YTD   Aggregate `json:"ytd"`
	Count int       `json:"records"` // records in store, for the caller's context line
}

// RankResult — 1-based competition ranks. Applicable is false when the
// queried actual is not positive (not yet reported).
type RankResult struct {
	Applicable bool `json:"applicable"`
	Overall    int  `json:"overall,omitempty"`
	SameMonth  int  `json:"sameMonth,omitempty"`
}

// RejectStats counts rows dropped during one normalization pass.
type RejectStats struct {
	InvalidDate  int `json:"invalidDate"`
	AggregateRow int `json:"aggregateRow"`
}

func (s RejectStats) Total() int { return s.InvalidDate + s.AggregateRow }
