package normalize

import (
	"regexp"
	"strings"
	"time"

	"supply-service/internal/supply/model"
	"supply-service/internal/utils"
)

// DefaultMaxDailyGJ — anything above this is a monthly/annual subtotal
// row masquerading as a daily one. Tunable via MAX_DAILY_GJ.
const DefaultMaxDailyGJ = 100000

type Options struct {
	MaxDailyGJ float64
}

// ymd forms: 2026-01-02, 2026.1.2, 2026/01/02, 2026년 1월 2일
var rxYMD = regexp.MustCompile(`^(\d{4})[.\-/년](\d{1,2})[.\-/월](\d{1,2})일?`)

// excelize renders unstyled date cells as mm-dd-yy
var shortLayouts = []string{"01-02-06", "1-2-06"}

// Normalize turns grid rows below the header into canonical records.
// Per-row failures are counted and skipped, never fatal: a bad date
// rejects the row, a bad number is just an unreported value (0). Rows
// that look like subtotals (day outside 1..31, implausible energy) are
// rejected separately so the caller can tell the two apart.
func Normalize(grid [][]string, headerRow int, m model.Mapping, opt Options) ([]model.Record, model.RejectStats) {
	if opt.MaxDailyGJ <= 0 {
		opt.MaxDailyGJ = DefaultMaxDailyGJ
	}

	var (
		out   []model.Record
		stats model.RejectStats
	)
	for i := headerRow + 1; i < len(grid); i++ {
		row := grid[i]
		if blankRow(row) {
			continue
		}

		date, dayComponent, ok := resolveDate(row, m)
		if !ok {
			stats.InvalidDate++
			continue
		}

		rec := model.Record{
			Date:      date,
			PlannedGJ: quantity(row, m, model.FieldPlannedEnergy),
			ActualGJ:  quantity(row, m, model.FieldActualEnergy),
			PlannedM3: quantity(row, m, model.FieldPlannedVolume),
			ActualM3:  quantity(row, m, model.FieldActualVolume),
		}
		if m.Has(model.FieldTemperature) {
			if v, ok := utils.ParseFloatKR(cellAt(row, m.Columns[model.FieldTemperature])); ok {
				rec.Temperature = &v
			}
		}

		if isAggregateRow(rec, dayComponent, opt) {
			stats.AggregateRow++
			continue
		}
		out = append(out, rec)
	}
	return out, stats
}

// resolveDate parses the mapped date cell, or composes the 연/월/일
// triple. dayComponent is the raw day value when the triple variant is
// in play (-1 otherwise) so the aggregate filter can range-check it.
func resolveDate(row []string, m model.Mapping) (date time.Time, dayComponent int, ok bool) {
	if m.Has(model.FieldDate) {
		d, ok := parseDate(cellAt(row, m.Columns[model.FieldDate]))
		return d, -1, ok
	}

	y, okY := utils.ParseFloatKR(cellAt(row, m.Columns[model.FieldYear]))
	mo, okM := utils.ParseFloatKR(cellAt(row, m.Columns[model.FieldMonth]))
	d, okD := utils.ParseFloatKR(cellAt(row, m.Columns[model.FieldDay]))
	if !okY || !okM || !okD {
		return time.Time{}, -1, false
	}
	dayComponent = int(d)
	// composition is validated later by the aggregate filter; here only
	// the obviously-not-a-date cases reject the row
	if y < 1 || mo < 1 || mo > 12 {
		return time.Time{}, dayComponent, false
	}
	return time.Date(int(y), time.Month(mo), int(d), 0, 0, 0, 0, time.UTC), dayComponent, true
}

func parseDate(s string) (time.Time, bool) {
	s = utils.StripSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	// rxYMD matches a prefix, so trailing time-of-day is ignored for free
	if m := rxYMD.FindStringSubmatch(s); m != nil {
		y, _ := utils.ParseFloatKR(m[1])
		mo, _ := utils.ParseFloatKR(m[2])
		d, _ := utils.ParseFloatKR(m[3])
		t := time.Date(int(y), time.Month(mo), int(d), 0, 0, 0, 0, time.UTC)
		if !validYMD(t, int(y), int(mo), int(d)) {
			return time.Time{}, false
		}
		return t, true
	}
	for _, layout := range shortLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return model.Day(t), true
		}
	}
	return time.Time{}, false
}

// validYMD rejects compositions time.Date silently rolled over (Apr 31 -> May 1).
func validYMD(t time.Time, y, mo, d int) bool {
	return t.Year() == y && int(t.Month()) == mo && t.Day() == d
}

// quantity coerces a mapped numeric cell, applies the MJ->GJ scale and
// clamps at zero. Absent column or unparseable cell means the value is
// simply not reported yet: 0, not a rejected row.
func quantity(row []string, m model.Mapping, f model.Field) float64 {
	col, ok := m.Columns[f]
	if !ok {
		return 0
	}
	v, ok := utils.ParseFloatKR(cellAt(row, col))
	if !ok {
		return 0
	}
	v *= m.ScaleFor(f)
	if v < 0 {
		return 0
	}
	return v
}

func isAggregateRow(rec model.Record, dayComponent int, opt Options) bool {
	if dayComponent >= 0 {
		if dayComponent < 1 || dayComponent > 31 {
			return true
		}
		if rec.Date.Day() != dayComponent { // time.Date rolled Apr 31 into May
			return true
		}
	}
	if rec.PlannedGJ > opt.MaxDailyGJ || rec.ActualGJ > opt.MaxDailyGJ {
		return true
	}
	return false
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
