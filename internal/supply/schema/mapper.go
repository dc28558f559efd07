package schema

import (
	"strings"

	"supply-service/internal/supply/model"
	"supply-service/internal/utils"
)

const mjToGJ = 1.0 / 1000

// fieldRule — one declarative mapping rule: predicate over the
// whitespace-stripped header text, the canonical field it resolves to,
// and the factor that brings the column's values to GJ.
type fieldRule struct {
	match func(h string) bool
	field model.Field
	scale float64
}

// rules is evaluated in order per header cell; the first match wins.
// Order is load-bearing:
//   - exact 연/월/일 before anything containment-based, so the bare 일
//     column is claimed before a substring rule could see it;
//   - unit-tagged quantity rules before the unit-less fallbacks, so
//     계획(m3) never lands on the energy fallback;
//   - the trailing fallbacks encode the "no unit token means already GJ"
//     policy for plain 계획/실적 headers.
var rules = []fieldRule{
	{matchYear, model.FieldYear, 1},
	{matchMonth, model.FieldMonth, 1},
	{matchDay, model.FieldDay, 1},
	{matchSingleDate, model.FieldDate, 1},

	{andU(matchPlanWord, hasMJ), model.FieldPlannedEnergy, mjToGJ},
	{andU(matchPlanWord, hasGJ), model.FieldPlannedEnergy, 1},
	{andU(matchActualWord, hasMJ), model.FieldActualEnergy, mjToGJ},
	{andU(matchActualWord, hasGJ), model.FieldActualEnergy, 1},

	{andU(matchPlanWord, hasM3), model.FieldPlannedVolume, 1},
	{andU(matchActualWord, hasM3), model.FieldActualVolume, 1},

	{matchTemperature, model.FieldTemperature, 1},

	// unit-less plan/actual headers are energy already expressed in GJ
	{matchPlanWord, model.FieldPlannedEnergy, 1},
	{matchActualWord, model.FieldActualEnergy, 1},
}

// MapFields resolves the header row's cells to a field mapping. Headers
// matching no rule are ignored; a duplicate match keeps the leftmost
// column. The mapping must resolve a complete date identity (날짜, or
// all of 연/월/일) or a *model.MappingError is returned.
func MapFields(header []string) (model.Mapping, error) {
	m := model.NewMapping()
	for col, cell := range header {
		h := utils.StripSpace(cell)
		if h == "" {
			continue
		}
		for _, r := range rules {
			if !r.match(h) {
				continue
			}
			if !m.Has(r.field) {
				m.Columns[r.field] = col
				if r.scale != 1 {
					m.Scale[r.field] = r.scale
				}
			}
			break
		}
	}
	if !m.HasDateIdentity() {
		return model.Mapping{}, &model.MappingError{Missing: m.MissingDateFields()}
	}
	return m, nil
}

// --- predicates (shared with the locator) ---

// Exact matches with a short allow-list: containment would let the bare
// 일 rule fire inside compounds like 실적일 or 공급일자.
func matchYear(h string) bool  { return h == "연" || h == "연도" || h == "년" || h == "년도" }
func matchMonth(h string) bool { return h == "월" }
func matchDay(h string) bool   { return h == "일" }

func matchSingleDate(h string) bool {
	if strings.Contains(h, "날짜") || strings.Contains(h, "일자") {
		return true
	}
	return strings.Contains(strings.ToLower(h), "date")
}

func matchPlanWord(h string) bool {
	return strings.Contains(h, "계획") || strings.Contains(h, "예상")
}

func matchActualWord(h string) bool {
	return strings.Contains(h, "실적")
}

func matchTemperature(h string) bool {
	return strings.Contains(h, "기온") || strings.Contains(h, "온도")
}

func hasGJ(h string) bool { return strings.Contains(strings.ToUpper(h), "GJ") }
func hasMJ(h string) bool { return strings.Contains(strings.ToUpper(h), "MJ") }

func hasM3(h string) bool {
	u := strings.ToUpper(h)
	return strings.Contains(u, "M3") || strings.Contains(h, "㎥") || strings.Contains(h, "m³")
}

func andU(ps ...func(string) bool) func(string) bool {
	return func(h string) bool {
		for _, p := range ps {
			if !p(h) {
				return false
			}
		}
		return true
	}
}
