package schema_test

import (
	"errors"
	"testing"

	"supply-service/internal/supply/model"
	"supply-service/internal/supply/schema"
)

func TestMapFields_SingleDateVariant(t *testing.T) {
	m, err := schema.MapFields([]string{"날짜", "계획(GJ)", "실적(GJ)", "계획(m3)", "실적(m3)", "기온"})
	if err != nil {
		t.Fatalf("MapFields failed: %v", err)
	}
	want := map[model.Field]int{
		model.FieldDate:          0,
		model.FieldPlannedEnergy: 1,
		model.FieldActualEnergy:  2,
		model.FieldPlannedVolume: 3,
		model.FieldActualVolume:  4,
		model.FieldTemperature:   5,
	}
	for f, col := range want {
		if got, ok := m.Columns[f]; !ok || got != col {
			t.Fatalf("%s -> %d (ok=%v), want %d", f, got, ok, col)
		}
	}
}

func TestMapFields_TripleVariant(t *testing.T) {
	m, err := schema.MapFields([]string{"연도", "월", "일", "예상(GJ)", "실적(GJ)"})
	if err != nil {
		t.Fatalf("MapFields failed: %v", err)
	}
	if !m.Has(model.FieldYear) || !m.Has(model.FieldMonth) || !m.Has(model.FieldDay) {
		t.Fatalf("triple not fully mapped: %v", m.Columns)
	}
	if m.Columns[model.FieldPlannedEnergy] != 3 {
		t.Fatalf("예상(GJ) should map to planned energy, got %v", m.Columns)
	}
}

func TestMapFields_MJScale(t *testing.T) {
	m, err := schema.MapFields([]string{"날짜", "계획(MJ)", "실적(MJ)"})
	if err != nil {
		t.Fatalf("MapFields failed: %v", err)
	}
	if s := m.ScaleFor(model.FieldPlannedEnergy); s != 1.0/1000 {
		t.Fatalf("planned scale=%v, want 0.001", s)
	}
	if s := m.ScaleFor(model.FieldActualEnergy); s != 1.0/1000 {
		t.Fatalf("actual scale=%v, want 0.001", s)
	}
}

func TestMapFields_NoUnitTokenMeansGJ(t *testing.T) {
	// bare plan/actual headers carry energy already in GJ
	m, err := schema.MapFields([]string{"날짜", "공급계획", "공급실적"})
	if err != nil {
		t.Fatalf("MapFields failed: %v", err)
	}
	if m.Columns[model.FieldPlannedEnergy] != 1 || m.Columns[model.FieldActualEnergy] != 2 {
		t.Fatalf("fallback energy mapping wrong: %v", m.Columns)
	}
	if s := m.ScaleFor(model.FieldPlannedEnergy); s != 1 {
		t.Fatalf("scale=%v, want 1 (no unit token means GJ)", s)
	}
}

func TestMapFields_VolumeBeatsEnergyFallback(t *testing.T) {
	// 계획(m3) must land on volume, not on the unit-less energy fallback
	m, err := schema.MapFields([]string{"날짜", "계획(m3)", "실적(㎥)"})
	if err != nil {
		t.Fatalf("MapFields failed: %v", err)
	}
	if !m.Has(model.FieldPlannedVolume) || !m.Has(model.FieldActualVolume) {
		t.Fatalf("volume fields not mapped: %v", m.Columns)
	}
	if m.Has(model.FieldPlannedEnergy) || m.Has(model.FieldActualEnergy) {
		t.Fatalf("volume headers must not map energy: %v", m.Columns)
	}
}

func TestMapFields_DayRuleDoesNotMatchCompounds(t *testing.T) {
	// 실적 contains no bare 일 match; 공급일자 is a date header, not a day column
	m, err := schema.MapFields([]string{"공급일자", "실적(GJ)"})
	if err != nil {
		t.Fatalf("MapFields failed: %v", err)
	}
	if m.Has(model.FieldDay) {
		t.Fatalf("compound header mapped as day: %v", m.Columns)
	}
	if m.Columns[model.FieldDate] != 0 {
		t.Fatalf("공급일자 should map to date: %v", m.Columns)
	}
}

func TestMapFields_WhitespaceTolerance(t *testing.T) {
	m, err := schema.MapFields([]string{" 날 짜 ", "계획 (GJ)", "실적 (GJ)"})
	if err != nil {
		t.Fatalf("MapFields failed: %v", err)
	}
	if !m.Has(model.FieldDate) || !m.Has(model.FieldPlannedEnergy) || !m.Has(model.FieldActualEnergy) {
		t.Fatalf("whitespace-laden headers not resolved: %v", m.Columns)
	}
}

func TestMapFields_LeftmostColumnKeptOnDuplicate(t *testing.T) {
	m, err := schema.MapFields([]string{"날짜", "실적(GJ)", "실적(GJ)"})
	if err != nil {
		t.Fatalf("MapFields failed: %v", err)
	}
	if m.Columns[model.FieldActualEnergy] != 1 {
		t.Fatalf("duplicate header must keep column 1, got %d", m.Columns[model.FieldActualEnergy])
	}
}

func TestMapFields_MissingDateIdentity(t *testing.T) {
	_, err := schema.MapFields([]string{"계획(GJ)", "실적(GJ)"})
	var me *model.MappingError
	if !errors.As(err, &me) {
		t.Fatalf("err=%v, want MappingError", err)
	}
	if len(me.Missing) == 0 {
		t.Fatalf("MappingError must name the unresolved fields")
	}
}

func TestMapFields_IncompleteTriple(t *testing.T) {
	_, err := schema.MapFields([]string{"연", "월", "실적(GJ)"})
	var me *model.MappingError
	if !errors.As(err, &me) {
		t.Fatalf("err=%v, want MappingError", err)
	}
	if len(me.Missing) != 1 || me.Missing[0] != model.FieldDay {
		t.Fatalf("Missing=%v, want [day]", me.Missing)
	}
}

func TestMapFields_UnknownHeadersIgnored(t *testing.T) {
	m, err := schema.MapFields([]string{"날짜", "비고", "담당자", "실적(GJ)"})
	if err != nil {
		t.Fatalf("unknown headers must not fail the mapping: %v", err)
	}
	if len(m.Columns) != 2 {
		t.Fatalf("mapped=%v, want exactly date+actual", m.Columns)
	}
}
