package service

import (
	excelize "github.com/xuri/excelize/v2"

	"supply-service/internal/supply/store"
)

// exportHeader is the canonical column order. These headers map back to
// the same fields on re-ingestion, so an exported workbook round-trips.
var exportHeader = []interface{}{"날짜", "계획(GJ)", "실적(GJ)", "계획(m3)", "실적(m3)", "기온"}

// ExportWorkbook serializes the store back to a workbook, one row per
// record in date order. The inverse of ingestion.
func ExportWorkbook(st *store.Store, sheet string) (*excelize.File, error) {
	if sheet == "" {
		sheet = "연간"
	}
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(sheet, "A1", &exportHeader); err != nil {
		return nil, err
	}

	for i, r := range st.All() {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{
			r.Date.Format("2006-01-02"),
			r.PlannedGJ,
			r.ActualGJ,
			r.PlannedM3,
			r.ActualM3,
		}
		if r.Temperature != nil {
			row = append(row, *r.Temperature)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}
	return f, nil
}
