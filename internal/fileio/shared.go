package fileio

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ReadGrid picks a parser by extension and returns the selected sheet
// as an untyped grid of cell strings. sheetPref is tried first by name
// (연간 for the annual supply exports), falling back to the first
// sheet; CSV has a single implicit sheet and ignores it.
func ReadGrid(r io.Reader, filename, sheetPref string) ([][]string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xlsx":
		return readXLSX(r, sheetPref)
	case ".xls":
		return readXLS(r, sheetPref)
	case ".csv":
		return readCSV(r)
	default:
		return nil, fmt.Errorf("unsupported file: %s", filename)
	}
}

func matchSheetName(names []string, pref string) (string, bool) {
	pref = strings.TrimSpace(pref)
	if pref == "" {
		return "", false
	}
	for _, n := range names {
		if strings.TrimSpace(n) == pref {
			return n, true
		}
	}
	return "", false
}
