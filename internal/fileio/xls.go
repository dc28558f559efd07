// Legacy .xls reader: fix the table width ourselves and read every cell
// up to it — Row.LastCol lies on sparse rows.
package fileio

import (
	"bytes"
	"errors"
	"io"
	"strings"

	xls "github.com/extrame/xls"
)

// probe a sane number of columns looking for the widest non-empty row
func computeMaxCols(sheet *xls.WorkSheet) int {
	const probeMax = 256
	maxCols := 0
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			continue
		}
		for j := 0; j < probeMax; j++ {
			if strings.TrimSpace(row.Col(j)) != "" && j+1 > maxCols {
				maxCols = j + 1
			}
		}
	}
	if maxCols == 0 {
		maxCols = 1
	}
	return maxCols
}

func readXLS(r io.Reader, sheetPref string) ([][]string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	// gas-supply .xls exports are usually EUC-KR, occasionally UTF-8
	var wb *xls.WorkBook
	tryCharsets := []string{"euc-kr", "utf-8", "cp949"}
	var lastErr error
	for _, ch := range tryCharsets {
		wb, err = xls.OpenReader(bytes.NewReader(b), ch)
		if err == nil && wb != nil {
			lastErr = nil
			break
		}
		lastErr = err
	}
	if wb == nil {
		if lastErr == nil {
			lastErr = errors.New("xls: failed to open workbook")
		}
		return nil, lastErr
	}

	sheet := pickXLSSheet(wb, sheetPref)
	if sheet == nil {
		return nil, nil
	}

	maxCols := computeMaxCols(sheet)
	rows := make([][]string, 0, int(sheet.MaxRow)+1)
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		cols := make([]string, maxCols)
		if row != nil {
			for j := 0; j < maxCols; j++ {
				cols[j] = strings.TrimSpace(row.Col(j))
			}
		}
		rows = append(rows, cols)
	}
	return rows, nil
}

func pickXLSSheet(wb *xls.WorkBook, sheetPref string) *xls.WorkSheet {
	pref := strings.TrimSpace(sheetPref)
	if pref != "" {
		for i := 0; i < wb.NumSheets(); i++ {
			if sh := wb.GetSheet(i); sh != nil && strings.TrimSpace(sh.Name) == pref {
				return sh
			}
		}
	}
	return wb.GetSheet(0)
}
