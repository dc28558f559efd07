package fileio

import (
	"bytes"
	"io"

	excelize "github.com/xuri/excelize/v2"
)

func readXLSX(r io.Reader, sheetPref string) ([][]string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet, ok := matchSheetName(f.GetSheetList(), sheetPref)
	if !ok {
		sheet = f.GetSheetName(0)
	}
	return f.GetRows(sheet)
}
