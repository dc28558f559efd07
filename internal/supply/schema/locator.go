package schema

import (
	"strings"

	"supply-service/internal/supply/model"
	"supply-service/internal/utils"
)

// DefaultScanRows bounds the header scan so a huge sheet with no header
// fails fast instead of being walked end to end.
const DefaultScanRows = 20

// FindHeaderRow scans the grid top-to-bottom and returns the index of
// the first row that qualifies as a header: it either carries a 날짜
// column or the full 연/월/일 triple. Returns ErrHeaderNotFound when no
// row within the bound qualifies — callers must not default to row 0,
// that silently shifts every downstream column.
func FindHeaderRow(grid [][]string, scanRows int) (int, error) {
	if scanRows <= 0 {
		scanRows = DefaultScanRows
	}
	limit := len(grid)
	if limit > scanRows {
		limit = scanRows
	}
	for i := 0; i < limit; i++ {
		if isHeaderRow(grid[i]) {
			return i, nil
		}
	}
	return 0, model.ErrHeaderNotFound
}

// isHeaderRow is deliberately looser than the mapper: it tests token
// containment, while the mapper holds 연/월/일 to exact matches. A row
// can therefore locate as a header and still fail field mapping — that
// is the field-mapping error path, distinct from "no header at all".
func isHeaderRow(row []string) bool {
	var hasDate, hasYear, hasMonth, hasDay bool
	for _, cell := range row {
		h := utils.StripSpace(cell)
		if h == "" {
			continue
		}
		if matchSingleDate(h) {
			hasDate = true
			continue
		}
		hasYear = hasYear || strings.Contains(h, "연") || strings.Contains(h, "년")
		hasMonth = hasMonth || strings.Contains(h, "월")
		hasDay = hasDay || strings.Contains(h, "일")
	}
	return hasDate || (hasYear && hasMonth && hasDay)
}
