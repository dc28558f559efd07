package metrics

import (
	"time"

	"supply-service/internal/supply/model"
	"supply-service/internal/supply/store"
)

// Rank computes 1-based competition ranks for an actual value: overall
// against the whole store, and against records sharing the query date's
// calendar month across all years. rank = 1 + count(strictly greater);
// ties share a rank. The record stored at date itself is excluded so a
// stored day never ranks against itself.
//
// Non-positive actuals are "not yet reported", not observations: the
// result comes back with Applicable=false.
func Rank(st *store.Store, date time.Time, actual float64) model.RankResult {
	if actual <= 0 {
		return model.RankResult{}
	}
	date = model.Day(date)
	overall, sameMonth := 1, 1
	for _, r := range st.All() {
		if r.Date.Equal(date) {
			continue
		}
		if r.ActualGJ > actual {
			overall++
			if r.Date.Month() == date.Month() {
				sameMonth++
			}
		}
	}
	return model.RankResult{Applicable: true, Overall: overall, SameMonth: sameMonth}
}
