package metrics

import (
	"time"

	"supply-service/internal/supply/model"
	"supply-service/internal/supply/store"
)

// Summarize computes the Day / MTD / YTD plan-vs-actual aggregates for
// a query date. Pure read over the store.
func Summarize(st *store.Store, t time.Time) model.Summary {
	t = model.Day(t)
	var day, mtd, ytd model.Aggregate

	for _, r := range st.All() {
		if r.Date.Year() != t.Year() || r.Date.After(t) {
			continue
		}
		add(&ytd, r)
		if r.Date.Month() == t.Month() {
			add(&mtd, r)
		}
		if r.Date.Equal(t) {
			add(&day, r)
		}
	}

	finish(&day)
	finish(&mtd)
	finish(&ytd)
	return model.Summary{Date: t, Day: day, MTD: mtd, YTD: ytd, Count: st.Len()}
}

func add(a *model.Aggregate, r model.Record) {
	a.PlannedGJ += r.PlannedGJ
	a.ActualGJ += r.ActualGJ
	a.PlannedM3 += r.PlannedM3
	a.ActualM3 += r.ActualM3
}

// finish sets the achievement rate. Zero plan means 0%, never NaN: the
// dashboard renders this number directly.
func finish(a *model.Aggregate) {
	if a.PlannedGJ > 0 {
		a.Rate = a.ActualGJ / a.PlannedGJ * 100
	}
}
