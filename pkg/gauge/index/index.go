package index

import (
	"sort"
	"time"
)

// Point is one dated per-article value: 1 for the count index, a
// sentiment score for the tone index.
type Point struct {
	Date  time.Time
	Value float64
}

// MonthlyPoint is the summed value of one calendar month, keyed by the
// month's last day.
type MonthlyPoint struct {
	MonthEnd time.Time
	Value    float64
}

// Row is one output row of a finished index: the month's metric paired
// with the aligned external reference value.
type Row struct {
	MonthEnd  time.Time
	Metric    float64
	Reference float64
}

// Observation is one daily sample of the external reference series.
type Observation struct {
	Date  time.Time
	Value float64
}

// AggregateMonthly groups points by calendar month, sums the values in
// each group, and returns one point per month present in the input,
// keyed by month-end and sorted ascending.
func AggregateMonthly(points []Point) []MonthlyPoint {
	sums := make(map[time.Time]float64)
	for _, p := range points {
		sums[MonthEnd(p.Date)] += p.Value
	}

	result := make([]MonthlyPoint, 0, len(sums))
	for end, sum := range sums {
		result = append(result, MonthlyPoint{MonthEnd: end, Value: sum})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].MonthEnd.Before(result[j].MonthEnd)
	})
	return result
}

// MonthEnd returns the last calendar day of t's month, at midnight UTC.
func MonthEnd(t time.Time) time.Time {
	// Day 0 of the next month is the last day of this one.
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC)
}

// AlignForwardFill reindexes the daily reference series onto the months'
// keys with forward fill, then inner-joins: each month inherits the most
// recent observation at or before its month-end, and months with no
// prior observation anywhere are dropped.
func AlignForwardFill(months []MonthlyPoint, series []Observation) []Row {
	sorted := make([]Observation, len(series))
	copy(sorted, series)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	var rows []Row
	for _, m := range months {
		ref, ok := latestAtOrBefore(sorted, m.MonthEnd)
		if !ok {
			continue
		}
		rows = append(rows, Row{MonthEnd: m.MonthEnd, Metric: m.Value, Reference: ref})
	}
	return rows
}

// latestAtOrBefore returns the value of the last observation dated at or
// before cutoff.
func latestAtOrBefore(sorted []Observation, cutoff time.Time) (float64, bool) {
	// First observation strictly after cutoff; the forward-fill source
	// is the one before it.
	i := sort.Search(len(sorted), func(i int) bool {
		return sorted[i].Date.After(cutoff)
	})
	if i == 0 {
		return 0, false
	}
	return sorted[i-1].Value, true
}
