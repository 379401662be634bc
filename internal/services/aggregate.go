package services

import "math"

// CohortSnapshot is a read-time projection over all stored Results. It is
// recomputed from scratch on every request; nothing is cached.
type CohortSnapshot struct {
	Total          int                  `json:"total_results"`
	Distribution   map[Category]int     `json:"distribution"`
	Averages       map[Category]float64 `json:"averages"`
	CompletionRate float64              `json:"completion_rate"`
}

// Aggregate computes the cohort distribution and mean scores from the
// given Results. totalUsers comes from the identity layer and drives the
// completion rate (a percentage rounded to one decimal). An empty cohort
// yields a zeroed snapshot, not an error.
func Aggregate(results []*Result, totalUsers int) *CohortSnapshot {
	snap := &CohortSnapshot{
		Distribution: make(map[Category]int, len(Categories)),
		Averages:     make(map[Category]float64, len(Categories)),
	}
	for _, c := range Categories {
		snap.Distribution[c] = 0
		snap.Averages[c] = 0
	}
	sums := make(map[Category]int, len(Categories))
	for _, r := range results {
		if r == nil {
			continue
		}
		snap.Total++
		snap.Distribution[r.Dominant]++
		for _, c := range Categories {
			sums[c] += r.Scores[c]
		}
	}
	if snap.Total > 0 {
		for _, c := range Categories {
			snap.Averages[c] = float64(sums[c]) / float64(snap.Total)
		}
	}
	if totalUsers > 0 {
		rate := float64(snap.Total) / float64(totalUsers) * 100
		snap.CompletionRate = math.Round(rate*10) / 10
	}
	return snap
}
