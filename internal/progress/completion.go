package progress

import "math"

// Ceiling is the upper clamp for a percent-complete value
type Ceiling int

const (
	// SingleCeiling clamps ratios of one entity against its baseline
	SingleCeiling Ceiling = 100
	// GroupedCeiling clamps grouped ratios, which may overshoot their baseline
	GroupedCeiling Ceiling = 150
)

// PercentOfBaseline returns round(value/baseline*100) clamped to [0, ceiling].
// A non-positive baseline yields 0.
func PercentOfBaseline(value, baseline float64, ceiling Ceiling) int {
	if baseline <= 0 {
		return 0
	}
	pct := math.Round(value / baseline * 100)
	if math.IsNaN(pct) {
		return 0
	}
	return int(math.Min(math.Max(pct, 0), float64(ceiling)))
}

// LevelCap is one entity's current level against its maximum
type LevelCap struct {
	Name  string `json:"name,omitempty"`
	Level int    `json:"level"`
	Cap   int    `json:"cap"`
}

// GroupCompletion is the mean of min(level, cap)/cap over rows with a positive
// cap, as a percentage rounded to one decimal. 0 when no row has a cap.
func GroupCompletion(rows []LevelCap) float64 {
	var total float64
	counted := 0
	for _, r := range rows {
		if r.Cap <= 0 {
			continue
		}
		level := min(max(r.Level, 0), r.Cap)
		total += float64(level) / float64(r.Cap)
		counted++
	}
	if counted == 0 {
		return 0
	}
	return round1(total / float64(counted) * 100)
}

// MeanPercent averages percentages, rounded to one decimal. 0 for no values.
func MeanPercent(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var total float64
	for _, v := range values {
		total += v
	}
	return round1(total / float64(len(values)))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
