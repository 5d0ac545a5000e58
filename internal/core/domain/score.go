package domain

import "math"

// ScoreScale declares how a raw score is expressed by the service.
type ScoreScale int

const (
	// ScalePercent scores are already on a 0–100 scale.
	ScalePercent ScoreScale = iota

	// ScaleProbability scores are on a 0–1 scale and are multiplied by 100.
	ScaleProbability

	// ScaleAuto treats values within [0,1] as probabilities and anything
	// larger as a percentage. Used where the service is inconsistent.
	ScaleAuto
)

// NormalizeScore maps a raw score to a bounded 0–100 bar value:
// round(clamp(score × k, 0, 100)). A missing score is 0.
func NormalizeScore(score *float64, scale ScoreScale) int {
	if score == nil || math.IsNaN(*score) {
		return 0
	}

	v := *score
	switch scale {
	case ScaleProbability:
		v *= 100
	case ScaleAuto:
		if v >= 0 && v <= 1 {
			v *= 100
		}
	case ScalePercent:
	}

	return int(math.Round(math.Max(0, math.Min(100, v))))
}
