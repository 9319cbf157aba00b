package report

import "github.com/Netcracker/qubership-accessibility-scanner/view"

const MaxScore = 100

var impactWeights = map[view.Impact]int{
	view.ImpactCritical: 30,
	view.ImpactSerious:  20,
	view.ImpactModerate: 10,
	view.ImpactMinor:    5,
}

// ImpactWeight is the score penalty for one violation; unknown impact weighs as minor.
func ImpactWeight(impact view.Impact) int {
	return impactWeights[impact.OrMinor()]
}

// CalculateAccessibilityScore is a linear penalty heuristic, not a calibrated metric.
func CalculateAccessibilityScore(violations []view.Violation) int {
	score := MaxScore
	for _, v := range violations {
		score -= ImpactWeight(v.Impact)
	}
	if score < 0 {
		return 0
	}
	return score
}

// GetImpactDistribution counts violations per impact, most severe first.
// Missing impact is counted as minor, same as in the score. Empty buckets are omitted.
func GetImpactDistribution(violations []view.Violation) []view.ImpactBucket {
	counts := make(map[view.Impact]int, len(view.Impacts))
	for _, v := range violations {
		counts[v.Impact.OrMinor()]++
	}
	result := make([]view.ImpactBucket, 0, len(counts))
	for _, impact := range view.Impacts {
		if counts[impact] > 0 {
			result = append(result, view.ImpactBucket{Name: impact, Value: counts[impact]})
		}
	}
	return result
}
