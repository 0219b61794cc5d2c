package scoring

import (
	"fmt"
	"math"

	"github.com/neuralnexus/assistant/internal/core/domain"
)

const (
	weightAvgQuality  = 0.4
	weightConsistency = 0.3
	weightSourceCount = 0.3

	// singleSourceConsistency is the fixed neutral value used when variance
	// is undefined (fewer than two sources).
	singleSourceConsistency = 0.5
)

// Confidence aggregates per-source quality into one trust score plus
// human-readable reasons. Empty input yields score 0 and a "No sources found"
// reason. The reasons list may be empty when no threshold triggers.
func Confidence(signals []domain.SourceSignal, currentYear int) domain.ConfidenceResult {
	if len(signals) == 0 {
		return domain.ConfidenceResult{Score: 0, Reasons: []string{"No sources found"}}
	}

	scores := make([]float64, len(signals))
	for i, sig := range signals {
		scores[i] = SourceQuality(sig, currentYear)
	}
	return aggregate(scores)
}

func aggregate(scores []float64) domain.ConfidenceResult {
	avgScore := mean(scores)

	consistency := singleSourceConsistency
	if len(scores) > 1 {
		consistency = 1 - sampleStdev(scores)
	}

	countScore := float64(len(scores)) / 5
	if countScore > 1 {
		countScore = 1
	}

	score := weightAvgQuality*avgScore + weightConsistency*consistency + weightSourceCount*countScore

	reasons := make([]string, 0, 3)
	if avgScore > 0.7 {
		reasons = append(reasons, "High-quality sources found")
	}
	if consistency > 0.7 {
		reasons = append(reasons, "Consistent information across sources")
	}
	if countScore > 0.6 {
		reasons = append(reasons, fmt.Sprintf("Multiple sources (%d) corroborate the information", len(scores)))
	}

	return domain.ConfidenceResult{Score: clamp01(score), Reasons: reasons}
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleStdev computes the n-1 standard deviation, matching the consistency
// definition for two or more sources.
func sampleStdev(values []float64) float64 {
	avg := mean(values)
	sum := 0.0
	for _, v := range values {
		diff := v - avg
		sum += diff * diff
	}
	return math.Sqrt(sum / float64(len(values)-1))
}
