// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enrich estimates growth velocity and confidence for a keyword
// from its historical demand-score series.
// Implements: prd002-scoring (R3);
//
//	docs/ARCHITECTURE § Scoring.
package enrich

import (
	"fmt"
	"math"

	"github.com/pdiddy/trend-engine/pkg/types"
)

// Enrich computes velocity, trend category, a confidence estimate, and a
// display-only explanation for one keyword. series is the keyword's
// historical demand scores in chronological order, oldest first.
func Enrich(keyword string, demandScore float64, series []float64) types.Enrichment {
	velocity := Velocity(series)
	category := categorize(velocity, demandScore)
	confidence := confidenceScore(velocity, demandScore, series)

	return types.Enrichment{
		Velocity:        velocity,
		Category:        category,
		ConfidenceScore: confidence,
		ConfidenceLabel: confidenceLabel(confidence),
		Explanation:     explain(keyword, velocity, demandScore, category),
	}
}

// Velocity is the percentage change between the mean of the second half
// of the series and the mean of the first half. A series with fewer than
// two points has no direction and yields 0. A zero first-half mean would
// divide by zero; in that case a second-half mean above 10 counts as
// emergence from a flat baseline (100.0), anything else as 0 (R3.1).
func Velocity(series []float64) float64 {
	if len(series) < 2 {
		return 0.0
	}

	mid := len(series) / 2
	firstMean := mean(series[:mid])
	secondMean := mean(series[mid:])

	if firstMean == 0 {
		if secondMean > 10 {
			return 100.0
		}
		return 0.0
	}
	return (secondMean - firstMean) / firstMean * 100.0
}

// categorize buckets a keyword. The arms are mutually exclusive and
// checked in priority order: spiking, then emerging, then stable (R3.2).
func categorize(velocity, demandScore float64) types.TrendCategory {
	switch {
	case velocity > 60 || demandScore > 80:
		return types.TrendSpiking
	case velocity >= 30 && velocity <= 60 && demandScore < 60:
		return types.TrendEmerging
	default:
		return types.TrendStable
	}
}

// confidenceScore starts at 0.5 and adjusts for series volatility,
// signal strength, and velocity plausibility, clamped to [0, 1] (R3.3).
func confidenceScore(velocity, demandScore float64, series []float64) float64 {
	score := 0.5

	sd := stddev(series)
	if sd < 10 {
		score += 0.2
	} else if sd > 30 {
		score -= 0.2
	}

	if demandScore > 60 {
		score += 0.15
	} else if demandScore < 20 {
		score -= 0.15
	}

	if math.Abs(velocity) <= 100 {
		score += 0.1
	}

	return math.Min(1.0, math.Max(0.0, score))
}

func confidenceLabel(score float64) types.ConfidenceLabel {
	switch {
	case score >= 0.7:
		return types.ConfidenceHigh
	case score >= 0.4:
		return types.ConfidenceMedium
	default:
		return types.ConfidenceLow
	}
}

// explain composes a short deterministic sentence from the velocity
// magnitude, demand tier, and category. Display only (R3.5).
func explain(keyword string, velocity, demandScore float64, category types.TrendCategory) string {
	var movement string
	switch {
	case velocity > 60:
		movement = fmt.Sprintf("searches up %.0f%% over the period", velocity)
	case velocity >= 30:
		movement = fmt.Sprintf("searches growing steadily (+%.0f%%)", velocity)
	case velocity > -30:
		movement = "search interest holding flat"
	default:
		movement = fmt.Sprintf("searches down %.0f%%", math.Abs(velocity))
	}

	var demand string
	switch {
	case demandScore > 80:
		demand = "very strong demand"
	case demandScore > 60:
		demand = "strong demand"
	case demandScore > 40:
		demand = "moderate demand"
	default:
		demand = "weak demand"
	}

	return fmt.Sprintf("%q is %s: %s with %s.", keyword, category, movement, demand)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stddev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	sumSq := 0.0
	for _, v := range values {
		d := v - m
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)))
}
