package domain

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
)

// ConfidenceScorer produces a detection confidence in [0, 1]. frame carries the
// raw sensor or image payload that triggered the report; it may be nil.
type ConfidenceScorer interface {
	Score(ctx context.Context, frame []byte) (float64, error)
}

// MockScorer stands in for a real detector. It ignores the frame and returns a
// uniform value from [Min, Max] rounded to four decimal places.
type MockScorer struct {
	min, max float64
	float    func() float64 // uniform in [0, 1)
}

// NewMockScorer returns a scorer over [lo, hi]. The range must satisfy
// 0 <= lo <= hi <= 1.
func NewMockScorer(lo, hi float64) (*MockScorer, error) {
	if math.IsNaN(lo) || math.IsNaN(hi) || lo < 0 || hi > 1 || lo > hi {
		return nil, fmt.Errorf("invalid confidence range [%v, %v]", lo, hi)
	}
	return &MockScorer{min: lo, max: hi, float: rand.Float64}, nil
}

func (s *MockScorer) Score(_ context.Context, _ []byte) (float64, error) {
	v := s.min + s.float()*(s.max-s.min)
	v = math.Round(v*10000) / 10000
	// Rounding can step just outside a range whose bounds carry more than
	// four decimals.
	return math.Min(math.Max(v, s.min), s.max), nil
}

// Analyse scores a report and classifies its severity.
func Analyse(ctx context.Context, scorer ConfidenceScorer, hazardType HazardType, frame []byte) (float64, Severity, error) {
	confidence, err := scorer.Score(ctx, frame)
	if err != nil {
		return 0, "", fmt.Errorf("score hazard: %w", err)
	}
	if confidence < 0 || confidence > 1 || math.IsNaN(confidence) {
		return 0, "", fmt.Errorf("score hazard: confidence %v outside [0, 1]", confidence)
	}
	return confidence, Classify(hazardType, confidence), nil
}
