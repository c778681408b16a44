package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMockScorer_RejectsInvalidRange(t *testing.T) {
	cases := []struct {
		name   string
		lo, hi float64
	}{
		{"negative min", -0.1, 0.5},
		{"max above one", 0.5, 1.1},
		{"min above max", 0.9, 0.8},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewMockScorer(tc.lo, tc.hi)
			require.Error(t, err)
		})
	}
}

func TestMockScorer_StaysInRange(t *testing.T) {
	s, err := NewMockScorer(0.75, 0.98)
	require.NoError(t, err)

	for i := 0; i < 5000; i++ {
		v, err := s.Score(context.Background(), nil)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, 0.75)
		assert.LessOrEqual(t, v, 0.98)
	}
}

func TestMockScorer_RoundsToFourDecimals(t *testing.T) {
	s, err := NewMockScorer(0, 1)
	require.NoError(t, err)
	s.float = func() float64 { return 0.123456789 }

	v, err := s.Score(context.Background(), []byte("frame"))
	require.NoError(t, err)
	assert.Equal(t, 0.1235, v)
}

func TestMockScorer_ClampsAfterRounding(t *testing.T) {
	s, err := NewMockScorer(0.10001, 0.98765)
	require.NoError(t, err)

	s.float = func() float64 { return 0.9999999 }
	v, _ := s.Score(context.Background(), nil)
	assert.LessOrEqual(t, v, 0.98765)

	s.float = func() float64 { return 0 }
	v, _ = s.Score(context.Background(), nil)
	assert.GreaterOrEqual(t, v, 0.10001)
}

func TestMockScorer_DegenerateRange(t *testing.T) {
	s, err := NewMockScorer(0.85, 0.85)
	require.NoError(t, err)
	v, err := s.Score(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0.85, v)
}

type stubScorer struct {
	v   float64
	err error
}

func (s stubScorer) Score(context.Context, []byte) (float64, error) { return s.v, s.err }

func TestAnalyse(t *testing.T) {
	c, sev, err := Analyse(context.Background(), stubScorer{v: 0.95}, HazardPothole, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.95, c)
	assert.Equal(t, SeverityCritical, sev)
}

func TestAnalyse_ScorerError(t *testing.T) {
	_, _, err := Analyse(context.Background(), stubScorer{err: errors.New("model unavailable")}, HazardPothole, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model unavailable")
}

func TestAnalyse_RejectsOutOfRangeScore(t *testing.T) {
	_, _, err := Analyse(context.Background(), stubScorer{v: 1.2}, HazardPothole, nil)
	require.Error(t, err)
}
