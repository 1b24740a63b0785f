package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreDigit_WeightedSum(t *testing.T) {
	features := DigitFeatures{
		FeatFrequencyShort: 0.4,
		FeatOmissionShort:  3.0,
	}
	weights := WeightConfig{Weights: map[string]float64{
		FeatFrequencyShort: 2.0,
		FeatOmissionShort:  0.5,
	}}

	// 0.4×2.0 + 3.0×0.5 = 2.3
	assert.InDelta(t, 2.3, ScoreDigit(features, weights), 1e-9)
}

func TestScoreDigit_UnknownKeyUsesNeutralWeight(t *testing.T) {
	features := DigitFeatures{"mystery_feature": 2.0}
	weights := DefaultWeightConfig()

	assert.InDelta(t, 2.0*NeutralUnknownWeight, ScoreDigit(features, weights), 1e-9)
}

func TestScoreDigit_NegativeWeightLowersScore(t *testing.T) {
	// El modelo no asume "frecuencia alta es buena": un peso negativo
	// tiene que poder invertir el signo de la contribución.
	features := DigitFeatures{FeatFrequencyShort: 0.4}
	weights := WeightConfig{Weights: map[string]float64{FeatFrequencyShort: -1.0}}

	assert.InDelta(t, -0.4, ScoreDigit(features, weights), 1e-9)
}

func TestRankCandidates_DescendingByScore(t *testing.T) {
	candidates := []ScoredCandidate{
		{Digit: 1, Score: 0.2},
		{Digit: 2, Score: 0.9},
		{Digit: 3, Score: 0.5},
	}
	RankCandidates(candidates)

	assert.Equal(t, []int{2, 3, 1}, TopDigits(candidates, 3))
}

func TestRankCandidates_TieBrokenByAscendingDigit(t *testing.T) {
	candidates := []ScoredCandidate{
		{Digit: 7, Score: 0.5},
		{Digit: 2, Score: 0.5},
		{Digit: 4, Score: 0.5},
	}
	RankCandidates(candidates)

	// Orden total: mismo score → dígito menor primero, siempre.
	assert.Equal(t, []int{2, 4, 7}, TopDigits(candidates, 3))
}

func TestTopDigits_ClampsToAvailable(t *testing.T) {
	candidates := []ScoredCandidate{{Digit: 5, Score: 1}}
	assert.Equal(t, []int{5}, TopDigits(candidates, 10))
}

func rankedFixture() [Positions][]ScoredCandidate {
	var ranked [Positions][]ScoredCandidate
	for pos := 0; pos < Positions; pos++ {
		for d := 0; d <= DigitMax; d++ {
			ranked[pos] = append(ranked[pos], ScoredCandidate{
				Position: pos,
				Digit:    (pos + d) % 10, // top-1 distinto por posición
				Score:    float64(DigitMax - d),
			})
		}
	}
	return ranked
}

func TestBuildTickets_FirstIsTopPick(t *testing.T) {
	ranked := rankedFixture()
	tickets := BuildTickets(ranked, 5)
	require.Len(t, tickets, 5)

	assert.Equal(t, [Positions]int{0, 1, 2, 3, 4}, tickets[0])
}

func TestBuildTickets_VariantsDifferInOnePosition(t *testing.T) {
	ranked := rankedFixture()
	tickets := BuildTickets(ranked, 5)
	require.Len(t, tickets, 5)

	base := tickets[0]
	for _, ticket := range tickets[1:] {
		diff := 0
		for pos := 0; pos < Positions; pos++ {
			if ticket[pos] != base[pos] {
				diff++
			}
		}
		assert.Equal(t, 1, diff, "cada variante cambia exactamente una posición")
	}
}

func TestBuildTickets_Deterministic(t *testing.T) {
	ranked := rankedFixture()
	assert.Equal(t, BuildTickets(ranked, 8), BuildTickets(ranked, 8))
}

func TestTicketScore_SumsPerPosition(t *testing.T) {
	ranked := rankedFixture()
	tickets := BuildTickets(ranked, 1)
	require.Len(t, tickets, 1)

	// top-1 en cada posición: score 9 × 5 posiciones
	assert.InDelta(t, 45.0, TicketScore(ranked, tickets[0]), 1e-9)
}
