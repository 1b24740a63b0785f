package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_CountsHitsPerPosition(t *testing.T) {
	p := PredictionRecord{
		TargetPeriod: "25108",
		TopN: [Positions][]int{
			{3, 0, 7}, // contiene el 3 → hit
			{1, 2, 4}, // no contiene el 0 → miss
			{7, 8, 9}, // contiene el 7 → hit
			{0, 1, 2}, // contiene el 1 → hit
			{5, 6},    // no contiene el 7 → miss
		},
	}
	draw := DrawRecord{Period: "25108", Digits: [Positions]int{3, 0, 7, 1, 7}}

	result := p.Resolve(draw)

	assert.Equal(t, "25108", result.TargetPeriod)
	assert.Equal(t, 3, result.Hits)
	assert.InDelta(t, 0.6, result.HitRate, 1e-9)
	assert.Equal(t, [Positions]bool{true, false, true, true, false}, result.PerPosition)
}

func TestResolve_AllMisses(t *testing.T) {
	p := PredictionRecord{TopN: [Positions][]int{{1}, {1}, {1}, {1}, {1}}}
	draw := DrawRecord{Digits: [Positions]int{2, 2, 2, 2, 2}}

	result := p.Resolve(draw)
	assert.Zero(t, result.Hits)
	assert.Zero(t, result.HitRate)
}

func TestAggregateHitRate(t *testing.T) {
	results := []BacktestResult{{HitRate: 0.6}, {HitRate: 0.2}}
	assert.InDelta(t, 0.4, AggregateHitRate(results), 1e-9)
	assert.Zero(t, AggregateHitRate(nil))
}

func TestEvaluatePrizes_StraightHit(t *testing.T) {
	draw := DrawRecord{Period: "25108", Digits: [Positions]int{3, 0, 7, 1, 7}}
	tickets := [][Positions]int{
		{1, 2, 3, 4, 5},
		{3, 0, 7, 1, 7}, // directo
		{3, 0, 7, 1, 8},
	}

	summary := EvaluatePrizes(tickets, draw)

	require.Len(t, summary.Hits, 1)
	assert.Equal(t, 2, summary.Hits[0].Index)
	assert.Equal(t, StraightPrizeCNY, summary.Hits[0].Amount)
	assert.Equal(t, StraightPrizeCNY, summary.TotalCNY)
	assert.Equal(t, "30717", summary.DrawNumber)
	assert.Equal(t, 3, summary.Tickets)
}

func TestEvaluatePrizes_NoHits(t *testing.T) {
	draw := DrawRecord{Period: "25108", Digits: [Positions]int{3, 0, 7, 1, 7}}
	summary := EvaluatePrizes([][Positions]int{{9, 9, 9, 9, 9}}, draw)

	assert.Empty(t, summary.Hits)
	assert.Zero(t, summary.TotalCNY)
}

func TestLedger_NextPeriod(t *testing.T) {
	ledger := Ledger{{Period: "25107"}}
	assert.Equal(t, "25108", ledger.NextPeriod())

	padded := Ledger{{Period: "0099"}}
	assert.Equal(t, "0100", padded.NextPeriod())

	assert.Equal(t, "", Ledger{}.NextPeriod())
}

func TestDrawRecord_Validate(t *testing.T) {
	valid := DrawRecord{Period: "25107", Digits: [Positions]int{0, 9, 5, 3, 1}}
	require.NoError(t, valid.Validate())

	outOfRange := DrawRecord{Period: "25107", Digits: [Positions]int{0, 15, 5, 3, 1}}
	assert.Error(t, outOfRange.Validate())

	noPeriod := DrawRecord{Digits: [Positions]int{0, 1, 2, 3, 4}}
	assert.Error(t, noPeriod.Validate())
}
