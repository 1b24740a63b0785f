package analyzer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/pl5bot/internal/domain"
)

// makeLedger arma un ledger sintético con períodos consecutivos.
func makeLedger(draws ...[domain.Positions]int) domain.Ledger {
	ledger := make(domain.Ledger, 0, len(draws))
	for i, digits := range draws {
		ledger = append(ledger, domain.DrawRecord{
			Period: fmt.Sprintf("25%03d", i+1),
			Digits: digits,
		})
	}
	return ledger
}

func TestExtract_Frequency(t *testing.T) {
	// El dígito 7 sale 2 de 4 veces en posición 0.
	ledger := makeLedger(
		[domain.Positions]int{7, 0, 0, 0, 0},
		[domain.Positions]int{1, 0, 0, 0, 0},
		[domain.Positions]int{7, 0, 0, 0, 0},
		[domain.Positions]int{2, 0, 0, 0, 0},
	)

	fv := Extract(ledger, 4)

	assert.InDelta(t, 0.5, fv.PerDigit[0][7][domain.FeatFrequencyFull], 1e-9)
	assert.InDelta(t, 0.5, fv.PerDigit[0][7][domain.FeatFrequencyShort], 1e-9)
	assert.InDelta(t, 0.25, fv.PerDigit[0][1][domain.FeatFrequencyFull], 1e-9)
	assert.Zero(t, fv.PerDigit[0][9][domain.FeatFrequencyFull])
}

func TestExtract_OmissionMostRecentIsZero(t *testing.T) {
	ledger := makeLedger(
		[domain.Positions]int{1, 0, 0, 0, 0},
		[domain.Positions]int{5, 0, 0, 0, 0},
	)

	fv := Extract(ledger, 2)
	assert.Zero(t, fv.PerDigit[0][5][domain.FeatOmissionFull])
	assert.Zero(t, fv.PerDigit[0][5][domain.FeatOmissionShort])
}

func TestExtract_OmissionNeverSeenEqualsWindowLength(t *testing.T) {
	ledger := makeLedger(
		[domain.Positions]int{1, 0, 0, 0, 0},
		[domain.Positions]int{2, 0, 0, 0, 0},
		[domain.Positions]int{3, 0, 0, 0, 0},
	)

	fv := Extract(ledger, 2)

	// El 9 nunca salió: omission = longitud de cada ventana.
	assert.InDelta(t, 3, fv.PerDigit[0][9][domain.FeatOmissionFull], 1e-9)
	assert.InDelta(t, 2, fv.PerDigit[0][9][domain.FeatOmissionShort], 1e-9)
}

func TestExtract_OmissionOutsideShortWindowClamps(t *testing.T) {
	// El 1 salió solo en el primer sorteo de 5: omisión completa de 4,
	// pero en la ventana corta de 3 equivale a "nunca visto" → 3.
	ledger := makeLedger(
		[domain.Positions]int{1, 0, 0, 0, 0},
		[domain.Positions]int{2, 0, 0, 0, 0},
		[domain.Positions]int{3, 0, 0, 0, 0},
		[domain.Positions]int{4, 0, 0, 0, 0},
		[domain.Positions]int{5, 0, 0, 0, 0},
	)

	fv := Extract(ledger, 3)
	assert.InDelta(t, 4, fv.PerDigit[0][1][domain.FeatOmissionFull], 1e-9)
	assert.InDelta(t, 3, fv.PerDigit[0][1][domain.FeatOmissionShort], 1e-9)
}

func TestExtract_WindowClampedToHistory(t *testing.T) {
	ledger := makeLedger(
		[domain.Positions]int{1, 2, 3, 4, 5},
		[domain.Positions]int{5, 4, 3, 2, 1},
	)

	fv := Extract(ledger, 100)
	assert.Equal(t, 2, fv.WindowShort)
	assert.Equal(t, 2, fv.WindowFull)
}

func TestExtract_Trend(t *testing.T) {
	// 8 sorteos; el 4 solo sale en los últimos 2 → señal corta > larga.
	draws := make([][domain.Positions]int, 8)
	for i := range draws {
		draws[i] = [domain.Positions]int{0, 0, 0, 0, 0}
	}
	draws[6][0] = 4
	draws[7][0] = 4

	fv := Extract(makeLedger(draws...), 2)

	// frequency_short=1.0, frequency_full=0.25 → trend=0.75
	assert.InDelta(t, 0.75, fv.PerDigit[0][4][domain.FeatTrend], 1e-9)
}

func TestExtractScore_Deterministic(t *testing.T) {
	ledger := makeLedger(
		[domain.Positions]int{3, 0, 7, 1, 7},
		[domain.Positions]int{5, 5, 5, 5, 5},
		[domain.Positions]int{3, 1, 4, 1, 5},
		[domain.Positions]int{9, 2, 6, 5, 3},
	)
	weights := domain.DefaultWeightConfig()

	first := Score(Extract(ledger, 3), weights)
	second := Score(Extract(ledger, 3), weights)

	// Mismo ledger + mismos pesos ⇒ mismo ranking, siempre.
	require.Equal(t, first, second)
}

func TestScore_FullRankedListPerPosition(t *testing.T) {
	ledger := makeLedger(
		[domain.Positions]int{3, 0, 7, 1, 7},
		[domain.Positions]int{5, 5, 5, 5, 5},
	)

	ranked := Score(Extract(ledger, 2), domain.DefaultWeightConfig())

	for pos := 0; pos < domain.Positions; pos++ {
		require.Len(t, ranked[pos], domain.DigitMax+1)
		for i := 1; i < len(ranked[pos]); i++ {
			prev, cur := ranked[pos][i-1], ranked[pos][i]
			better := prev.Score > cur.Score ||
				(prev.Score == cur.Score && prev.Digit < cur.Digit)
			assert.True(t, better, "pos %d: orden total roto en rango %d", pos, i)
		}
	}
}
