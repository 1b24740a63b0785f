package analyzer

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/alejandrodnm/pl5bot/internal/domain"
)

// Score combina el vector de features con los pesos actuales y devuelve la
// lista rankeada completa de candidatos por posición. El truncado a top-N
// es cosa del consumidor (BuildPrediction, informes).
func Score(fv domain.FeatureVector, weights domain.WeightConfig) [domain.Positions][]domain.ScoredCandidate {
	warnUnknownKeys(fv, weights)

	var ranked [domain.Positions][]domain.ScoredCandidate
	for pos := 0; pos < domain.Positions; pos++ {
		candidates := make([]domain.ScoredCandidate, 0, domain.DigitMax+1)
		for d := 0; d <= domain.DigitMax; d++ {
			candidates = append(candidates, domain.ScoredCandidate{
				Position: pos,
				Digit:    d,
				Score:    domain.ScoreDigit(fv.PerDigit[pos][d], weights),
			})
		}
		domain.RankCandidates(candidates)
		ranked[pos] = candidates
	}
	return ranked
}

// warnUnknownKeys loguea (una sola vez por key) las features que la
// configuración de pesos no conoce. Pesan NeutralUnknownWeight — nunca fatal.
func warnUnknownKeys(fv domain.FeatureVector, weights domain.WeightConfig) {
	seen := map[string]bool{}
	for k := range fv.PerDigit[0][0] {
		if _, known := weights.Weight(k); !known && !seen[k] {
			seen[k] = true
			slog.Warn("unknown feature key, using neutral weight",
				"key", k,
				"weight", domain.NeutralUnknownWeight,
			)
		}
	}
}

// BuildPrediction arma el PredictionRecord para el próximo período a partir
// de las listas rankeadas: top-N dígitos por posición (recomendación
// compuesta) más las apuestas simples.
func BuildPrediction(
	ledger domain.Ledger,
	ranked [domain.Positions][]domain.ScoredCandidate,
	topN, tickets, iteration int,
	now time.Time,
) domain.PredictionRecord {
	p := domain.PredictionRecord{
		ID:           uuid.New().String(),
		TargetPeriod: ledger.NextPeriod(),
		Tickets:      domain.BuildTickets(ranked, tickets),
		GeneratedAt:  now,
		Iteration:    iteration,
	}
	for pos := 0; pos < domain.Positions; pos++ {
		p.TopN[pos] = domain.TopDigits(ranked[pos], topN)
	}
	return p
}
