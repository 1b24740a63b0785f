package analyzer

// backtest.go — replay del modelo contra sorteos ya revelados y ajuste
// adaptativo de pesos.
//
// El tuning es hill-climbing por coordenadas, sin gradiente:
// 1. Si hay menos de MinResolved predicciones resueltas → arranque en frío,
//    se devuelve la configuración de entrada sin tocar.
// 2. Hit-rate base = replay de la config actual sobre los últimos EvalWindow
//    sorteos (cada sorteo se re-puntúa usando SOLO el prefijo del ledger
//    anterior a él).
// 3. Por cada feature (orden estable) se prueba peso × (1±Step) y se adopta
//    el candidato que mejore el hit-rate del replay, con el peso recortado
//    a [WeightMin, WeightMax].
// 4. Guardia de no-regresión: si la config final no iguala o supera el
//    hit-rate base, se devuelve la de entrada sin cambios.

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alejandrodnm/pl5bot/internal/domain"
	"github.com/alejandrodnm/pl5bot/internal/ports"
)

// TunerConfig controla el backtest y el ajuste de pesos.
type TunerConfig struct {
	EvalWindow  int     // sorteos del replay de evaluación
	MinResolved int     // predicciones resueltas mínimas para afinar
	TopN        int     // tamaño del set de candidatos que cuenta como hit
	ShortWindow int     // ventana corta usada al re-extraer features
	Step        float64 // paso relativo del hill-climbing (0.05 = ±5%)
}

// DefaultTunerConfig devuelve las constantes documentadas del modelo.
func DefaultTunerConfig() TunerConfig {
	return TunerConfig{
		EvalWindow:  20,
		MinResolved: 5,
		TopN:        5,
		ShortWindow: 30,
		Step:        0.05,
	}
}

// Tuner ajusta la WeightConfig a partir del histórico.
type Tuner struct {
	cfg TunerConfig
	now func() time.Time
}

// NewTuner crea un Tuner con la configuración dada.
func NewTuner(cfg TunerConfig) *Tuner {
	if cfg.EvalWindow <= 0 {
		cfg.EvalWindow = 20
	}
	if cfg.MinResolved <= 0 {
		cfg.MinResolved = 5
	}
	if cfg.TopN <= 0 {
		cfg.TopN = 5
	}
	if cfg.Step <= 0 {
		cfg.Step = 0.05
	}
	return &Tuner{cfg: cfg, now: time.Now}
}

// Tune devuelve la configuración ajustada, o la de entrada envuelta en
// domain.ErrColdStart si todavía no hay señal suficiente. El arranque en
// frío NO es un fallo del run: el llamador sigue con los pesos previos.
func (t *Tuner) Tune(ledger domain.Ledger, weights domain.WeightConfig, resolved int) (domain.WeightConfig, error) {
	if resolved < t.cfg.MinResolved {
		return weights, fmt.Errorf("analyzer.Tune: %d resolved of %d required: %w",
			resolved, t.cfg.MinResolved, domain.ErrColdStart)
	}

	baseline := t.replayHitRate(ledger, weights)
	best := weights.Clone()
	bestRate := baseline

	for _, key := range best.Keys() {
		current := best.Weights[key]
		for _, factor := range []float64{1 + t.cfg.Step, 1 - t.cfg.Step} {
			candidate := best.Clone()
			candidate.Weights[key] = domain.ClampWeight(current * factor)
			if rate := t.replayHitRate(ledger, candidate); rate > bestRate {
				bestRate = rate
				best = candidate
			}
		}
	}

	// Guardia de no-regresión: nunca persistir una config peor que la previa.
	if bestRate < baseline {
		return weights, nil
	}

	if bestRate == baseline {
		slog.Debug("tuning found no improvement", "hit_rate", baseline)
		return weights, nil
	}

	best.Iterations = weights.Iterations + 1
	best.UpdatedAt = t.now().UTC()
	slog.Info("weights tuned",
		"iteration", best.Iterations,
		"baseline_hit_rate", baseline,
		"new_hit_rate", bestRate,
	)
	return best, nil
}

// replayHitRate re-puntúa los últimos EvalWindow sorteos usando solo el
// histórico anterior a cada uno y mide la fracción de posiciones cuyo
// dígito revelado cayó dentro del top-N. Determinista.
func (t *Tuner) replayHitRate(ledger domain.Ledger, weights domain.WeightConfig) float64 {
	start := len(ledger) - t.cfg.EvalWindow
	if start < 1 {
		start = 1 // siempre hace falta al menos un sorteo de prefijo
	}
	if start >= len(ledger) {
		return 0
	}

	hits, total := 0, 0
	for i := start; i < len(ledger); i++ {
		ranked := Score(Extract(ledger[:i], t.cfg.ShortWindow), weights)
		for pos := 0; pos < domain.Positions; pos++ {
			total++
			for _, d := range domain.TopDigits(ranked[pos], t.cfg.TopN) {
				if d == ledger[i].Digits[pos] {
					hits++
					break
				}
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

// ResolvePending cruza las predicciones pendientes con el ledger: las que ya
// tienen sorteo revelado se marcan resueltas y producen su BacktestResult y
// su evaluación de premios. Las demás siguen pendientes.
func ResolvePending(
	ctx context.Context,
	store ports.PredictionStore,
	ledger domain.Ledger,
) ([]domain.BacktestResult, []domain.PrizeSummary, error) {
	pending, err := store.Unresolved(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("analyzer.ResolvePending: load pending: %w", err)
	}

	var results []domain.BacktestResult
	var prizes []domain.PrizeSummary
	for _, p := range pending {
		draw, ok := ledger.Find(p.TargetPeriod)
		if !ok {
			continue // el sorteo objetivo aún no se reveló
		}

		result := p.Resolve(draw)
		if err := store.MarkResolved(ctx, result); err != nil {
			return nil, nil, fmt.Errorf("analyzer.ResolvePending: mark %s: %w", p.TargetPeriod, err)
		}

		results = append(results, result)
		prizes = append(prizes, domain.EvaluatePrizes(p.Tickets, draw))

		slog.Info("prediction resolved",
			"target", p.TargetPeriod,
			"hits", result.Hits,
			"hit_rate", result.HitRate,
		)
	}
	return results, prizes, nil
}
