package domain

import "time"

// PredictionRecord es el resultado persistido de un run de scoring: los
// candidatos top-N por posición y las apuestas simples para un período
// objetivo todavía no sorteado. Se resuelve cuando el ledger incorpora
// el DrawRecord de ese período.
type PredictionRecord struct {
	ID           string
	TargetPeriod string
	TopN         [Positions][]int // dígitos rankeados por posición, ya truncados a N
	Tickets      [][Positions]int // apuestas simples (directas)
	GeneratedAt  time.Time
	Iteration    int // iteración de la WeightConfig con la que se generó
}

// Resolve cruza la predicción con el sorteo ya revelado y produce el
// resultado del backtest: hit por posición si el set top-N contiene el
// dígito revelado.
func (p PredictionRecord) Resolve(draw DrawRecord) BacktestResult {
	result := BacktestResult{TargetPeriod: p.TargetPeriod}
	for pos := 0; pos < Positions; pos++ {
		for _, digit := range p.TopN[pos] {
			if digit == draw.Digits[pos] {
				result.PerPosition[pos] = true
				result.Hits++
				break
			}
		}
	}
	result.HitRate = float64(result.Hits) / float64(Positions)
	return result
}

// BacktestResult es el cruce predicción × sorteo revelado. Efímero por run;
// sus agregados alimentan el tuning y el informe de cálculo.
type BacktestResult struct {
	TargetPeriod string
	PerPosition  [Positions]bool
	Hits         int
	HitRate      float64
}

// AggregateHitRate promedia el hit-rate de un conjunto de resultados.
func AggregateHitRate(results []BacktestResult) float64 {
	if len(results) == 0 {
		return 0
	}
	var sum float64
	for _, r := range results {
		sum += r.HitRate
	}
	return sum / float64(len(results))
}
