package ports

import (
	"context"
	"time"

	"github.com/alejandrodnm/pl5bot/internal/domain"
)

// RunReport es el snapshot de un run completo del pipeline, listo para
// renderizar. Todo lo que un publisher necesita viene aquí de forma
// explícita (incluido el timestamp) para que el render sea reproducible
// byte a byte con inputs idénticos.
type RunReport struct {
	GeneratedAt  time.Time
	CutoffPeriod string // último período del ledger usado para el análisis

	Prediction domain.PredictionRecord
	Ranked     [domain.Positions][]domain.ScoredCandidate
	Weights    domain.WeightConfig

	WindowShort int  // tamaño efectivo de la ventana corta
	Tuned       bool // true si el run actualizó los pesos

	// Resultados del cruce con sorteos recién revelados (vacíos en el
	// primer run o si no había predicciones pendientes).
	Backtest []domain.BacktestResult
	Prizes   []domain.PrizeSummary
}

// Publisher entrega los artefactos del run: informe con timestamp + alias
// "latest", archivo de cálculo de premios, o salida por consola. La
// retención de informes antiguos es un housekeeping externo, no del core.
type Publisher interface {
	Publish(ctx context.Context, report RunReport) error
}
