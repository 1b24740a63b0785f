package ports

import (
	"context"

	"github.com/alejandrodnm/pl5bot/internal/domain"
)

// PredictionStore persiste las predicciones entre runs para que el tuner
// pueda resolverlas cuando el sorteo objetivo se revele.
type PredictionStore interface {
	// SavePrediction inserta (o reemplaza) la predicción para su período objetivo.
	SavePrediction(ctx context.Context, p domain.PredictionRecord) error

	// Unresolved devuelve las predicciones aún sin sorteo revelado,
	// ordenadas por período objetivo ascendente.
	Unresolved(ctx context.Context) ([]domain.PredictionRecord, error)

	// MarkResolved registra el resultado del backtest de una predicción.
	MarkResolved(ctx context.Context, result domain.BacktestResult) error

	// ResolvedCount devuelve cuántas predicciones ya fueron resueltas.
	ResolvedCount(ctx context.Context) (int, error)

	// Close cierra la conexión limpiamente.
	Close() error
}
