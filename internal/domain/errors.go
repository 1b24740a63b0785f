package domain

import "errors"

// Taxonomía de errores del pipeline. Los adapters los envuelven con contexto;
// cmd/pl5 decide el exit code con errors.Is.
var (
	// ErrDataUnavailable: el ledger no existe, está vacío o es ilegible.
	// Fatal — aborta el run antes de cualquier escritura.
	ErrDataUnavailable = errors.New("ledger data unavailable")

	// ErrSchemaViolation: una fila individual malformada. Se recupera
	// saltando la fila con un warning, nunca aborta el run.
	ErrSchemaViolation = errors.New("ledger row schema violation")

	// ErrColdStart: no hay suficientes predicciones resueltas para afinar
	// pesos. No es un fallo: el run continúa con la configuración previa.
	ErrColdStart = errors.New("not enough resolved predictions to tune")
)
