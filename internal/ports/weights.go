package ports

import "github.com/alejandrodnm/pl5bot/internal/domain"

// WeightStore persiste la configuración de pesos del modelo.
type WeightStore interface {
	// Load lee la configuración persistida, o la neutral por defecto si
	// el archivo no existe todavía (arranque en frío).
	Load() (domain.WeightConfig, error)

	// Save reemplaza la configuración de forma atómica (write-temp-then-
	// rename): una interrupción nunca deja el archivo truncado.
	Save(cfg domain.WeightConfig) error
}
