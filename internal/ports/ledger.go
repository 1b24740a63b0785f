package ports

import (
	"context"

	"github.com/alejandrodnm/pl5bot/internal/domain"
)

// LedgerStore carga el histórico de sorteos.
type LedgerStore interface {
	// Load lee el ledger completo y valida su integridad. Devuelve
	// domain.ErrDataUnavailable si el archivo falta, está vacío o no
	// contiene ninguna fila válida. Las filas individuales malformadas
	// se saltan con un warning.
	Load(ctx context.Context) (domain.Ledger, error)
}
