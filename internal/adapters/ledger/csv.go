package ledger

// csv.go — carga del ledger de sorteos desde pl5.csv.
//
// Formato: cabecera + una fila por sorteo: period,p1,p2,p3,p4,p5[,date].
// El archivo lo extiende el colaborador externo de adquisición; este adapter
// solo lee y valida. Filas malformadas (aridad incorrecta, campo no numérico,
// dígito fuera de 0-9, período duplicado o no creciente) se saltan con un
// warning — la ausencia o corrupción del archivo completo sí es fatal.

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/alejandrodnm/pl5bot/internal/domain"
)

var periodPattern = regexp.MustCompile(`^\d{4,7}$`)

// CSVStore implementa ports.LedgerStore leyendo un archivo CSV.
type CSVStore struct {
	path string
}

// NewCSVStore crea un store sobre la ruta dada.
func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

// Load lee y valida el ledger completo.
func (s *CSVStore) Load(_ context.Context) (domain.Ledger, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("ledger.Load: open %q: %w: %w", s.path, err, domain.ErrDataUnavailable)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // la aridad se valida fila a fila

	// Cabecera
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("ledger.Load: read header of %q: %w: %w", s.path, err, domain.ErrDataUnavailable)
	}

	var out domain.Ledger
	lastPeriod := int64(-1)
	line := 1
	for {
		line++
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Una fila rota no tumba el run; el resto del archivo puede ser válido.
			slog.Warn("skipping unreadable ledger row", "line", line, "err", err)
			continue
		}

		record, err := parseRow(row)
		if err != nil {
			slog.Warn("skipping invalid ledger row",
				"line", line,
				"err", fmt.Errorf("%w: %w", err, domain.ErrSchemaViolation),
			)
			continue
		}

		// Períodos estrictamente crecientes, sin duplicados.
		n, _ := strconv.ParseInt(record.Period, 10, 64)
		if n <= lastPeriod {
			slog.Warn("skipping out-of-order ledger row",
				"line", line,
				"period", record.Period,
			)
			continue
		}
		lastPeriod = n

		out = append(out, record)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("ledger.Load: no valid rows in %q: %w", s.path, domain.ErrDataUnavailable)
	}
	return out, nil
}

// parseRow valida y convierte una fila CSV a DrawRecord.
func parseRow(row []string) (domain.DrawRecord, error) {
	if len(row) < 1+domain.Positions {
		return domain.DrawRecord{}, fmt.Errorf("want at least %d fields, got %d", 1+domain.Positions, len(row))
	}
	if !periodPattern.MatchString(row[0]) {
		return domain.DrawRecord{}, fmt.Errorf("invalid period %q", row[0])
	}

	record := domain.DrawRecord{Period: row[0]}
	for i := 0; i < domain.Positions; i++ {
		d, err := strconv.Atoi(row[i+1])
		if err != nil {
			return domain.DrawRecord{}, fmt.Errorf("position %d: non-numeric %q", i+1, row[i+1])
		}
		record.Digits[i] = d
	}
	if err := record.Validate(); err != nil {
		return domain.DrawRecord{}, err
	}

	if len(row) > 1+domain.Positions {
		if date, err := time.Parse("2006-01-02", row[1+domain.Positions]); err == nil {
			record.Date = date
		}
	}
	return record, nil
}
