package storage

// sqlite.go — persistencia de predicciones entre runs.
//
// Estrategia:
//   - `predictions`: UNA fila por período objetivo (UPSERT). La fila nace
//     pendiente y se marca resuelta cuando el sorteo objetivo aparece en
//     el ledger, guardando hits y hit-rate del backtest.
//   - Prune automático al arrancar: resueltas con más de 180 días. Las
//     pendientes no se tocan — una predicción sin sorteo todavía es señal.
//   - DSN ":memory:" para tests.

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alejandrodnm/pl5bot/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS predictions (
    target_period TEXT PRIMARY KEY,
    id            TEXT NOT NULL,
    top_n         TEXT NOT NULL,
    tickets       TEXT NOT NULL,
    generated_at  DATETIME NOT NULL,
    iteration     INTEGER NOT NULL DEFAULT 0,
    resolved      INTEGER NOT NULL DEFAULT 0,
    hits          INTEGER NOT NULL DEFAULT 0,
    hit_rate      REAL    NOT NULL DEFAULT 0,
    resolved_at   DATETIME
);

CREATE INDEX IF NOT EXISTS idx_pred_resolved ON predictions(resolved, target_period);
`

const retentionResolved = 180 * 24 * time.Hour

// SQLiteStore implementa ports.PredictionStore usando SQLite (pure Go, sin CGo).
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore abre (o crea) la base de datos en la ruta dada, aplica el
// schema y limpia predicciones resueltas antiguas.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStore: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStore: apply schema: %w", err)
	}

	s := &SQLiteStore{db: db}
	s.pruneOld(context.Background())
	return s, nil
}

// SavePrediction inserta o reemplaza la predicción de un período objetivo.
// Re-ejecutar el pipeline el mismo día sobreescribe la predicción pendiente.
func (s *SQLiteStore) SavePrediction(ctx context.Context, p domain.PredictionRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO predictions (target_period, id, top_n, tickets, generated_at, iteration)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(target_period) DO UPDATE SET
			id           = excluded.id,
			top_n        = excluded.top_n,
			tickets      = excluded.tickets,
			generated_at = excluded.generated_at,
			iteration    = excluded.iteration
		WHERE resolved = 0
	`,
		p.TargetPeriod, p.ID, encodeTopN(p.TopN), encodeTickets(p.Tickets),
		p.GeneratedAt.UTC(), p.Iteration,
	)
	if err != nil {
		return fmt.Errorf("storage.SavePrediction: upsert %s: %w", p.TargetPeriod, err)
	}
	return nil
}

// Unresolved devuelve las predicciones pendientes, período ascendente.
func (s *SQLiteStore) Unresolved(ctx context.Context) ([]domain.PredictionRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT target_period, id, top_n, tickets, generated_at, iteration
		FROM predictions
		WHERE resolved = 0
		ORDER BY target_period ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("storage.Unresolved: query: %w", err)
	}
	defer rows.Close()

	var out []domain.PredictionRecord
	for rows.Next() {
		var p domain.PredictionRecord
		var topN, tickets, generatedAt string
		if err := rows.Scan(&p.TargetPeriod, &p.ID, &topN, &tickets, &generatedAt, &p.Iteration); err != nil {
			return nil, fmt.Errorf("storage.Unresolved: scan row: %w", err)
		}
		if p.TopN, err = decodeTopN(topN); err != nil {
			return nil, fmt.Errorf("storage.Unresolved: row %s: %w", p.TargetPeriod, err)
		}
		if p.Tickets, err = decodeTickets(tickets); err != nil {
			return nil, fmt.Errorf("storage.Unresolved: row %s: %w", p.TargetPeriod, err)
		}
		p.GeneratedAt, _ = time.Parse(time.RFC3339, generatedAt)
		out = append(out, p)
	}
	return out, rows.Err()
}

// MarkResolved registra el resultado del backtest de una predicción.
func (s *SQLiteStore) MarkResolved(ctx context.Context, result domain.BacktestResult) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE predictions
		SET resolved = 1, hits = ?, hit_rate = ?, resolved_at = ?
		WHERE target_period = ?
	`, result.Hits, result.HitRate, time.Now().UTC(), result.TargetPeriod)
	if err != nil {
		return fmt.Errorf("storage.MarkResolved: %s: %w", result.TargetPeriod, err)
	}
	return nil
}

// ResolvedCount devuelve cuántas predicciones ya tienen sorteo revelado.
func (s *SQLiteStore) ResolvedCount(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM predictions WHERE resolved = 1`,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("storage.ResolvedCount: %w", err)
	}
	return n, nil
}

// Close cierra la conexión a la base de datos.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// pruneOld elimina predicciones resueltas antiguas para mantener la DB ligera.
func (s *SQLiteStore) pruneOld(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-retentionResolved)
	s.db.ExecContext(ctx, `DELETE FROM predictions WHERE resolved = 1 AND resolved_at < ?`, cutoff)
}

// --- codificación de columnas ---
//
// top_n: dígitos por posición separados por coma, posiciones por ';'
// (p.ej. "3,7,1,0,9;2,4,...;..."). tickets: combinaciones de 5 dígitos
// concatenados separadas por ';' (p.ej. "30717;31718").

func encodeTopN(topN [domain.Positions][]int) string {
	parts := make([]string, domain.Positions)
	for pos, digits := range topN {
		strs := make([]string, len(digits))
		for i, d := range digits {
			strs[i] = strconv.Itoa(d)
		}
		parts[pos] = strings.Join(strs, ",")
	}
	return strings.Join(parts, ";")
}

func decodeTopN(s string) ([domain.Positions][]int, error) {
	var out [domain.Positions][]int
	parts := strings.Split(s, ";")
	if len(parts) != domain.Positions {
		return out, fmt.Errorf("decode top_n: want %d positions, got %d", domain.Positions, len(parts))
	}
	for pos, part := range parts {
		if part == "" {
			continue
		}
		for _, str := range strings.Split(part, ",") {
			d, err := strconv.Atoi(str)
			if err != nil {
				return out, fmt.Errorf("decode top_n: bad digit %q: %w", str, err)
			}
			out[pos] = append(out[pos], d)
		}
	}
	return out, nil
}

func encodeTickets(tickets [][domain.Positions]int) string {
	parts := make([]string, len(tickets))
	for i, t := range tickets {
		buf := make([]byte, domain.Positions)
		for pos, d := range t {
			buf[pos] = byte('0' + d)
		}
		parts[i] = string(buf)
	}
	return strings.Join(parts, ";")
}

func decodeTickets(s string) ([][domain.Positions]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ";")
	out := make([][domain.Positions]int, 0, len(parts))
	for _, part := range parts {
		if len(part) != domain.Positions {
			return nil, fmt.Errorf("decode tickets: bad ticket %q", part)
		}
		var t [domain.Positions]int
		for pos := 0; pos < domain.Positions; pos++ {
			if part[pos] < '0' || part[pos] > '9' {
				return nil, fmt.Errorf("decode tickets: bad ticket %q", part)
			}
			t[pos] = int(part[pos] - '0')
		}
		out = append(out, t)
	}
	return out, nil
}
