package analyzer

// analyzer.go — orquestación del pipeline batch:
//
//	load → resolve/backtest → tune → persist weights → extract → score →
//	persist prediction → publish
//
// Una invocación = un run completo. El scheduler externo garantiza que no
// hay runs solapados, así que no hace falta locking más allá del replace
// atómico de los archivos persistidos. Un run que falla no escribe nada:
// los artefactos del día anterior siguen siendo válidos.

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alejandrodnm/pl5bot/internal/domain"
	"github.com/alejandrodnm/pl5bot/internal/ports"
)

// Config contiene la configuración del pipeline.
type Config struct {
	ShortWindow int // ventana corta de features (sorteos)
	TopN        int // candidatos recomendados por posición
	Tickets     int // apuestas simples generadas por run
	Tuner       TunerConfig
	DryRun      bool // no persiste pesos ni predicciones
}

// DefaultConfig devuelve una configuración sensata para producción.
func DefaultConfig() Config {
	return Config{
		ShortWindow: 30,
		TopN:        5,
		Tickets:     5,
		Tuner:       DefaultTunerConfig(),
	}
}

// Pipeline es el orquestador del run completo con todas las dependencias
// inyectadas.
type Pipeline struct {
	cfg         Config
	ledger      ports.LedgerStore
	weights     ports.WeightStore
	predictions ports.PredictionStore
	publisher   ports.Publisher
	tuner       *Tuner
	now         func() time.Time
}

// New crea un Pipeline. predictions puede ser nil en dry-run: el run no
// resuelve ni persiste predicciones en ese caso.
func New(
	cfg Config,
	ledger ports.LedgerStore,
	weights ports.WeightStore,
	predictions ports.PredictionStore,
	publisher ports.Publisher,
) *Pipeline {
	if cfg.ShortWindow <= 0 {
		cfg.ShortWindow = 30
	}
	if cfg.TopN <= 0 {
		cfg.TopN = 5
	}
	if cfg.Tickets <= 0 {
		cfg.Tickets = 5
	}
	cfg.Tuner.TopN = cfg.TopN
	cfg.Tuner.ShortWindow = cfg.ShortWindow

	return &Pipeline{
		cfg:         cfg,
		ledger:      ledger,
		weights:     weights,
		predictions: predictions,
		publisher:   publisher,
		tuner:       NewTuner(cfg.Tuner),
		now:         time.Now,
	}
}

// Run ejecuta el pipeline completo una vez. Devuelve error solo en fallos
// fatales (ledger ilegible, persistencia rota); el arranque en frío del
// tuner es un resultado normal.
func (p *Pipeline) Run(ctx context.Context) error {
	start := p.now()

	ledger, err := p.ledger.Load(ctx)
	if err != nil {
		return fmt.Errorf("analyzer.Run: load ledger: %w", err)
	}
	cutoff, _ := ledger.Latest()
	slog.Info("ledger loaded", "draws", len(ledger), "cutoff", cutoff.Period)

	// 1. Resolver predicciones pendientes contra los sorteos ya revelados.
	var backtest []domain.BacktestResult
	var prizes []domain.PrizeSummary
	resolved := 0
	if p.predictions != nil {
		backtest, prizes, err = ResolvePending(ctx, p.predictions, ledger)
		if err != nil {
			return fmt.Errorf("analyzer.Run: %w", err)
		}
		resolved, err = p.predictions.ResolvedCount(ctx)
		if err != nil {
			return fmt.Errorf("analyzer.Run: resolved count: %w", err)
		}
	}

	// 2. Afinar pesos. El arranque en frío deja la config previa intacta.
	weights, err := p.weights.Load()
	if err != nil {
		return fmt.Errorf("analyzer.Run: load weights: %w", err)
	}

	tuned := false
	next, err := p.tuner.Tune(ledger, weights, resolved)
	switch {
	case errors.Is(err, domain.ErrColdStart):
		slog.Info("tuning skipped", "reason", err)
	case err != nil:
		return fmt.Errorf("analyzer.Run: tune: %w", err)
	case next.Iterations > weights.Iterations:
		tuned = true
		if !p.cfg.DryRun {
			if err := p.weights.Save(next); err != nil {
				return fmt.Errorf("analyzer.Run: save weights: %w", err)
			}
		}
	}

	// 3. Puntuar el próximo período con la config resultante.
	fv := Extract(ledger, p.cfg.ShortWindow)
	ranked := Score(fv, next)
	prediction := BuildPrediction(ledger, ranked, p.cfg.TopN, p.cfg.Tickets, next.Iterations, p.now().UTC())

	if p.predictions != nil && !p.cfg.DryRun {
		if err := p.predictions.SavePrediction(ctx, prediction); err != nil {
			return fmt.Errorf("analyzer.Run: save prediction: %w", err)
		}
	}

	// 4. Publicar informes.
	report := ports.RunReport{
		GeneratedAt:  p.now(),
		CutoffPeriod: cutoff.Period,
		Prediction:   prediction,
		Ranked:       ranked,
		Weights:      next,
		WindowShort:  fv.WindowShort,
		Tuned:        tuned,
		Backtest:     backtest,
		Prizes:       prizes,
	}
	if err := p.publisher.Publish(ctx, report); err != nil {
		return fmt.Errorf("analyzer.Run: publish: %w", err)
	}

	slog.Info("run complete",
		"target", prediction.TargetPeriod,
		"tuned", tuned,
		"resolved", len(backtest),
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return nil
}
