package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config es la configuración completa del analizador.
type Config struct {
	Analyzer AnalyzerConfig `yaml:"analyzer"`
	Storage  StorageConfig  `yaml:"storage"`
	Report   ReportConfig   `yaml:"report"`
	Log      LogConfig      `yaml:"log"`
}

// AnalyzerConfig controla el modelo de scoring y el tuning.
type AnalyzerConfig struct {
	LedgerPath  string  `yaml:"ledger_path"`  // CSV de sorteos históricos
	WeightsPath string  `yaml:"weights_path"` // YAML de pesos del modelo
	ShortWindow int     `yaml:"short_window"` // ventana corta en sorteos
	TopN        int     `yaml:"top_n"`        // candidatos por posición
	Tickets     int     `yaml:"tickets"`      // apuestas simples por run
	EvalWindow  int     `yaml:"eval_window"`  // sorteos del replay de tuning
	MinResolved int     `yaml:"min_resolved"` // mínimo de predicciones resueltas para afinar
	TuneStep    float64 `yaml:"tune_step"`    // paso relativo del hill-climbing
}

// StorageConfig controla dónde se persisten las predicciones.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // ruta al archivo SQLite, o ":memory:"
}

// ReportConfig controla dónde se publican los informes.
type ReportConfig struct {
	Dir string `yaml:"dir"`
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si
// existe. Los valores del entorno sobreescriben los del YAML para las keys
// que correspondan.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PL5_LEDGER_PATH"); v != "" {
		cfg.Analyzer.LedgerPath = v
	}
	if v := os.Getenv("PL5_REPORT_DIR"); v != "" {
		cfg.Report.Dir = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	if cfg.Analyzer.LedgerPath == "" {
		cfg.Analyzer.LedgerPath = "pl5.csv"
	}
	if cfg.Analyzer.WeightsPath == "" {
		cfg.Analyzer.WeightsPath = "pl5_weights.yaml"
	}
	if cfg.Analyzer.ShortWindow <= 0 {
		cfg.Analyzer.ShortWindow = 30
	}
	if cfg.Analyzer.TopN <= 0 {
		cfg.Analyzer.TopN = 5
	}
	if cfg.Analyzer.Tickets <= 0 {
		cfg.Analyzer.Tickets = 5
	}
	if cfg.Analyzer.EvalWindow <= 0 {
		cfg.Analyzer.EvalWindow = 20
	}
	if cfg.Analyzer.MinResolved <= 0 {
		cfg.Analyzer.MinResolved = 5
	}
	if cfg.Analyzer.TuneStep <= 0 {
		cfg.Analyzer.TuneStep = 0.05
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "pl5bot.db"
	}
	if cfg.Report.Dir == "" {
		cfg.Report.Dir = "."
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
