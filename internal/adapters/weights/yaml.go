package weights

// yaml.go — persistencia de la WeightConfig como YAML plano.
//
// El archivo es propiedad exclusiva de este store: el tuner lo muta vía
// Save y todo lo demás lo lee vía Load. El replace es atómico
// (write-temp-then-rename): una interrupción a mitad de escritura deja
// el archivo previo intacto, nunca truncado.

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/alejandrodnm/pl5bot/internal/domain"
)

// YAMLStore implementa ports.WeightStore sobre un archivo YAML.
type YAMLStore struct {
	path string
}

// NewYAMLStore crea un store sobre la ruta dada.
func NewYAMLStore(path string) *YAMLStore {
	return &YAMLStore{path: path}
}

// Load lee la configuración persistida. Si el archivo no existe todavía
// devuelve la configuración neutral por defecto: el sistema funciona
// correctamente en frío, sin tuning previo.
func (s *YAMLStore) Load() (domain.WeightConfig, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.DefaultWeightConfig(), nil
	}
	if err != nil {
		return domain.WeightConfig{}, fmt.Errorf("weights.Load: read %q: %w", s.path, err)
	}

	var cfg domain.WeightConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.WeightConfig{}, fmt.Errorf("weights.Load: parse %q: %w", s.path, err)
	}
	if cfg.Weights == nil {
		cfg.Weights = domain.DefaultWeightConfig().Weights
	}
	if err := cfg.Validate(); err != nil {
		return domain.WeightConfig{}, fmt.Errorf("weights.Load: %w", err)
	}
	return cfg, nil
}

// Save reemplaza la configuración de forma atómica.
func (s *YAMLStore) Save(cfg domain.WeightConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("weights.Save: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("weights.Save: marshal: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".weights-*.yaml")
	if err != nil {
		return fmt.Errorf("weights.Save: create temp in %q: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("weights.Save: write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("weights.Save: close temp: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("weights.Save: rename to %q: %w", s.path, err)
	}
	return nil
}
