package domain

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// weights.go — configuración de pesos del modelo, única fuente de verdad
// para el scoring. La posee el Weight Store; solo el tuner la muta, y siempre
// como valor explícito que pasa por load → tune → save, nunca como estado
// ambiente.

// Pesos neutrales documentados para el arranque en frío. Las features de
// omisión son conteos crudos en escala de ventana (0..K), no fracciones como
// las frecuencias, así que su peso neutral compensa la escala: 0.01 ≈ 1/(2K)
// con la ventana corta por defecto de 30 sorteos.
const (
	NeutralFrequencyWeight = 1.0
	NeutralOmissionWeight  = 0.01
	NeutralUnknownWeight   = 1.0 // keys desconocidas en scoring

	// Límites de un peso tras el tuning. Evitan divergencia descontrolada.
	WeightMin = 0.001
	WeightMax = 10.0
)

// WeightConfig mapea feature-key → peso escalar, más metadatos de tuning.
type WeightConfig struct {
	Weights    map[string]float64 `yaml:"weights"`
	UpdatedAt  time.Time          `yaml:"updated_at"`
	Iterations int                `yaml:"iterations"`
}

// DefaultWeightConfig devuelve la configuración neutral: 1.0 para features
// de frecuencia y tendencia, 0.5 para features de omisión.
func DefaultWeightConfig() WeightConfig {
	return WeightConfig{
		Weights: map[string]float64{
			FeatFrequencyShort: NeutralFrequencyWeight,
			FeatFrequencyFull:  NeutralFrequencyWeight,
			FeatOmissionShort:  NeutralOmissionWeight,
			FeatOmissionFull:   NeutralOmissionWeight,
			FeatTrend:          NeutralFrequencyWeight,
		},
	}
}

// Weight devuelve el peso de una key, o el neutral si la key es desconocida.
// Nunca falla: una key desconocida no es fatal en scoring.
func (w WeightConfig) Weight(key string) (weight float64, known bool) {
	if v, ok := w.Weights[key]; ok {
		return v, true
	}
	return NeutralUnknownWeight, false
}

// Clone devuelve una copia profunda; el tuner trabaja siempre sobre copias.
func (w WeightConfig) Clone() WeightConfig {
	out := WeightConfig{
		Weights:    make(map[string]float64, len(w.Weights)),
		UpdatedAt:  w.UpdatedAt,
		Iterations: w.Iterations,
	}
	for k, v := range w.Weights {
		out.Weights[k] = v
	}
	return out
}

// Keys devuelve las feature-keys en orden estable (el tuning itera sobre
// ellas y debe ser determinista).
func (w WeightConfig) Keys() []string {
	keys := make([]string, 0, len(w.Weights))
	for k := range w.Weights {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Validate verifica que todos los pesos sean finitos.
func (w WeightConfig) Validate() error {
	for k, v := range w.Weights {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("weights: non-finite weight %g for %q", v, k)
		}
	}
	return nil
}

// ClampWeight recorta la magnitud de un peso al rango permitido tras el
// tuning, conservando el signo: el paso multiplicativo nunca cruza el cero,
// pero un peso configurado negativo sigue siendo afinable.
func ClampWeight(v float64) float64 {
	sign := 1.0
	if v < 0 {
		sign = -1.0
	}
	mag := math.Abs(v)
	if mag < WeightMin {
		mag = WeightMin
	}
	if mag > WeightMax {
		mag = WeightMax
	}
	return sign * mag
}
