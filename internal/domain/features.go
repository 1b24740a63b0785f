package domain

// features.go — vector de features estadísticas por posición y dígito.
//
// Cada run recalcula el vector completo desde el ledger; no tiene identidad
// persistida. Dos ventanas en la misma pasada: la corta (trailing K sorteos)
// y el histórico completo, con keys de peso separadas para que el modelo
// pueda valorar señal de corto y largo plazo de forma independiente.

// Keys de feature conocidas por el modelo.
const (
	FeatFrequencyShort = "frequency_short" // frecuencia en la ventana corta
	FeatFrequencyFull  = "frequency_full"  // frecuencia en el histórico completo
	FeatOmissionShort  = "omission_short"  // sorteos desde la última aparición (ventana corta)
	FeatOmissionFull   = "omission_full"   // sorteos desde la última aparición (histórico)
	FeatTrend          = "trend"           // frequency_short - frequency_full
)

// FeatureKeys devuelve todas las keys conocidas en orden estable.
func FeatureKeys() []string {
	return []string{
		FeatFrequencyShort,
		FeatFrequencyFull,
		FeatOmissionShort,
		FeatOmissionFull,
		FeatTrend,
	}
}

// DigitFeatures es el mapa feature-key → valor para un (posición, dígito).
type DigitFeatures map[string]float64

// FeatureVector contiene las features de cada dígito 0-9 en cada posición.
type FeatureVector struct {
	// PerDigit[pos][digit] → features de ese dígito en esa posición.
	PerDigit [Positions][DigitMax + 1]DigitFeatures

	// WindowShort es el tamaño efectivo de la ventana corta tras el clamp
	// al histórico disponible.
	WindowShort int

	// WindowFull es la longitud del histórico usado.
	WindowFull int
}
