package analyzer

// extract.go — extracción de features estadísticas desde el ledger.
//
// Para cada (posición, dígito) se calculan en una sola pasada:
//   - frequency_short / frequency_full: apariciones / longitud de ventana
//   - omission_short / omission_full: sorteos desde la última aparición
//     (0 si salió en el sorteo más reciente; longitud de la ventana si
//     nunca salió en ella)
//   - trend: frequency_short - frequency_full
//
// La función es pura dado el contenido del ledger: mismo ledger y misma
// ventana ⇒ mismo vector, siempre.

import "github.com/alejandrodnm/pl5bot/internal/domain"

// Extract calcula el vector de features con la ventana corta pedida.
// Si shortWindow excede el histórico disponible, se recorta y el tamaño
// efectivo queda registrado en el vector.
func Extract(ledger domain.Ledger, shortWindow int) domain.FeatureVector {
	full := len(ledger)
	short := shortWindow
	if short <= 0 || short > full {
		short = full
	}

	fv := domain.FeatureVector{
		WindowShort: short,
		WindowFull:  full,
	}

	for pos := 0; pos < domain.Positions; pos++ {
		var countFull, countShort [domain.DigitMax + 1]int
		lastSeen := [domain.DigitMax + 1]int{}
		for d := range lastSeen {
			lastSeen[d] = -1 // nunca visto
		}

		for i, draw := range ledger {
			d := draw.Digits[pos]
			countFull[d]++
			if i >= full-short {
				countShort[d]++
			}
			lastSeen[d] = i
		}

		for d := 0; d <= domain.DigitMax; d++ {
			omissionFull := full
			if lastSeen[d] >= 0 {
				omissionFull = full - 1 - lastSeen[d]
			}
			omissionShort := omissionFull
			if omissionShort > short {
				omissionShort = short // fuera de la ventana corta ≡ nunca visto en ella
			}

			var freqFull, freqShort float64
			if full > 0 {
				freqFull = float64(countFull[d]) / float64(full)
			}
			if short > 0 {
				freqShort = float64(countShort[d]) / float64(short)
			}

			fv.PerDigit[pos][d] = domain.DigitFeatures{
				domain.FeatFrequencyShort: freqShort,
				domain.FeatFrequencyFull:  freqFull,
				domain.FeatOmissionShort:  float64(omissionShort),
				domain.FeatOmissionFull:   float64(omissionFull),
				domain.FeatTrend:          freqShort - freqFull,
			}
		}
	}

	return fv
}
