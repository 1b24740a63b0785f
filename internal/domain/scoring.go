package domain

import "sort"

// scoring.go — matemática pura del modelo ponderado.
//
// Score(pos, dígito) = Σ_k feature[k] × weight[k]. El modelo NO asume que
// "frecuencia alta es buena": el signo y la magnitud de cada peso los decide
// el tuning, así que una feature puede subir o bajar el score según lo que
// históricamente correlacionó con aciertos.

// ScoredCandidate es el score de un dígito en una posición. Derivado y
// efímero: se recalcula en cada run.
type ScoredCandidate struct {
	Position int
	Digit    int
	Score    float64
}

// ScoreDigit calcula la suma ponderada de features para un dígito.
// Las keys desconocidas para la configuración pesan NeutralUnknownWeight;
// el llamador decide si quiere loguearlas (ver analyzer.Score).
func ScoreDigit(features DigitFeatures, weights WeightConfig) float64 {
	keys := make([]string, 0, len(features))
	for k := range features {
		keys = append(keys, k)
	}
	sort.Strings(keys) // suma en orden estable → resultado reproducible bit a bit

	var score float64
	for _, k := range keys {
		w, _ := weights.Weight(k)
		score += features[k] * w
	}
	return score
}

// RankCandidates ordena candidatos de una posición: score descendente,
// empates rotos por dígito ascendente. El orden es total — nunca quedan
// dos candidatos sin desempatar.
func RankCandidates(candidates []ScoredCandidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Digit < candidates[j].Digit
	})
}

// TopDigits devuelve los primeros n dígitos de una lista ya rankeada.
func TopDigits(ranked []ScoredCandidate, n int) []int {
	if n > len(ranked) {
		n = len(ranked)
	}
	digits := make([]int, n)
	for i := 0; i < n; i++ {
		digits[i] = ranked[i].Digit
	}
	return digits
}

// TicketScore es el score de una combinación completa: suma de los scores
// por posición. Asume independencia entre posiciones — una simplificación
// explícita del modelo, no una afirmación de correctitud.
func TicketScore(ranked [Positions][]ScoredCandidate, ticket [Positions]int) float64 {
	var total float64
	for pos := 0; pos < Positions; pos++ {
		for _, c := range ranked[pos] {
			if c.Digit == ticket[pos] {
				total += c.Score
				break
			}
		}
	}
	return total
}

// BuildTickets genera n apuestas simples (combinaciones de 5 dígitos) de
// forma determinista a partir de las listas rankeadas: la primera usa el
// top-1 de cada posición; cada siguiente baja una posición (en orden) al
// siguiente rango, cubriendo las variantes más próximas al pick principal.
func BuildTickets(ranked [Positions][]ScoredCandidate, n int) [][Positions]int {
	if n <= 0 {
		return nil
	}

	var base [Positions]int
	for pos := 0; pos < Positions; pos++ {
		if len(ranked[pos]) == 0 {
			return nil
		}
		base[pos] = ranked[pos][0].Digit
	}

	tickets := make([][Positions]int, 0, n)
	tickets = append(tickets, base)

	rank := 1
	for len(tickets) < n {
		progressed := false
		for pos := 0; pos < Positions && len(tickets) < n; pos++ {
			if rank >= len(ranked[pos]) {
				continue
			}
			t := base
			t[pos] = ranked[pos][rank].Digit
			tickets = append(tickets, t)
			progressed = true
		}
		if !progressed {
			break // listas agotadas, no hay más variantes
		}
		rank++
	}
	return tickets
}
