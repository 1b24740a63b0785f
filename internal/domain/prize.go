package domain

// prize.go — evaluación de premios de las apuestas simples.
//
// pl5 paga premio directo (直选) cuando los cinco dígitos de la apuesta
// coinciden con el sorteo en el mismo orden. Es la única categoría del juego.

// StraightPrizeCNY es el premio fijo por apuesta directa acertada.
const StraightPrizeCNY = 100_000

// PrizeHit es una apuesta ganadora dentro de una evaluación.
type PrizeHit struct {
	Index  int // índice 1-based de la apuesta en la predicción
	Ticket [Positions]int
	Amount int // CNY
}

// PrizeSummary es el resultado de evaluar todas las apuestas de una
// predicción contra el sorteo revelado.
type PrizeSummary struct {
	TargetPeriod string
	DrawNumber   string // dígitos revelados concatenados
	Tickets      int
	Hits         []PrizeHit
	TotalCNY     int
}

// EvaluatePrizes cruza las apuestas simples con el sorteo revelado.
func EvaluatePrizes(tickets [][Positions]int, draw DrawRecord) PrizeSummary {
	summary := PrizeSummary{
		TargetPeriod: draw.Period,
		DrawNumber:   draw.Number(),
		Tickets:      len(tickets),
	}
	for i, t := range tickets {
		if t == draw.Digits {
			summary.Hits = append(summary.Hits, PrizeHit{
				Index:  i + 1,
				Ticket: t,
				Amount: StraightPrizeCNY,
			})
			summary.TotalCNY += StraightPrizeCNY
		}
	}
	return summary
}
