package domain

import (
	"fmt"
	"time"
)

// Positions es la aridad fija de un sorteo pl5: cinco posiciones independientes.
const Positions = 5

// DigitMax es el valor máximo de un dígito por posición (dominio 0–9).
const DigitMax = 9

// DrawRecord es un sorteo histórico ya revelado. Inmutable una vez cargado.
type DrawRecord struct {
	Period string    // identificador de período, numérico y estrictamente creciente
	Digits [Positions]int
	Date   time.Time
}

// Validate verifica que el registro respete el dominio de dígitos y tenga período.
func (d DrawRecord) Validate() error {
	if d.Period == "" {
		return fmt.Errorf("draw: empty period")
	}
	for i, digit := range d.Digits {
		if digit < 0 || digit > DigitMax {
			return fmt.Errorf("draw %s: digit %d at position %d out of range 0-%d",
				d.Period, digit, i+1, DigitMax)
		}
	}
	return nil
}

// Number devuelve los cinco dígitos concatenados, p.ej. "30717".
func (d DrawRecord) Number() string {
	buf := make([]byte, Positions)
	for i, digit := range d.Digits {
		buf[i] = byte('0' + digit)
	}
	return string(buf)
}

// Ledger es la secuencia ordenada de sorteos históricos, append-only.
// El core solo la lee; la adquisición de filas nuevas es un colaborador externo.
type Ledger []DrawRecord

// Latest devuelve el sorteo más reciente. Panic-free: ok=false si está vacío.
func (l Ledger) Latest() (DrawRecord, bool) {
	if len(l) == 0 {
		return DrawRecord{}, false
	}
	return l[len(l)-1], true
}

// Find busca un sorteo por período.
func (l Ledger) Find(period string) (DrawRecord, bool) {
	for i := len(l) - 1; i >= 0; i-- {
		if l[i].Period == period {
			return l[i], true
		}
	}
	return DrawRecord{}, false
}

// Tail devuelve los últimos n sorteos (o todos si n excede el histórico).
func (l Ledger) Tail(n int) Ledger {
	if n >= len(l) {
		return l
	}
	return l[len(l)-n:]
}

// NextPeriod deriva el período objetivo de la próxima predicción: el período
// más reciente + 1, conservando el ancho del identificador (p.ej. 25107 → 25108).
func (l Ledger) NextPeriod() string {
	last, ok := l.Latest()
	if !ok {
		return ""
	}
	var n int64
	if _, err := fmt.Sscanf(last.Period, "%d", &n); err != nil {
		return ""
	}
	return fmt.Sprintf("%0*d", len(last.Period), n+1)
}
