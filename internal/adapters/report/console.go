package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/alejandrodnm/pl5bot/internal/domain"
	"github.com/alejandrodnm/pl5bot/internal/ports"
)

// Console implementa ports.Publisher imprimiendo un resumen por stdout.
// Útil en cron (el log del job queda legible) y en dry-run.
type Console struct {
	out   io.Writer
	table bool
}

// NewConsole crea un publisher de consola.
func NewConsole(table bool) *Console {
	return &Console{out: os.Stdout, table: table}
}

// NewConsoleWriter crea un publisher de consola para tests.
func NewConsoleWriter(w io.Writer, table bool) *Console {
	return &Console{out: w, table: table}
}

// Publish imprime el resumen del run en el modo configurado.
func (c *Console) Publish(_ context.Context, r ports.RunReport) error {
	if c.table {
		c.printFull(r)
	} else {
		c.printCompact(r)
	}
	return nil
}

// printCompact imprime lo esencial en una línea.
func (c *Console) printCompact(r ports.RunReport) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] target %s", r.GeneratedAt.Format("15:04:05"), r.Prediction.TargetPeriod)

	if len(r.Prediction.Tickets) > 0 {
		fmt.Fprintf(&sb, " pick %s", ticketString(r.Prediction.Tickets[0]))
	}
	fmt.Fprintf(&sb, " | tuned:%v iter:%d", r.Tuned, r.Weights.Iterations)

	for _, bt := range r.Backtest {
		fmt.Fprintf(&sb, " | %s hits %d/%d", bt.TargetPeriod, bt.Hits, domain.Positions)
	}
	for _, prize := range r.Prizes {
		if prize.TotalCNY > 0 {
			fmt.Fprintf(&sb, " | PRIZE %s CNY", groupDigits(prize.TotalCNY))
		}
	}

	fmt.Fprintln(c.out, sb.String())
}

// printFull imprime la tabla de candidatos completa más el resumen.
func (c *Console) printFull(r ports.RunReport) {
	fmt.Fprintf(c.out, "\n[%s] prediction for period %s (cutoff %s)\n",
		r.GeneratedAt.Format("15:04:05"), r.Prediction.TargetPeriod, r.CutoffPeriod)

	table := tablewriter.NewWriter(c.out)
	table.Header("Pos", "Top digits", "Best score")
	for pos := 0; pos < domain.Positions; pos++ {
		best := 0.0
		if len(r.Ranked[pos]) > 0 {
			best = r.Ranked[pos][0].Score
		}
		table.Append(
			fmt.Sprintf("%d", pos+1),
			digitList(r.Prediction.TopN[pos]),
			fmt.Sprintf("%.4f", best),
		)
	}
	table.Render()

	for i, ticket := range r.Prediction.Tickets {
		fmt.Fprintf(c.out, "ticket %d: %s\n", i+1, ticketString(ticket))
	}
	if r.Tuned {
		fmt.Fprintf(c.out, "weights tuned → iteration %d\n", r.Weights.Iterations)
	}
	for _, prize := range r.Prizes {
		fmt.Fprintf(c.out, "period %s: %d/%d tickets won, total %s CNY\n",
			prize.TargetPeriod, len(prize.Hits), prize.Tickets, groupDigits(prize.TotalCNY))
	}
}

// Multi publica en varios publishers en orden; el primero que falle aborta.
type Multi []ports.Publisher

// Publish implementa ports.Publisher.
func (m Multi) Publish(ctx context.Context, r ports.RunReport) error {
	for _, p := range m {
		if err := p.Publish(ctx, r); err != nil {
			return err
		}
	}
	return nil
}
