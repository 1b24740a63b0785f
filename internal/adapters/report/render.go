package report

// render.go — renderizado del informe de análisis y de las entradas del
// archivo de cálculo de premios.
//
// El formato replica el que consumen los colaboradores externos de
// notificación: las etiquetas "分析基于数据: 截至 N 期", "本次预测目标: 第 N 期",
// "注 N: [...]" y "第X位推荐: [...]" son contrato, no decoración. El render
// es determinista: mismos inputs (timestamp incluido) ⇒ mismos bytes.

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/alejandrodnm/pl5bot/internal/domain"
	"github.com/alejandrodnm/pl5bot/internal/ports"
)

const timeLayout = "2006-01-02 15:04:05"

var positionNames = [domain.Positions]string{"第一位", "第二位", "第三位", "第四位", "第五位"}

// RenderAnalysis produce el informe principal del run.
func RenderAnalysis(r ports.RunReport) string {
	var sb strings.Builder

	fmt.Fprintln(&sb, "排列五智能分析报告")
	fmt.Fprintln(&sb, strings.Repeat("=", 80))
	fmt.Fprintf(&sb, "生成时间: %s\n", r.GeneratedAt.Format(timeLayout))
	fmt.Fprintf(&sb, "分析基于数据: 截至 %s 期\n", r.CutoffPeriod)
	fmt.Fprintf(&sb, "本次预测目标: 第 %s 期\n", r.Prediction.TargetPeriod)
	fmt.Fprintf(&sb, "短期窗口: %d 期 | 模型迭代: %d | 本次调优: %s\n",
		r.WindowShort, r.Weights.Iterations, yesNo(r.Tuned))
	fmt.Fprintln(&sb)

	fmt.Fprintln(&sb, "复式推荐:")
	for pos := 0; pos < domain.Positions; pos++ {
		fmt.Fprintf(&sb, "  %s推荐: %s\n", positionNames[pos], digitList(r.Prediction.TopN[pos]))
	}
	fmt.Fprintln(&sb)

	fmt.Fprintln(&sb, "单式推荐:")
	for i, ticket := range r.Prediction.Tickets {
		fmt.Fprintf(&sb, "  注 %d: %s\n", i+1, digitList(ticket[:]))
	}
	fmt.Fprintln(&sb)

	fmt.Fprintln(&sb, "各位置评分明细:")
	sb.WriteString(renderRankingTable(r.Ranked, len(r.Prediction.TopN[0])))
	fmt.Fprintln(&sb)

	if len(r.Backtest) > 0 {
		fmt.Fprintln(&sb, "回测结果:")
		for _, bt := range r.Backtest {
			fmt.Fprintf(&sb, "  第 %s 期: 命中 %d/%d (hit rate %.2f)\n",
				bt.TargetPeriod, bt.Hits, domain.Positions, bt.HitRate)
		}
		fmt.Fprintln(&sb)
	}

	fmt.Fprintln(&sb, "权重配置:")
	for _, key := range r.Weights.Keys() {
		fmt.Fprintf(&sb, "  %s: %.6f\n", key, r.Weights.Weights[key])
	}

	return sb.String()
}

// renderRankingTable arma la tabla top-N por posición.
func renderRankingTable(ranked [domain.Positions][]domain.ScoredCandidate, topN int) string {
	var buf strings.Builder
	table := tablewriter.NewWriter(&buf)

	header := make([]any, 0, topN+1)
	header = append(header, "Pos")
	for i := 1; i <= topN; i++ {
		header = append(header, fmt.Sprintf("#%d", i))
	}
	table.Header(header...)

	for pos := 0; pos < domain.Positions; pos++ {
		row := make([]any, 0, topN+1)
		row = append(row, positionNames[pos])
		for i := 0; i < topN && i < len(ranked[pos]); i++ {
			c := ranked[pos][i]
			row = append(row, fmt.Sprintf("%d (%.4f)", c.Digit, c.Score))
		}
		table.Append(row...)
	}
	table.Render()
	return buf.String()
}

// RenderCalculationEntry produce una entrada del archivo de cálculo: la
// evaluación de premios de una predicción ya resuelta.
func RenderCalculationEntry(r ports.RunReport, summary domain.PrizeSummary) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "评估时间: %s\n", r.GeneratedAt.Format(timeLayout))
	fmt.Fprintf(&sb, "评估期号: %s\n", summary.TargetPeriod)
	fmt.Fprintf(&sb, "开奖号码: %s\n", summary.DrawNumber)
	fmt.Fprintf(&sb, "推荐数量: %d注\n", summary.Tickets)
	fmt.Fprintf(&sb, "中奖数量: %d注\n", len(summary.Hits))
	fmt.Fprintf(&sb, "总奖金: %s元\n", groupDigits(summary.TotalCNY))

	if len(summary.Hits) > 0 {
		fmt.Fprintln(&sb)
		fmt.Fprintln(&sb, "中奖详情:")
		for _, hit := range summary.Hits {
			fmt.Fprintf(&sb, "  第%d注: %s - 直选 - %s元\n",
				hit.Index, ticketString(hit.Ticket), groupDigits(hit.Amount))
		}
	}
	return sb.String()
}

// digitList formatea dígitos como "[3, 0, 7, 1, 7]".
func digitList(digits []int) string {
	strs := make([]string, len(digits))
	for i, d := range digits {
		strs[i] = fmt.Sprintf("%d", d)
	}
	return "[" + strings.Join(strs, ", ") + "]"
}

// ticketString concatena una apuesta como "30717".
func ticketString(t [domain.Positions]int) string {
	buf := make([]byte, domain.Positions)
	for i, d := range t {
		buf[i] = byte('0' + d)
	}
	return string(buf)
}

// groupDigits agrupa miles con comas: 100000 → "100,000".
func groupDigits(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	return s + "," + strings.Join(parts, ",")
}

func yesNo(b bool) string {
	if b {
		return "是"
	}
	return "否"
}
