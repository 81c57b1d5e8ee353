package vbfplot

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/decibelcooper/vbfplot/vbf"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
)

// CutFlowTable renders the cut flow with one row per stage: the events
// reaching the stage, those passing it, the efficiency of the stage and the
// cumulative efficiency.
func CutFlowTable(title string, flow vbf.CutFlow) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("stage", "reached", "passed", "eff", "cumulative").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return cellStyle
			}
			return numberStyle
		})

	for st := vbf.Stage(0); st < vbf.NumStages; st++ {
		reached := flow.Reached(st)
		passed := flow.Passed[st]
		t.Row(
			st.String(),
			strconv.Itoa(reached),
			strconv.Itoa(passed),
			formatRatio(passed, reached),
			formatRatio(passed, flow.Total),
		)
	}

	if title == "" {
		return t.String()
	}
	return headerStyle.Render(fmt.Sprintf("%s (%d events)", title, flow.Total)) + "\n" + t.String()
}

func formatRatio(num, den int) string {
	if den == 0 {
		return "-"
	}
	return strconv.FormatFloat(float64(num)/float64(den), 'f', 4, 64)
}

// YieldLine formats a yield and its ratio to total as a percentage.
func YieldLine(label string, n, total int) string {
	if total == 0 {
		return fmt.Sprintf("%s: %d", label, n)
	}
	return fmt.Sprintf("%s: %d (%.2f%%)", label, n, 100*float64(n)/float64(total))
}
