package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/bjtrainer/internal/fileutil"
	"github.com/lox/bjtrainer/internal/statistics"
	"github.com/lox/bjtrainer/internal/strategy"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	headerCellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
)

func percent(p float64, n int) string {
	if n == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", p*100)
}

// renderSummary formats session statistics as two small tables.
func renderSummary(st statistics.Statistics) string {
	lo, hi := st.ConfidenceInterval95()

	overview := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers("Session", "").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCellStyle
			}
			return cellStyle
		}).
		Row("Rounds", fmt.Sprint(st.Rounds)).
		Row("Hands", fmt.Sprint(st.Hands)).
		Row("Decisions", fmt.Sprint(st.Decisions)).
		Row("Accuracy", percent(st.Accuracy(), st.Decisions)).
		Row("95% interval", fmt.Sprintf("%s - %s", percent(lo, st.Decisions), percent(hi, st.Decisions))).
		Row("Mistakes", fmt.Sprint(st.Mistakes)).
		Row("Replays passed", fmt.Sprintf("%d/%d", st.ReplaysPassed, st.ReplaysServed)).
		Row("Doubles / splits", fmt.Sprintf("%d / %d", st.Doubles, st.Splits)).
		Row("Elapsed", st.Elapsed.Round(time.Second).String())

	charts := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers("Chart", "Decisions", "Accuracy").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCellStyle
			}
			return cellStyle
		})
	for _, c := range []strategy.Chart{strategy.HardChart, strategy.SoftChart, strategy.PairChart, strategy.SurrenderChart} {
		cs := st.Chart(c)
		charts.Row(c.String(), fmt.Sprint(cs.Decisions), percent(cs.Accuracy(), cs.Decisions))
	}

	outcomes := make([]string, 0, len(statistics.Settlements))
	for _, s := range statistics.Settlements {
		outcomes = append(outcomes, fmt.Sprintf("%s %d", s, st.Settled(s)))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Training summary"))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, overview.String(), " ", charts.String()))
	b.WriteString("\n")
	b.WriteString(strings.Join(outcomes, "  "))
	return b.String()
}

// writeReport exports st as JSON when path is set.
func writeReport(path, session string, st statistics.Statistics, clock quartz.Clock, logger *log.Logger) error {
	if path == "" {
		return nil
	}
	if err := fileutil.WriteJSON(path, st.Report(session, clock.Now())); err != nil {
		return fmt.Errorf("failed to write stats file: %w", err)
	}
	logger.Info("Stats written to file", "file", path)
	return nil
}
