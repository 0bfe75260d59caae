package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lox/bjtrainer/internal/strategy"
)

type ChartCmd struct {
	Type string `arg:"" optional:"" default:"all" enum:"all,hard,soft,pair" help:"Which chart to print (${enum})"`
}

var cellColors = map[string]lipgloss.Color{
	"H":  lipgloss.Color("#FFFFFF"),
	"S":  lipgloss.Color("#FFD700"),
	"D":  lipgloss.Color("#04B575"),
	"Ds": lipgloss.Color("#04B575"),
	"P":  lipgloss.Color("#00BFFF"),
	"R":  lipgloss.Color("#FF4672"),
}

func (c *ChartCmd) Run(g *Globals) error {
	if _, err := g.loadConfig(); err != nil {
		return err
	}

	var out []string
	for _, ct := range strategy.Charts() {
		if c.Type != "all" && !strings.HasPrefix(strings.ToLower(ct.Title), c.Type) {
			continue
		}
		out = append(out, titleStyle.Render(ct.Title), renderChart(ct))
	}
	out = append(out, "H hit  S stand  D double (else hit)  Ds double (else stand)  P split  R surrender (else hit)")

	fmt.Fprintln(os.Stdout, strings.Join(out, "\n"))
	return nil
}

func renderChart(ct strategy.ChartTable) string {
	headers := []string{""}
	for _, up := range ct.Columns {
		headers = append(headers, up.String())
	}

	rows := make([][]string, 0, len(ct.Rows))
	for _, r := range ct.Rows {
		rows = append(rows, append([]string{r.Label}, r.Cells...))
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerCellStyle.Align(lipgloss.Center)
			case col == 0:
				return headerCellStyle
			}
			style := cellStyle.Align(lipgloss.Center)
			if color, ok := cellColors[rows[row][col]]; ok {
				style = style.Foreground(color)
			}
			return style
		}).
		String()
}
