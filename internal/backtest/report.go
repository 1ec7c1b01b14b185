package backtest

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	gainStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	lossStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Render formats the strategy summary next to the buy-and-hold benchmark as
// a small aligned table for terminal output.
func Render(strat, hold Summary) string {
	rows := []struct {
		label         string
		strat, hold   string
		signedColours bool
	}{
		{"CAGR", formatPct(strat.CAGR), formatPct(hold.CAGR), true},
		{"Vol (ann.)", formatPct(strat.AnnualVol), formatPct(hold.AnnualVol), false},
		{"Sharpe", formatRatio(strat.Sharpe), formatRatio(hold.Sharpe), false},
		{"Max Drawdown", formatPct(strat.MaxDrawdown), formatPct(hold.MaxDrawdown), true},
		{"Trades", fmt.Sprintf("%d", strat.Trades), fmt.Sprintf("%d", hold.Trades), false},
		{"Win Rate (active days)", formatPct(strat.WinRate), formatPct(hold.WinRate), false},
	}

	// Pad before styling: ANSI escape sequences would otherwise break the
	// column widths.
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", 24))
	b.WriteString(headerStyle.Render(fmt.Sprintf("%12s", "Strategy")))
	b.WriteString(headerStyle.Render(fmt.Sprintf("%12s", "Buy&Hold")))
	b.WriteByte('\n')
	for _, row := range rows {
		stratStyle, holdStyle := valueStyle, valueStyle
		if row.signedColours {
			stratStyle = signedStyle(row.strat)
			holdStyle = signedStyle(row.hold)
		}
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-24s", row.label)))
		b.WriteString(stratStyle.Render(fmt.Sprintf("%12s", row.strat)))
		b.WriteString(holdStyle.Render(fmt.Sprintf("%12s", row.hold)))
		b.WriteByte('\n')
	}
	return b.String()
}

// signedStyle colours negative values red and positive values green.
func signedStyle(formatted string) lipgloss.Style {
	if strings.HasPrefix(formatted, "-") {
		return lossStyle
	}
	return gainStyle
}

// formatPct renders a fraction as a percentage, or "-" when undefined.
func formatPct(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%.2f%%", v*100)
}

// formatRatio renders a dimensionless ratio, or "-" when undefined.
func formatRatio(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%.2f", v)
}
