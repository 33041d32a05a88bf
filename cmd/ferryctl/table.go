package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/goliatone/go-ferry-admin/components/sales"
	"github.com/goliatone/go-ferry-admin/pkg/logging"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	unpaidStyle = cellStyle.Foreground(lipgloss.Color("9"))
	paidStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

func isTTY(w io.Writer) bool {
	return logging.IsTerminal(w)
}

// renderSalesTable draws rows under the data columns. Colors are only used
// on terminals.
func renderSalesTable(columns sales.Columns, rows []sales.Sale, color bool) string {
	headers := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = col.Label
	}
	payedIndex := -1
	for i, col := range columns {
		if col.Key == "payed" {
			payedIndex = i
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case color && col == payedIndex && row >= 0 && row < len(rows) && !rows[row].Payed:
				return unpaidStyle
			default:
				return cellStyle
			}
		})
	for _, sale := range rows {
		cells := make([]string, len(columns))
		for i, col := range columns {
			cells[i] = col.Text(sale)
		}
		t.Row(cells...)
	}
	if len(rows) == 0 {
		return t.String() + "\nSin ventas en el rango seleccionado"
	}
	return t.String()
}

func renderSummary(out sales.DashboardSummary, color bool) string {
	var b strings.Builder
	paid := fmt.Sprintf("$%.2f (%d)", out.Summary.Paid, out.Summary.PaidCount)
	unpaid := fmt.Sprintf("$%.2f (%d)", out.Summary.Unpaid, out.Summary.UnpaidCount)
	if color {
		paid = paidStyle.Render(paid)
		unpaid = unpaidStyle.Render(unpaid)
	}
	fmt.Fprintf(&b, "Ventas %s\n", out.Window)
	fmt.Fprintf(&b, "  Pagado:    %s\n", paid)
	fmt.Fprintf(&b, "  Pendiente: %s\n", unpaid)
	fmt.Fprintf(&b, "  Total:     $%.2f\n", out.Summary.Total())

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Fecha", "Pagado", "Pendiente").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, day := range out.Daily {
		t.Row(day.Date, fmt.Sprintf("%.2f", day.Paid), fmt.Sprintf("%.2f", day.Unpaid))
	}
	b.WriteString(t.String())
	return b.String()
}
