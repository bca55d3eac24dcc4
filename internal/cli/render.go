package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/dafibh/kakeibo/kakeibo-backend/internal/domain"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorRed       = lipgloss.Color("#D14D41")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	warnStyle = lipgloss.NewStyle().
			Foreground(ColorOrange)

	badStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// pad fills cell to width display columns. Widths are measured with
// lipgloss so full-width characters in names line up.
func pad(cell string, width int, right bool) string {
	fill := width - lipgloss.Width(cell)
	if fill < 0 {
		fill = 0
	}
	if right {
		return " " + strings.Repeat(" ", fill) + cell + " "
	}
	return " " + cell + strings.Repeat(" ", fill) + " "
}

func rule(b *strings.Builder, widths []int, left, mid, right string) {
	b.WriteString(dimStyle.Render(left))
	for i, w := range widths {
		b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
		if i < len(widths)-1 {
			b.WriteString(dimStyle.Render(mid))
		}
	}
	b.WriteString(dimStyle.Render(right))
	b.WriteString("\n")
}

// RenderTable renders a bordered table with headers and rows.
// The first column is left aligned, the rest right aligned.
// A row holding the single cell "---" renders as a separator.
func RenderTable(t Table) string {
	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}
	if numCols == 0 {
		return ""
	}

	widths := make([]int, numCols)
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			continue
		}
		for i, cell := range row {
			if i < numCols && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var b strings.Builder

	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	rule(&b, widths, "╭", "┬", "╮")

	if len(t.Headers) > 0 {
		b.WriteString(dimStyle.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(headerStyle.Render(pad(h, widths[i], false)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
		rule(&b, widths, "├", "┼", "┤")
	}

	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			rule(&b, widths, "├", "┼", "┤")
			continue
		}

		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString(valueStyle.Render(pad(cell, widths[i], i > 0)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
	}

	rule(&b, widths, "╰", "┴", "╯")

	return b.String()
}

// ProjectionTable lays out a projected trajectory with the change since
// the previous point.
func ProjectionTable(points []domain.ProjectionPoint) Table {
	rows := make([][]string, 0, len(points))
	prev := decimal.Zero
	for i, p := range points {
		change := ""
		if i > 0 {
			change = FormatDelta(p.Balance.Sub(prev))
		}
		rows = append(rows, []string{
			p.Label,
			p.Date.Format("2006-01-02"),
			FormatYen(p.Balance),
			change,
		})
		prev = p.Balance
	}
	return Table{
		Headers: []string{"Label", "Date", "Balance", "Change"},
		Rows:    rows,
	}
}

// TotalsTable lays out the monthly aggregates of recurring items.
func TotalsTable(totals domain.Totals) Table {
	return Table{
		Title:   "Monthly totals",
		Headers: []string{"Item", "Amount"},
		Rows: [][]string{
			{"Income", FormatYen(totals.MonthlyIncome)},
			{"Expenses", FormatYen(totals.MonthlyExpense)},
			{"---"},
			{"Net", FormatDelta(totals.MonthlyNet)},
			{"Card debt", FormatYen(totals.CreditCardDebt)},
		},
	}
}

// RenderSummary renders the headline numbers followed by the card table.
func RenderSummary(s *domain.FinancialSummary) string {
	var b strings.Builder

	b.WriteString(RenderTable(Table{
		Headers: []string{"Summary", "Amount"},
		Rows: [][]string{
			{"Current balance", FormatYen(s.CurrentBalance)},
			{"Monthly income", FormatYen(s.MonthlyIncome)},
			{"Monthly expenses", FormatYen(s.MonthlyExpenses)},
			{"Monthly savings", FormatDelta(s.MonthlySavings)},
			{"Card debt", FormatYen(s.CreditCardDebt)},
			{"Days left", FormatDays(s.DaysLeft)},
		},
	}))

	if len(s.Cards) == 0 {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("  No credit cards."))
		b.WriteString("\n")
		return b.String()
	}

	rows := make([][]string, 0, len(s.Cards))
	for _, cs := range s.Cards {
		rows = append(rows, []string{
			cs.Card.Name,
			FormatYen(cs.Card.CurrentBalance),
			FormatYen(cs.Card.CreditLimit),
			fmt.Sprintf("%s %s", FormatPercent(cs.UtilizationPercent), cs.UtilizationLevel),
			fmt.Sprintf("%s %s", FormatDays(cs.DaysUntilPayment), cs.PaymentUrgency),
		})
	}
	b.WriteString("\n")
	b.WriteString(RenderTable(Table{
		Title:   "Credit cards",
		Headers: []string{"Card", "Balance", "Limit", "Utilization", "Payment"},
		Rows:    rows,
	}))

	for _, cs := range s.Cards {
		if note := cardNote(cs); note != "" {
			b.WriteString("  ")
			b.WriteString(note)
			b.WriteString("\n")
		}
	}

	return b.String()
}

func cardNote(cs domain.CardStatus) string {
	switch {
	case cs.PaymentUrgency == domain.PaymentUrgent:
		return badStyle.Render(fmt.Sprintf("%s: payment of %s due in %s", cs.Card.Name, FormatYen(cs.Card.CurrentBalance), FormatDays(cs.DaysUntilPayment)))
	case cs.UtilizationLevel == domain.UtilizationHigh:
		return warnStyle.Render(fmt.Sprintf("%s: utilization %s", cs.Card.Name, FormatPercent(cs.UtilizationPercent)))
	case cs.PaymentUrgency == domain.PaymentSoon:
		return mutedStyle.Render(fmt.Sprintf("%s: payment in %s", cs.Card.Name, FormatDays(cs.DaysUntilPayment)))
	default:
		return ""
	}
}
