package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nocturne-journal/nocturne/internal/domain"
)

const wrapWidth = 64

// FormatResult renders a generation result: mood, insight and the
// suggested goals in order.
func FormatResult(title string, r *domain.GenerationResult) string {
	var b strings.Builder

	b.WriteString(MoodBadge(r.Mood))
	b.WriteString("\n\n")
	if r.Insight != "" {
		b.WriteString(StyleItalic.Width(wrapWidth).Render(r.Insight))
		b.WriteString("\n\n")
	}

	if len(r.Goals) > 0 {
		b.WriteString(Header("Goals"))
		b.WriteString("\n")
		for i, g := range r.Goals {
			icon := g.Icon
			if icon == "" {
				icon = domain.DefaultGoalIcon
			}
			fmt.Fprintf(&b, "%s %s %s\n", Dim(fmt.Sprintf("%d.", i+1)), icon, Bold(g.Text))
			if g.Why != "" {
				fmt.Fprintf(&b, "     %s\n", Dim(g.Why))
			}
		}
	}

	return RenderBox(title, strings.TrimRight(b.String(), "\n"))
}

// FormatGoals renders one day's goal list.
func FormatGoals(dateString string, goals []*domain.Goal) string {
	if len(goals) == 0 {
		return Dim(fmt.Sprintf("No goals for %s.", dateString))
	}
	headers := []string{"", "GOAL", "SOURCE", "ID"}
	rows := make([][]string, 0, len(goals))
	for _, g := range goals {
		check := Dim("○")
		text := StyleFg.Render(g.Text)
		if g.Completed {
			check = StyleTeal.Render("✔")
			text = Dim(g.Text)
		}
		source := StyleViolet.Render(string(g.Source))
		if g.Source == domain.GoalSourceManual {
			source = StyleAmber.Render(string(g.Source))
		}
		rows = append(rows, []string{check, g.Icon + " " + text, source, TruncID(g.ID)})
	}
	return Header("Goals · "+dateString) + "\n" + RenderTable(headers, rows)
}

// FormatEntries renders a list of entries in the order given.
func FormatEntries(entries []*domain.Entry) string {
	if len(entries) == 0 {
		return Dim("No entries found.")
	}
	headers := []string{"DATE", "TYPE", "MOOD", "TEXT", "ID"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.DateString,
			string(e.Type),
			MoodBadge(e.Mood),
			Preview(e.Text, 40),
			TruncID(e.ID),
		})
	}
	return RenderTable(headers, rows)
}

// Preview shortens text to at most n runes on one line.
func Preview(text string, n int) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n-1]) + "…"
}

// RenderTable aligns rows under a styled header. Widths are measured on
// visible cells so styled text lines up.
func RenderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(headers) && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	var b strings.Builder
	writeRow := func(cells []string, style func(string) string) {
		for i := range headers {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			pad := widths[i] - lipgloss.Width(cell)
			b.WriteString(style(cell))
			if i < len(headers)-1 {
				b.WriteString(strings.Repeat(" ", pad+2))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers, func(s string) string { return StyleHeader.Render(s) })
	for _, row := range rows {
		writeRow(row, func(s string) string { return s })
	}
	return b.String()
}
