// Package tui renders governance reports for terminals.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/flaggate/flaggate/internal/domain"
)

var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3")
	dim     = lipgloss.Color("#6B7280")
	success = lipgloss.Color("#22C55E")
	danger  = lipgloss.Color("#EF4444")
	warning = lipgloss.Color("#F59E0B")
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(accent).Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle     = lipgloss.NewStyle().Foreground(dim)
	passStyle    = lipgloss.NewStyle().Bold(true).Foreground(success)
	failStyle    = lipgloss.NewStyle().Bold(true).Foreground(danger)
	warnStyle    = lipgloss.NewStyle().Foreground(warning)
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(fg)
	bulletStyle  = lipgloss.NewStyle().Foreground(danger)
)

// ruleTitles maps rule kinds to their section headers, in report order.
var ruleTitles = []struct {
	kind  domain.RuleKind
	title string
}{
	{domain.RuleRemovalTag, "Flags Marked For Removal"},
	{domain.RuleCountLimit, "Flag Count Limit"},
	{domain.RuleStaleModified, "Stale Flags (last modified)"},
	{domain.RuleStaleTraffic, "Stale Flags (last traffic)"},
}

// RenderReport renders a Report as a styled terminal string.
func RenderReport(report *domain.Report) string {
	var b strings.Builder

	verdict := passStyle.Render("PASS")
	if !report.Passed {
		verdict = failStyle.Render(fmt.Sprintf("FAIL: %d violation(s)", len(report.Violations)))
	}
	title := headerStyle.Render("flaggate")
	subtitle := dimStyle.Render("feature flag governance")
	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + verdict))
	b.WriteString("\n")

	for _, section := range ruleTitles {
		renderRuleSection(&b, section.title, section.kind, report.Violations)
	}

	if len(report.Warnings) > 0 {
		b.WriteString("\n")
		b.WriteString("  " + sectionStyle.Render("Warnings") + "\n")
		for _, w := range report.Warnings {
			b.WriteString("    " + warnStyle.Render("●") + " " + w + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString("  " + dimStyle.Render(fmt.Sprintf(
		"%d file(s) analyzed · %d flag(s) used · %d flag(s) in registry",
		report.FilesAnalyzed, len(report.UsedFlags), report.RegistrySize)))
	b.WriteString("\n")

	return b.String()
}

func renderRuleSection(b *strings.Builder, title string, kind domain.RuleKind, violations []domain.Violation) {
	var matched []domain.Violation
	for _, v := range violations {
		if v.Rule == kind {
			matched = append(matched, v)
		}
	}
	if len(matched) == 0 {
		return
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s %s\n",
		sectionStyle.Render(title),
		dimStyle.Render(fmt.Sprintf("(%d)", len(matched))),
	))
	for _, v := range matched {
		b.WriteString("    " + bulletStyle.Render("●") + " " + v.Message + "\n")
		for _, f := range v.Files {
			b.WriteString("        " + dimStyle.Render(f) + "\n")
		}
	}
}
