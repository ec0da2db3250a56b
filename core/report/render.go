package report

import (
	"fmt"
	"strings"

	"tool-compare-data/core/reconcile"

	"github.com/charmbracelet/lipgloss"
)

var (
	accent  = lipgloss.Color("#D97706")
	dim     = lipgloss.Color("#6B7280")
	success = lipgloss.Color("#22C55E")
	danger  = lipgloss.Color("#EF4444")
	warning = lipgloss.Color("#F59E0B")
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent)
	dimStyle     = lipgloss.NewStyle().Foreground(dim)
	passStyle    = lipgloss.NewStyle().Foreground(success).Bold(true)
	failStyle    = lipgloss.NewStyle().Foreground(danger).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(warning)
	sectionStyle = lipgloss.NewStyle().Bold(true)
)

// maxListed caps the findings listed per section.
const maxListed = 20

// Render formats a result for a terminal.
func Render(result *reconcile.ValidationResult) string {
	var b strings.Builder

	status := passStyle.Render(strings.ToUpper(string(result.Status)))
	if result.Status == reconcile.StatusFailed {
		status = failStyle.Render(strings.ToUpper(string(result.Status)))
	}
	b.WriteString(headerStyle.Render("Validation result") + "  " + status + "\n")

	if rc := result.RowCountCheck; rc != nil {
		b.WriteString("\n" + sectionStyle.Render("Row count") + "\n")
		b.WriteString(fmt.Sprintf("  %s source=%s target=%s\n",
			failStyle.Render("✗"), intOrDash(rc.SourceCount), intOrDash(rc.TargetCount)))
	}

	if len(result.FieldMappingCheck) > 0 {
		b.WriteString("\n" + sectionStyle.Render("Field mapping") + "\n")
		for _, entry := range result.FieldMappingCheck {
			b.WriteString(fmt.Sprintf("  %s %s -> %s  %s\n",
				failStyle.Render("✗"), entry.SourceField, entry.TargetField, dimStyle.Render(entry.Message)))
		}
	}

	if n := len(result.MismatchedRecords); n > 0 {
		b.WriteString("\n" + sectionStyle.Render(fmt.Sprintf("Mismatched records (%d)", n)) + "\n")
		for i, m := range result.MismatchedRecords {
			if i == maxListed {
				b.WriteString(dimStyle.Render(fmt.Sprintf("  … %d more", n-maxListed)) + "\n")
				break
			}
			if m.Kind == reconcile.MissingTargetRow {
				key := m.Key
				if m.Keyless {
					key = dimStyle.Render("<absent>")
				}
				b.WriteString(fmt.Sprintf("  %s key=%s  %s\n", failStyle.Render("✗"), key, dimStyle.Render(m.Error)))
				continue
			}
			b.WriteString(fmt.Sprintf("  %s key=%s %s: %s != %s\n",
				failStyle.Render("✗"), m.Key, m.Field, quoteOrAbsent(m.SourceValue), quoteOrAbsent(m.TargetValue)))
		}
	}

	if d := result.DuplicateKeys; d != nil {
		b.WriteString("\n" + sectionStyle.Render("Duplicate target keys") + "\n")
		b.WriteString(warnStyle.Render(fmt.Sprintf("  %d hidden record(s), keys: %s", d.Count, strings.Join(d.Keys, ", "))) + "\n")
	}

	return b.String()
}

func intOrDash(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}

func quoteOrAbsent(v *string) string {
	if v == nil {
		return dimStyle.Render("<absent>")
	}
	return fmt.Sprintf("%q", *v)
}
