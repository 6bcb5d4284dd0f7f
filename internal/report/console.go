// Package report renders the human-facing run report. The output is for
// operators only and carries no data contract.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/couchcryptid/crop-profile-etl/internal/domain"
)

const missing = "n/a"

type styles struct {
	heading lipgloss.Style
	warning lipgloss.Style
	success lipgloss.Style
	label   lipgloss.Style
}

// Console writes the completeness block, the per-crop summary and the final
// confirmation to w. It implements pipeline.Reporter.
type Console struct {
	w      io.Writer
	styles styles
}

// NewConsole creates a Console. Colors are enabled only when w is a terminal.
func NewConsole(w io.Writer) *Console {
	r := lipgloss.NewRenderer(w)
	return &Console{
		w: w,
		styles: styles{
			heading: r.NewStyle().Bold(true).Foreground(lipgloss.Color("86")),
			warning: r.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
			success: r.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
			label:   r.NewStyle().Faint(true),
		},
	}
}

// Completeness prints the fields that are blank or absent and the crops
// affected by each.
func (c *Console) Completeness(rep domain.CompletenessReport) {
	if rep.Complete() {
		c.printf("%s\n\n", c.styles.success.Render("✓ All fields complete"))
		return
	}
	c.printf("%s\n", c.styles.warning.Render(fmt.Sprintf("⚠ Incomplete data in %d field(s)", len(rep.Fields))))
	for _, field := range rep.Fields {
		c.printf("  - %s: %s\n", field, strings.Join(rep.Affected[field], ", "))
	}
	c.printf("\n")
}

// Summary prints one numbered entry per crop with its raw descriptors.
func (c *Console) Summary(records []domain.CropRecord) {
	c.printf("%s\n", c.styles.heading.Render(fmt.Sprintf("Crop summary (%d crops)", len(records))))
	for i, rec := range records {
		c.printf("%d. %s (%s)\n", i+1, rec.Label(), value(rec, domain.FieldScientificName))
		c.line("Temperature", fmt.Sprintf("%s-%s°C", value(rec, domain.FieldTempMin), value(rec, domain.FieldTempMax)))
		c.line("Humidity", value(rec, domain.FieldHumidity))
		c.line("Light", value(rec, domain.FieldLight))
		c.line("Kc", progression(rec, domain.FieldKcIni, domain.FieldKcMid, domain.FieldKcLate))
		c.line("Stages (days)", progression(rec,
			domain.FieldStageIniDays, domain.FieldStageDevDays, domain.FieldStageMidDays, domain.FieldStageLateDays))
	}
	c.printf("\n")
}

// Saved prints the final count and every destination written.
func (c *Console) Saved(count int, destinations []string) {
	c.printf("%s\n", c.styles.success.Render(fmt.Sprintf("✓ Processed %d crop profiles", count)))
	for _, d := range destinations {
		c.printf("  → %s\n", d)
	}
}

func (c *Console) line(label, v string) {
	c.printf("   %s %s\n", c.styles.label.Render(label+":"), v)
}

// Write errors are ignored; the report is best effort.
func (c *Console) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.w, format, args...)
}

func value(rec domain.CropRecord, field string) string {
	if v, _ := rec.Value(field); v != "" {
		return v
	}
	return missing
}

func progression(rec domain.CropRecord, fields ...string) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = value(rec, f)
	}
	return strings.Join(parts, " → ")
}
