package handler

import (
	"fmt"
	"strings"

	"github.com/SD-18/TeaGuard/internal/i18n"
	"github.com/SD-18/TeaGuard/internal/service"
)

const barSegments = 10

// formatReport renders a completed analysis as a single Markdown message:
// headline, ranked probability chart, treatment steps, AI interpretation
// and the processing latency.
func formatReport(t *i18n.Set, rep *service.Report) string {
	res := rep.Derived.Result

	var sb strings.Builder
	sb.WriteString(t.ResultTitle)
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("*%s*\n", prettyLabel(res.DiseaseLabel)))
	sb.WriteString(fmt.Sprintf("%s: %.1f%%\n", t.ConfidenceLabel, res.ConfidencePercent))
	sb.WriteString(fmt.Sprintf("%s: %s (%.0f%%)\n", t.SeverityLabel, t.Severity(res.Severity), res.SeverityPercent))

	if len(rep.Derived.Chart) > 0 {
		sb.WriteString("\n")
		for _, entry := range rep.Derived.Chart {
			sb.WriteString(fmt.Sprintf("`%s` %s %.1f%%\n", bar(entry.Value), prettyLabel(entry.Label), entry.Value))
		}
	}

	if len(rep.Derived.Treatment) > 0 {
		sb.WriteString("\n")
		sb.WriteString(t.TreatmentTitle)
		sb.WriteString("\n")
		for i, step := range rep.Derived.Treatment {
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, step))
		}
	}

	if rep.Interpretation != "" {
		sb.WriteString("\n")
		sb.WriteString(rep.Interpretation)
		sb.WriteString("\n")
	}

	sb.WriteString("\n_")
	sb.WriteString(fmt.Sprintf(t.ProcessedIn, res.LatencyMS))
	sb.WriteString("_")

	return sb.String()
}

// bar renders a value in [0,100] as a fixed-width block chart.
func bar(percent float64) string {
	filled := int(percent/100*barSegments + 0.5)
	if filled > barSegments {
		filled = barSegments
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("▰", filled) + strings.Repeat("▱", barSegments-filled)
}

// prettyLabel turns a classifier label like "Blister_Blight" into
// human-readable text.
func prettyLabel(label string) string {
	return strings.ReplaceAll(label, "_", " ")
}
