// Package diagnose implements the diagnostic core: the pure derivation from a
// raw classifier payload to display-ready structures, and the session state
// machine that owns image intake and the single-flight analysis pipeline.
package diagnose

import (
	"sort"

	"github.com/SD-18/TeaGuard/internal/catalog"
	"github.com/SD-18/TeaGuard/internal/domain"
)

// chartMaxEntries caps the ranked probability chart.
const chartMaxEntries = 5

// SeverityPolicy derives a severity band from the prediction confidence when
// the classification service omits its own severity fields. Confidence below
// MildBelow is Mild, below SevereFrom is Moderate, the rest Severe.
type SeverityPolicy struct {
	MildBelow  float64
	SevereFrom float64
}

// DefaultSeverityPolicy matches the banding the product documents to users.
func DefaultSeverityPolicy() SeverityPolicy {
	return SeverityPolicy{MildBelow: 50, SevereFrom: 80}
}

// Band buckets a confidence percentage.
func (p SeverityPolicy) Band(confidence float64) domain.SeverityBand {
	switch {
	case confidence < p.MildBelow:
		return domain.SeverityMild
	case confidence < p.SevereFrom:
		return domain.SeverityModerate
	default:
		return domain.SeveritySevere
	}
}

// Derived bundles everything a renderer needs for one completed analysis.
type Derived struct {
	Result    domain.PredictionResult
	Chart     []domain.ChartEntry
	Treatment []string
}

// Derive turns a raw classifier payload into a ranked chart, a severity
// classification and treatment steps. It is deterministic and side-effect
// free: identical inputs always produce identical outputs.
func Derive(raw domain.RawPrediction, cat *catalog.Catalog, lang string, pol SeverityPolicy) Derived {
	chart := make([]domain.ChartEntry, 0, len(raw.Probabilities))
	for _, p := range raw.Probabilities {
		chart = append(chart, domain.ChartEntry{Label: p.Label, Value: p.Value})
	}
	// Stable sort keeps the original response order for equal values.
	sort.SliceStable(chart, func(i, j int) bool {
		return chart[i].Value > chart[j].Value
	})
	if len(chart) > chartMaxEntries {
		chart = chart[:chartMaxEntries]
	}

	severity := pol.Band(raw.Confidence)
	severityPercent := raw.Confidence
	if raw.HasSeverity {
		severity = normalizeBand(raw.Severity)
		severityPercent = raw.SeverityPercent
	}

	probs := make([]domain.Probability, len(raw.Probabilities))
	copy(probs, raw.Probabilities)

	return Derived{
		Result: domain.PredictionResult{
			DiseaseLabel:      raw.Disease,
			ConfidencePercent: raw.Confidence,
			Probabilities:     probs,
			Severity:          severity,
			SeverityPercent:   severityPercent,
			AnnotatedImageRef: raw.AnnotatedImageRef,
			LatencyMS:         raw.LatencyMS,
		},
		Chart:     chart,
		Treatment: cat.Lookup(raw.Disease, lang),
	}
}

func normalizeBand(s string) domain.SeverityBand {
	switch s {
	case string(domain.SeverityMild):
		return domain.SeverityMild
	case string(domain.SeveritySevere):
		return domain.SeveritySevere
	default:
		return domain.SeverityModerate
	}
}
