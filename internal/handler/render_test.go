package handler

import (
	"strings"
	"testing"

	"github.com/SD-18/TeaGuard/internal/diagnose"
	"github.com/SD-18/TeaGuard/internal/domain"
	"github.com/SD-18/TeaGuard/internal/i18n"
	"github.com/SD-18/TeaGuard/internal/service"
)

func TestBar(t *testing.T) {
	tests := []struct {
		percent float64
		want    string
	}{
		{0, "▱▱▱▱▱▱▱▱▱▱"},
		{100, "▰▰▰▰▰▰▰▰▰▰"},
		{50, "▰▰▰▰▰▱▱▱▱▱"},
		{87.3, "▰▰▰▰▰▰▰▰▰▱"},
		{120, "▰▰▰▰▰▰▰▰▰▰"},
	}
	for _, tt := range tests {
		if got := bar(tt.percent); got != tt.want {
			t.Errorf("bar(%v) = %q, want %q", tt.percent, got, tt.want)
		}
	}
}

func TestPrettyLabel(t *testing.T) {
	if got := prettyLabel("Blister_Blight"); got != "Blister Blight" {
		t.Fatalf("got %q", got)
	}
}

func TestFormatReport(t *testing.T) {
	rep := &service.Report{
		Derived: &diagnose.Derived{
			Result: domain.PredictionResult{
				DiseaseLabel:      "Blister_Blight",
				ConfidencePercent: 87.3,
				Severity:          domain.SeveritySevere,
				SeverityPercent:   87.3,
				LatencyMS:         1240,
			},
			Chart: []domain.ChartEntry{
				{Label: "Blister_Blight", Value: 87.3},
				{Label: "Grey_Blight", Value: 4.9},
			},
			Treatment: []string{"Pluck and destroy infected shoots.", "Apply copper oxychloride spray."},
		},
		Interpretation: "The lesions are typical of blister blight.",
	}

	got := formatReport(i18n.T(i18n.English), rep)

	for _, want := range []string{
		"Blister Blight",
		"87.3%",
		"Severe",
		"1. Pluck and destroy infected shoots.",
		"2. Apply copper oxychloride spray.",
		"The lesions are typical of blister blight.",
		"1240",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("report missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Blister_Blight") {
		t.Error("raw label leaked into the report")
	}
}
