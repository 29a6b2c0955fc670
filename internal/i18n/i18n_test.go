package i18n

import (
	"testing"

	"github.com/SD-18/TeaGuard/internal/domain"
)

func TestTFallsBackToEnglish(t *testing.T) {
	if T("fr") != T(English) {
		t.Fatal("unknown language did not fall back to English")
	}
	if T(Assamese) == T(English) {
		t.Fatal("Assamese table missing")
	}
}

func TestValid(t *testing.T) {
	for _, lang := range []string{English, Assamese} {
		if !Valid(lang) {
			t.Errorf("Valid(%q) = false", lang)
		}
	}
	if Valid("fr") {
		t.Error("Valid accepted an unsupported tag")
	}
}

func TestSeverityLocalization(t *testing.T) {
	s := T(English)
	if got := s.Severity(domain.SeveritySevere); got != s.SeveritySevere {
		t.Errorf("got %q", got)
	}
	// Unknown bands land on the mildest wording rather than leaking a key.
	if got := s.Severity(domain.SeverityBand("???")); got != s.SeverityMild {
		t.Errorf("got %q", got)
	}
}

func TestNoEmptyStrings(t *testing.T) {
	for lang, set := range tables {
		if set.Welcome == "" || set.AnalysisFailed == "" || set.ChatFallback == "" || set.TreatmentFallbackStep == "" {
			t.Errorf("language %q has empty required strings", lang)
		}
	}
}
