package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/SD-18/TeaGuard/internal/catalog"
	"github.com/SD-18/TeaGuard/internal/diagnose"
	"github.com/SD-18/TeaGuard/internal/domain"
	"github.com/SD-18/TeaGuard/internal/i18n"
	"github.com/SD-18/TeaGuard/internal/interpret"
	"github.com/SD-18/TeaGuard/internal/repository"
	"github.com/google/uuid"
)

// Analyzer owns the per-chat diagnostic sessions and runs the composed
// predict-then-interpret task as a single operation with one outcome.
type Analyzer struct {
	mu       sync.Mutex
	sessions map[int64]*diagnose.Session

	classifier    diagnose.Classifier
	interpreter   *interpret.Client
	cat           *catalog.Catalog
	pol           diagnose.SeverityPolicy
	maxImageBytes int
	diagnoses     *repository.Diagnoses
}

func NewAnalyzer(classifier diagnose.Classifier, interpreter *interpret.Client, cat *catalog.Catalog, pol diagnose.SeverityPolicy, maxImageBytes int, diagnoses *repository.Diagnoses) *Analyzer {
	return &Analyzer{
		sessions:      make(map[int64]*diagnose.Session),
		classifier:    classifier,
		interpreter:   interpreter,
		cat:           cat,
		pol:           pol,
		maxImageBytes: maxImageBytes,
		diagnoses:     diagnoses,
	}
}

// Session returns the chat's diagnostic session, creating it on first use.
func (a *Analyzer) Session(chatID int64, lang string) *diagnose.Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	s, ok := a.sessions[chatID]
	if !ok {
		s = diagnose.NewSession(a.classifier, a.cat, a.pol, lang, a.maxImageBytes)
		a.sessions[chatID] = s
	} else {
		s.SetLanguage(lang)
	}
	return s
}

// SelectImage stores a new image on the chat's session.
func (a *Analyzer) SelectImage(chatID int64, lang string, asset domain.ImageAsset) error {
	return a.Session(chatID, lang).SelectImage(asset)
}

// Report is the outcome of one completed analysis. Interpretation always
// carries text: the remote explanation, or the localized fallback when the
// interpretation call failed (InterpretErr records the failure).
type Report struct {
	Derived        *diagnose.Derived
	Interpretation string
	InterpretErr   error
	Ref            uuid.UUID
}

// Analyze runs the chat's pipeline once: classify, derive, interpret,
// persist. The prediction failure (if any) is returned classified so the
// handler can pick the right user-facing message; interpretation failures
// degrade to fallback text instead of failing the whole task.
func (a *Analyzer) Analyze(ctx context.Context, grower *domain.Grower, chatID int64) (*Report, error) {
	session := a.Session(chatID, grower.Language)

	derived, err := session.RunAnalysis(ctx)
	if err != nil {
		return nil, err
	}

	report := &Report{Derived: derived}

	text, ierr := a.interpreter.Interpret(ctx, derived.Result, grower.Language)
	if ierr != nil {
		slog.Warn("interpretation failed, using fallback", "error", ierr, "chat_id", chatID)
		text = i18n.T(grower.Language).InterpretFallback
		report.InterpretErr = ierr
	}
	report.Interpretation = text

	ref, err := a.diagnoses.Insert(ctx, &domain.Diagnosis{
		GrowerID:          grower.ID,
		Disease:           derived.Result.DiseaseLabel,
		Confidence:        derived.Result.ConfidencePercent,
		Severity:          derived.Result.Severity,
		SeverityPercent:   derived.Result.SeverityPercent,
		AnnotatedImageRef: derived.Result.AnnotatedImageRef,
		LatencyMS:         derived.Result.LatencyMS,
		Interpretation:    text,
	})
	if err != nil {
		// The user already has a result; losing the audit row is not a
		// reason to fail the whole analysis.
		slog.Error("persist diagnosis", "error", err, "grower_id", grower.ID)
	} else {
		report.Ref = ref
	}

	return report, nil
}

// Reset discards the chat's session state.
func (a *Analyzer) Reset(chatID int64) {
	a.mu.Lock()
	s, ok := a.sessions[chatID]
	a.mu.Unlock()
	if ok {
		s.Reset()
	}
}
