package diagnose

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/SD-18/TeaGuard/internal/catalog"
	"github.com/SD-18/TeaGuard/internal/domain"
)

// State of a diagnostic session.
type State int

const (
	StateIdle State = iota
	StateImageSelected
	StateAnalyzing
	StateResult
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateImageSelected:
		return "image_selected"
	case StateAnalyzing:
		return "analyzing"
	case StateResult:
		return "result"
	case StateError:
		return "error"
	}
	return "unknown"
}

// Classifier is the remote prediction pipeline the session drives. It issues
// exactly one request per call and never retries.
type Classifier interface {
	Classify(ctx context.Context, asset domain.ImageAsset) (domain.RawPrediction, error)
}

var imageMediaTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// Session is the diagnostic state machine for one chat. It owns the selected
// image and the derived result exclusively; nothing is shared across sessions
// except the read-only catalog. At most one analysis is in flight at a time:
// the Analyzing state rejects further RunAnalysis calls, never queues them.
type Session struct {
	mu sync.Mutex

	state   State
	asset   *domain.ImageAsset
	derived *Derived
	lastErr error

	// gen counts image selections and resets. An analysis completion whose
	// generation no longer matches is discarded so a stale response can
	// never overwrite a newer session state.
	gen uint64

	classifier    Classifier
	cat           *catalog.Catalog
	pol           SeverityPolicy
	lang          string
	maxImageBytes int
}

func NewSession(classifier Classifier, cat *catalog.Catalog, pol SeverityPolicy, lang string, maxImageBytes int) *Session {
	return &Session{
		state:         StateIdle,
		classifier:    classifier,
		cat:           cat,
		pol:           pol,
		lang:          lang,
		maxImageBytes: maxImageBytes,
	}
}

// SelectImage validates and stores a new image, discarding any prior
// result or error. Valid in every state. Invalid input leaves the session
// untouched and reports domain.ErrValidation.
func (s *Session) SelectImage(asset domain.ImageAsset) error {
	mediaType := strings.ToLower(asset.MediaType)
	if !imageMediaTypes[mediaType] {
		return fmt.Errorf("%w: unsupported media type %q", domain.ErrValidation, asset.MediaType)
	}
	if asset.Size() == 0 {
		return fmt.Errorf("%w: empty image payload", domain.ErrValidation)
	}
	if asset.Size() > s.maxImageBytes {
		return fmt.Errorf("%w: image is %d bytes, ceiling is %d", domain.ErrValidation, asset.Size(), s.maxImageBytes)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.asset = &asset
	s.derived = nil
	s.lastErr = nil
	s.gen++
	s.state = StateImageSelected
	return nil
}

// RunAnalysis drives one pass of the prediction pipeline. It is valid from
// ImageSelected, or from Error while an image is still held (an explicit
// user-triggered retry). From Idle or Result it is a no-op reporting
// domain.ErrNoImage; while Analyzing it is a no-op reporting domain.ErrBusy.
// Exactly one outbound request is issued per successful call.
func (s *Session) RunAnalysis(ctx context.Context) (*Derived, error) {
	s.mu.Lock()
	switch s.state {
	case StateAnalyzing:
		s.mu.Unlock()
		return nil, domain.ErrBusy
	case StateImageSelected:
	case StateError:
		if s.asset == nil {
			s.mu.Unlock()
			return nil, domain.ErrNoImage
		}
	default:
		s.mu.Unlock()
		return nil, domain.ErrNoImage
	}

	asset := *s.asset
	gen := s.gen
	lang := s.lang
	s.state = StateAnalyzing
	s.mu.Unlock()

	raw, err := s.classifier.Classify(ctx, asset)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gen != gen {
		// Session was reset or got a new image while the request was in
		// flight; the response belongs to a previous generation.
		return nil, domain.ErrStale
	}

	if err != nil {
		s.lastErr = err
		s.derived = nil
		s.state = StateError
		return nil, err
	}

	derived := Derive(raw, s.cat, lang, s.pol)
	s.derived = &derived
	s.lastErr = nil
	s.state = StateResult
	return &derived, nil
}

// Reset returns the session to Idle, discarding image, result and error.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.asset = nil
	s.derived = nil
	s.lastErr = nil
	s.gen++
	s.state = StateIdle
}

// SetLanguage changes the language used for subsequent derivations.
func (s *Session) SetLanguage(lang string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lang = lang
}

// State reports the current machine state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Result returns the derived result when the session is in Result state.
func (s *Session) Result() (*Derived, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateResult || s.derived == nil {
		return nil, false
	}
	return s.derived, true
}

// Err returns the classified failure when the session is in Error state.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateError {
		return nil
	}
	return s.lastErr
}

// HasImage reports whether an image is currently held.
func (s *Session) HasImage() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.asset != nil
}
