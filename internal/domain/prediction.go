package domain

// ImageAsset is the raw photo held by a diagnostic session. Selecting a new
// image replaces the previous asset entirely.
type ImageAsset struct {
	Data      []byte
	MediaType string
	FileName  string
}

func (a ImageAsset) Size() int {
	return len(a.Data)
}

// Probability is one entry of the classifier's probability distribution.
// Entries are kept as an ordered slice so the response order survives into
// tie-breaking during chart derivation.
type Probability struct {
	Label string
	Value float64
}

// RawPrediction is the classification service's payload before derivation.
// Severity fields are optional on the wire; HasSeverity records whether the
// service supplied them.
type RawPrediction struct {
	Disease           string
	Confidence        float64
	Probabilities     []Probability
	Severity          string
	SeverityPercent   float64
	HasSeverity       bool
	AnnotatedImageRef string
	LatencyMS         int64
}

type SeverityBand string

const (
	SeverityMild     SeverityBand = "Mild"
	SeverityModerate SeverityBand = "Moderate"
	SeveritySevere   SeverityBand = "Severe"
)

// PredictionResult is the immutable, display-ready result owned by the
// session that produced it.
type PredictionResult struct {
	DiseaseLabel      string
	ConfidencePercent float64
	Probabilities     []Probability
	Severity          SeverityBand
	SeverityPercent   float64
	AnnotatedImageRef string
	LatencyMS         int64
}

// ChartEntry is one bar of the ranked probability chart.
type ChartEntry struct {
	Label string
	Value float64
}
