package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Diagnosis is the persisted record of one completed analysis.
type Diagnosis struct {
	ID                int64
	Ref               uuid.UUID
	GrowerID          int64
	Disease           string
	Confidence        float64
	Severity          SeverityBand
	SeverityPercent   float64
	AnnotatedImageRef string
	LatencyMS         int64
	Interpretation    string
	CreatedAt         time.Time
}

// UsageRecord is one audit entry for a remote text-generation call.
type UsageRecord struct {
	ID               int64
	GrowerID         int64
	Kind             string
	PromptTokens     int
	CompletionTokens int
	Cost             decimal.Decimal
	CreatedAt        time.Time
}

const (
	UsageKindInterpret = "interpret"
	UsageKindChat      = "chat"
)
