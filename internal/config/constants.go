package config

import "time"

const (
	// Image intake
	MaxImageBytes = 10 << 20 // 10MB, the limit the product documents
	MaxImageMB    = 10

	// Request timeouts
	PredictTimeout   = 60 * time.Second
	InterpretTimeout = 90 * time.Second
	GuideTimeout     = 30 * time.Second

	// Severity banding when the service omits severity fields
	SeverityMildBelow  = 50.0
	SeveritySevereFrom = 80.0

	// Telegram limits
	MaxTelegramMessageLen = 4096

	// Rate limit (messages per minute per chat)
	RateLimitPerMinute = 10

	// Guide article cache
	GuideCacheDuration = 1 * time.Hour

	// History listing
	HistoryPageSize = 5
)
