// Package i18n holds the localized string tables. Tables are process-wide
// immutable data loaded at init, mirroring the two languages the product
// ships: English and Assamese.
package i18n

import "github.com/SD-18/TeaGuard/internal/domain"

// Language tags accepted on the wire and stored per grower.
const (
	English  = "en"
	Assamese = "as"
)

// Set is the full table of user-visible strings for one language.
type Set struct {
	Welcome       string
	Greeting      string
	SendLeafPhoto string
	Analyzing     string

	ResultTitle     string
	ConfidenceLabel string
	SeverityLabel   string
	TreatmentTitle  string
	ProcessedIn     string

	AnalysisFailed   string
	NetworkFailed    string
	WaitPrevious     string
	InvalidImageType string
	ImageTooLarge    string
	NoImage          string

	InterpretFallback string
	ChatFallback      string

	ResetDone      string
	LanguagePrompt string
	LanguageSet    string

	GuideTitle   string
	GuideFailed  string
	HistoryTitle string
	HistoryEmpty string

	TreatmentFallbackStep string
	SeverityMild          string
	SeverityModerate      string
	SeveritySevere        string

	RateLimited string
}

var tables = map[string]*Set{
	English: {
		Welcome:       "👋 Hello, %s!\n\nI am TeaGuard — your tea leaf disease assistant.\n\n📋 *Commands:*\n/guide — Field guides\n/history — Recent diagnoses\n/language — Switch language\n/reset — Start over\n\nSend a clear photo of a single tea leaf to get an instant diagnosis, or just ask me a question!",
		Greeting:      "Hello! I am your AI tea plantation expert. How can I help you today?",
		SendLeafPhoto: "📷 Send a clear photo of a single tea leaf to run diagnostics.",
		Analyzing:     "🔬 Analyzing sample...",

		ResultTitle:     "🍃 *Prediction Result*",
		ConfidenceLabel: "Confidence",
		SeverityLabel:   "Severity",
		TreatmentTitle:  "🌱 *Recommended actions:*",
		ProcessedIn:     "Processed in %dms",

		AnalysisFailed:   "❌ The diagnostic service could not process this sample. Please try again.",
		NetworkFailed:    "⏳ Could not reach the diagnostic service. Check your connection and try again.",
		WaitPrevious:     "⏳ Please wait for the previous answer.",
		InvalidImageType: "❌ That file is not a supported image. Send a JPEG or PNG photo.",
		ImageTooLarge:    "❌ The photo is too large. The limit is %dMB.",
		NoImage:          "📷 Select a leaf photo first, then run the analysis.",

		InterpretFallback: "Sorry, I couldn't generate an interpretation at this time. Follow the recommended actions above and consult a local specialist if symptoms spread.",
		ChatFallback:      "Sorry, I am having trouble connecting. Please try again later.",

		ResetDone:      "🔄 Session reset. Send a new leaf photo or ask a question.",
		LanguagePrompt: "🌐 Choose your language:",
		LanguageSet:    "✅ Language set to English.",

		GuideTitle:   "📖 *Field Guides*",
		GuideFailed:  "❌ Could not load the guide right now.",
		HistoryTitle: "📂 *Recent diagnoses*",
		HistoryEmpty: "No diagnoses yet. Send a leaf photo to get started!",

		TreatmentFallbackStep: "Consult a certified tea cultivation specialist for this condition.",
		SeverityMild:          "Mild",
		SeverityModerate:      "Moderate",
		SeveritySevere:        "Severe",

		RateLimited: "⏳ Too many requests. Please slow down.",
	},
	Assamese: {
		Welcome:       "👋 নমস্কাৰ, %s!\n\nমই TeaGuard — আপোনাৰ চাহ পাতৰ ৰোগ সহায়ক।\n\n📋 *নিৰ্দেশ:*\n/guide — নিৰ্দেশিকা\n/history — শেহতীয়া নিদান\n/language — ভাষা সলনি কৰক\n/reset — পুনৰ আৰম্ভ কৰক\n\nতৎক্ষণাত নিদানৰ বাবে এখিলা চাহ পাতৰ স্পষ্ট ফটো পঠিয়াওক!",
		Greeting:      "নমস্কাৰ! মই আপোনাক কেনেকৈ সহায় কৰিব পাৰোঁ?",
		SendLeafPhoto: "📷 নিদানৰ বাবে এখিলা চাহ পাতৰ স্পষ্ট ফটো পঠিয়াওক।",
		Analyzing:     "🔬 নমুনা বিশ্লেষণ কৰি আছোঁ...",

		ResultTitle:     "🍃 *নিদানৰ ফলাফল*",
		ConfidenceLabel: "বিশ্বাসযোগ্যতা",
		SeverityLabel:   "তীব্ৰতা",
		TreatmentTitle:  "🌱 *পৰামৰ্শিত ব্যৱস্থা:*",
		ProcessedIn:     "%d মিলিছেকেণ্ডত সম্পন্ন",

		AnalysisFailed:   "❌ নিদান সেৱাই এই নমুনা প্ৰক্ৰিয়া কৰিব নোৱাৰিলে। অনুগ্ৰহ কৰি পুনৰ চেষ্টা কৰক।",
		NetworkFailed:    "⏳ নিদান সেৱাৰ সৈতে সংযোগ স্থাপন কৰিব পৰা নগ'ল। পুনৰ চেষ্টা কৰক।",
		WaitPrevious:     "⏳ অনুগ্ৰহ কৰি আগৰ উত্তৰলৈ অপেক্ষা কৰক।",
		InvalidImageType: "❌ এই ফাইলটো সমৰ্থিত ছবি নহয়। JPEG বা PNG ফটো পঠিয়াওক।",
		ImageTooLarge:    "❌ ফটোখন বৰ ডাঙৰ। সীমা %dMB।",
		NoImage:          "📷 প্ৰথমে পাতৰ ফটো নিৰ্বাচন কৰক, তাৰ পিছত বিশ্লেষণ চলাওক।",

		InterpretFallback: "ক্ষমা কৰিব, এই মুহূৰ্তত ব্যাখ্যা দিব পৰা নগ'ল। ওপৰৰ পৰামৰ্শ অনুসৰণ কৰক আৰু লক্ষণ বিয়পিলে স্থানীয় বিশেষজ্ঞৰ পৰামৰ্শ লওক।",
		ChatFallback:      "ক্ষমা কৰিব, সংযোগত অসুবিধা হৈছে। অনুগ্ৰহ কৰি পিছত পুনৰ চেষ্টা কৰক।",

		ResetDone:      "🔄 ছেশ্যন ৰিছেট কৰা হ'ল। নতুন পাতৰ ফটো পঠিয়াওক বা প্ৰশ্ন সোধক।",
		LanguagePrompt: "🌐 আপোনাৰ ভাষা বাছনি কৰক:",
		LanguageSet:    "✅ ভাষা অসমীয়ালৈ সলনি কৰা হ'ল।",

		GuideTitle:   "📖 *নিৰ্দেশিকা*",
		GuideFailed:  "❌ এই মুহূৰ্তত নিৰ্দেশিকা ল'ড কৰিব পৰা নগ'ল।",
		HistoryTitle: "📂 *শেহতীয়া নিদান*",
		HistoryEmpty: "এতিয়ালৈকে কোনো নিদান নাই। আৰম্ভ কৰিবলৈ পাতৰ ফটো পঠিয়াওক!",

		TreatmentFallbackStep: "এই অৱস্থাৰ বাবে প্ৰমাণিত চাহ খেতি বিশেষজ্ঞৰ পৰামৰ্শ লওক।",
		SeverityMild:          "লঘু",
		SeverityModerate:      "মধ্যমীয়া",
		SeveritySevere:        "গুৰুতৰ",

		RateLimited: "⏳ বহুত বেছি অনুৰোধ। অলপ লাহে লাহে।",
	},
}

// Severity localizes a severity band name.
func (s *Set) Severity(band domain.SeverityBand) string {
	switch band {
	case domain.SeverityModerate:
		return s.SeverityModerate
	case domain.SeveritySevere:
		return s.SeveritySevere
	default:
		return s.SeverityMild
	}
}

// T returns the string table for the given language tag, falling back to
// English for unknown tags.
func T(lang string) *Set {
	if s, ok := tables[lang]; ok {
		return s
	}
	return tables[English]
}

// Valid reports whether lang is a supported language tag.
func Valid(lang string) bool {
	_, ok := tables[lang]
	return ok
}
