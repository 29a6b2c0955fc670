// Package catalog holds the static treatment and severity reference data for
// the tea leaf conditions the classifier knows about. The catalog is built
// once at startup and never mutated, so it is safe to share across sessions
// without synchronization.
package catalog

import (
	"github.com/SD-18/TeaGuard/internal/domain"
	"github.com/SD-18/TeaGuard/internal/i18n"
)

// Entry describes one known condition: its typical severity band and the
// ordered treatment steps per language.
type Entry struct {
	Label string
	Band  domain.SeverityBand
	Steps map[string][]string
}

type Catalog struct {
	entries map[string]Entry
}

// Default returns the built-in catalog covering the classifier's label set.
func Default() *Catalog {
	c := &Catalog{entries: make(map[string]Entry, len(defaultEntries))}
	for _, e := range defaultEntries {
		c.entries[e.Label] = e
	}
	return c
}

// Lookup returns the treatment steps for a disease label in the given
// language. An unknown label or missing translation yields a single
// localized fallback step; the returned list is never empty.
func (c *Catalog) Lookup(label, lang string) []string {
	e, ok := c.entries[label]
	if !ok {
		return []string{i18n.T(lang).TreatmentFallbackStep}
	}
	steps, ok := e.Steps[lang]
	if !ok || len(steps) == 0 {
		steps, ok = e.Steps[i18n.English]
		if !ok || len(steps) == 0 {
			return []string{i18n.T(lang).TreatmentFallbackStep}
		}
	}
	out := make([]string, len(steps))
	copy(out, steps)
	return out
}

// Band returns the typical severity band recorded for a label. Unknown
// labels report Moderate, the middle of the scale.
func (c *Catalog) Band(label string) domain.SeverityBand {
	if e, ok := c.entries[label]; ok {
		return e.Band
	}
	return domain.SeverityModerate
}

// Labels returns every disease label the catalog knows, in no particular
// order.
func (c *Catalog) Labels() []string {
	labels := make([]string, 0, len(c.entries))
	for l := range c.entries {
		labels = append(labels, l)
	}
	return labels
}

var defaultEntries = []Entry{
	{
		Label: "Blister_Blight",
		Band:  domain.SeveritySevere,
		Steps: map[string][]string{
			i18n.English: {
				"Pluck and destroy infected shoots; do not leave them on the garden floor.",
				"Suspend plucking rounds in the affected section for 7–10 days to let blisters dry out.",
				"Apply a copper oxychloride spray (or approved systemic fungicide) at the recommended dose.",
				"Improve air circulation by thinning shade trees before the next monsoon flush.",
			},
			i18n.Assamese: {
				"সংক্ৰমিত কুঁহিপাত চিঙি ধ্বংস কৰক; বাগিচাত পেলাই নাৰাখিব।",
				"ফোঁহা শুকাবলৈ আক্ৰান্ত অংশত ৭–১০ দিনৰ বাবে পাত তোলা বন্ধ ৰাখক।",
				"নিৰ্ধাৰিত মাত্ৰাত কপাৰ অক্সিক্ল'ৰাইড স্প্ৰে প্ৰয়োগ কৰক।",
				"পৰৱৰ্তী বাৰিষাৰ আগতে ছাঁ গছ পাতল কৰি বায়ু চলাচল বঢ়াওক।",
			},
		},
	},
	{
		Label: "Healthy_leaves",
		Band:  domain.SeverityMild,
		Steps: map[string][]string{
			i18n.English: {
				"No disease detected. Continue the regular plucking and pruning schedule.",
				"Keep monitoring new flushes weekly, especially during humid spells.",
			},
			i18n.Assamese: {
				"কোনো ৰোগ ধৰা পৰা নাই। নিয়মীয়া পাত তোলা আৰু কটা-ছাঁটনি চলাই থাকক।",
				"বিশেষকৈ আৰ্দ্ৰ বতৰত প্ৰতি সপ্তাহত নতুন কুঁহিপাত পৰীক্ষা কৰি থাকক।",
			},
		},
	},
	{
		Label: "Tea_Mosquito_Bug",
		Band:  domain.SeverityModerate,
		Steps: map[string][]string{
			i18n.English: {
				"Remove and destroy attacked shoots showing feeding punctures.",
				"Spray neem-based insecticide in the early morning when nymphs are active.",
				"Clear alternate host weeds around the section to break the breeding cycle.",
			},
			i18n.Assamese: {
				"দংশনৰ চিন থকা আক্ৰান্ত কুঁহি আঁতৰাই ধ্বংস কৰক।",
				"নিম্ফ সক্ৰিয় থকা পুৱাৰ ভাগত নিম-ভিত্তিক কীটনাশক স্প্ৰে কৰক।",
				"বংশবৃদ্ধি চক্ৰ ভাঙিবলৈ চাৰিওফালৰ বিকল্প আশ্ৰয় বন-বাত চাফা কৰক।",
			},
		},
	},
	{
		Label: "Red_Spider_Mite",
		Band:  domain.SeverityModerate,
		Steps: map[string][]string{
			i18n.English: {
				"Check the underside of leaves for reddish specks and faint webbing.",
				"Spray approved acaricide, covering the lower leaf surface thoroughly.",
				"Avoid dusty conditions along roadside rows; mites thrive on dust-coated leaves.",
			},
			i18n.Assamese: {
				"পাতৰ তলৰ পিঠিত ৰঙা দাগ আৰু পাতল জাল আছে নেকি পৰীক্ষা কৰক।",
				"অনুমোদিত এক্যাৰিচাইড স্প্ৰে কৰক, পাতৰ তলৰ পিঠি ভালদৰে ঢাকি।",
				"ৰাস্তাৰ কাষৰ শাৰীত ধূলি জমা হ'ব নিদিব; ধূলিময় পাতত মাইট বাঢ়ে।",
			},
		},
	},
	{
		Label: "Grey_Blight",
		Band:  domain.SeverityModerate,
		Steps: map[string][]string{
			i18n.English: {
				"Prune out twigs bearing grey concentric leaf spots and burn them.",
				"Avoid mechanical injury during plucking; wounds are the main entry point.",
				"Apply a protective copper fungicide after heavy pruning.",
			},
			i18n.Assamese: {
				"ধূসৰ দাগ থকা ঠাল-পাত কাটি জ্বলাই দিয়ক।",
				"পাত তোলাৰ সময়ত আঘাত নালাগিবলৈ সাৱধান হওক; ঘাঁয়েৰেই ৰোগ সোমায়।",
				"ডাঙৰ কটা-ছাঁটনিৰ পিছত সুৰক্ষামূলক কপাৰ ছত্ৰাকনাশক প্ৰয়োগ কৰক।",
			},
		},
	},
	{
		Label: "Brown_Blight",
		Band:  domain.SeverityModerate,
		Steps: map[string][]string{
			i18n.English: {
				"Collect fallen infected leaves and remove them from the section.",
				"Reduce overhead irrigation; prolonged leaf wetness spreads the fungus.",
				"Spray carbendazim or an approved alternative at first symptoms.",
			},
			i18n.Assamese: {
				"সৰি পৰা সংক্ৰমিত পাত গোটাই অংশটোৰ পৰা আঁতৰাওক।",
				"ওপৰৰ পৰা পানী দিয়া কমাওক; পাত ভিজি থাকিলে ছত্ৰাক বিয়পে।",
				"প্ৰথম লক্ষণতে কাৰ্বেণ্ডাজিম বা অনুমোদিত বিকল্প স্প্ৰে কৰক।",
			},
		},
	},
	{
		Label: "Algal_Leaf_Spot",
		Band:  domain.SeverityMild,
		Steps: map[string][]string{
			i18n.English: {
				"Thin dense canopies to lower humidity inside the bush frame.",
				"Correct drainage in waterlogged patches where the alga persists.",
				"Apply copper-based spray only if spotting covers more than a third of the canopy.",
			},
			i18n.Assamese: {
				"জোপোহাৰ ভিতৰৰ আৰ্দ্ৰতা কমাবলৈ ঘন ডাল-পাত পাতল কৰক।",
				"পানী জমা হোৱা ঠাইৰ নলা-নিৰ্গমন শুধৰাওক।",
				"দাগে এক-তৃতীয়াংশতকৈ বেছি ঢাকিলেহে কপাৰ-ভিত্তিক স্প্ৰে কৰক।",
			},
		},
	},
}
