package classify

import "github.com/bookforge/pagemark/model"

// DefaultBaseline is the body font size assumed when a document has no
// non-bold body-region text to measure.
const DefaultBaseline = 10.0

// BaselineFontSize computes the document's body font size: the font size
// with the highest total character count among non-bold text blocks in the
// body region. Ties break to the first-encountered size. Returns
// DefaultBaseline when no qualifying blocks exist.
func BaselineFontSize(blocks []model.Block) float64 {
	counts := make(map[float64]int)
	var order []float64

	for _, b := range blocks {
		if b.IsImage || b.Region != model.RegionBody || b.IsBold || b.CharCount == 0 {
			continue
		}
		if _, ok := counts[b.FontSize]; !ok {
			order = append(order, b.FontSize)
		}
		counts[b.FontSize] += b.CharCount
	}

	if len(order) == 0 {
		return DefaultBaseline
	}

	best := order[0]
	for _, size := range order[1:] {
		if counts[size] > counts[best] {
			best = size
		}
	}
	return best
}

// categoryRule is one row of the category decision table.
type categoryRule struct {
	Name    string
	Match   func(b *model.Block, baseline float64) bool
	Outcome model.CategoryType
}

// categoryRules is the ordered category decision table. Rules are evaluated
// top to bottom; the first match wins, which makes the priority between
// overlapping signals (superscript beats bold, region beats font ratio)
// auditable rule by rule.
var categoryRules = []categoryRule{
	{
		Name:    "image block",
		Match:   func(b *model.Block, _ float64) bool { return b.IsImage },
		Outcome: model.CategoryImage,
	},
	{
		Name:    "superscript",
		Match:   func(b *model.Block, _ float64) bool { return b.IsSuperscript },
		Outcome: model.CategoryFootnoteRef,
	},
	{
		// Catches tiny reference marks whose superscript flag the engine
		// did not set. Known to misfire on stray short body fragments;
		// see the classifier tests for the documented false-positive class.
		Name: "tiny short text",
		Match: func(b *model.Block, baseline float64) bool {
			return b.FontSize < baseline*0.7 && b.CharCount < 5
		},
		Outcome: model.CategoryFootnoteRef,
	},
	{
		Name:    "header region",
		Match:   func(b *model.Block, _ float64) bool { return b.Region == model.RegionHeader },
		Outcome: model.CategoryHeader,
	},
	{
		Name:    "footer region",
		Match:   func(b *model.Block, _ float64) bool { return b.Region == model.RegionFooter },
		Outcome: model.CategoryFooter,
	},
	{
		Name: "small text low on page",
		Match: func(b *model.Block, baseline float64) bool {
			return b.Region == model.RegionLower && b.FontSize < baseline*0.95
		},
		Outcome: model.CategoryFootnote,
	},
	{
		Name: "small text elsewhere",
		Match: func(b *model.Block, baseline float64) bool {
			return b.FontSize < baseline*0.85 && b.Region != model.RegionLower
		},
		Outcome: model.CategoryCaption,
	},
	{
		Name: "large text",
		Match: func(b *model.Block, baseline float64) bool {
			return b.FontSize > baseline*1.4
		},
		Outcome: model.CategoryTitle,
	},
	{
		Name: "bold above body size",
		Match: func(b *model.Block, baseline float64) bool {
			return b.IsBold && b.FontSize > baseline*1.1
		},
		Outcome: model.CategoryHeading,
	},
	{
		Name: "bold short block",
		Match: func(b *model.Block, _ float64) bool {
			return b.IsBold && b.LineCount <= 2 && b.CharCount < 200
		},
		Outcome: model.CategorySubheading,
	},
	{
		Name: "italic multi-line",
		Match: func(b *model.Block, _ float64) bool {
			return b.IsItalic && b.LineCount > 2
		},
		Outcome: model.CategoryQuote,
	},
}

// ClassifyBlock assigns a semantic category type to a block. baseline is the
// document's body font size (see BaselineFontSize); zero or negative values
// fall back to DefaultBaseline. The function is total: every block maps to
// exactly one type, defaulting to body text.
func ClassifyBlock(b *model.Block, baseline float64) model.CategoryType {
	if baseline <= 0 {
		baseline = DefaultBaseline
	}

	for _, rule := range categoryRules {
		if rule.Match(b, baseline) {
			return rule.Outcome
		}
	}
	return model.CategoryBody
}
