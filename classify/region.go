package classify

import "github.com/bookforge/pagemark/model"

// regionRule is one row of the region decision table: a predicate over a
// block's vertical position and text length, and the region it yields.
type regionRule struct {
	Name   string
	Match  func(b *model.Block, yPct float64) bool
	Region model.Region
}

// regionRules is the ordered region decision table. Rules are evaluated top
// to bottom; the first match wins. Short text high on the page is a running
// header, while long text high on the page is ordinary first-paragraph body
// content, so text length gates the header tests.
var regionRules = []regionRule{
	{
		Name: "top-strip short text",
		Match: func(b *model.Block, yPct float64) bool {
			return yPct < 0.05 && b.CharCount < 150 && b.LineCount <= 3
		},
		Region: model.RegionHeader,
	},
	{
		Name: "upper-strip very short text",
		Match: func(b *model.Block, yPct float64) bool {
			return yPct < 0.08 && b.CharCount < 80 && b.LineCount <= 2
		},
		Region: model.RegionHeader,
	},
	{
		Name: "bottom strip",
		Match: func(b *model.Block, yPct float64) bool {
			return yPct > 0.92 || (yPct > 0.88 && b.CharCount < 50)
		},
		Region: model.RegionFooter,
	},
	{
		Name: "lower third",
		Match: func(b *model.Block, yPct float64) bool {
			return yPct > 0.70
		},
		Region: model.RegionLower,
	},
}

// RegionFor classifies a block's coarse page region from its vertical
// position and text length. It is a pure function of the block and the page
// height. Image blocks always map to the body region.
func RegionFor(b *model.Block, pageHeight float64) model.Region {
	if b.IsImage {
		return model.RegionBody
	}
	if pageHeight <= 0 {
		return model.RegionBody
	}

	yPct := b.Y / pageHeight
	for _, rule := range regionRules {
		if rule.Match(b, yPct) {
			return rule.Region
		}
	}
	return model.RegionBody
}
