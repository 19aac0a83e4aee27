package pagemark

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/bookforge/pagemark/model"
)

// Analysis is the result of one analysis pass over a document. It is a
// value: it holds no reference to the document it was computed from, and a
// new pass produces a wholly new Analysis. Category ids are stable across
// passes over the same unmodified document but must not be assumed to
// survive edits to the source.
type Analysis struct {
	// DocName is the base name of the analyzed file, when known.
	DocName string

	// PageCount is the number of pages analyzed (after any MaxPages cap).
	PageCount int

	// PageDimensions holds the rendered size of each analyzed page.
	PageDimensions []model.PageDimensions

	// Blocks are all extracted blocks in document storage order.
	Blocks []model.Block

	// Categories maps category id to the synthesized category.
	Categories map[string]model.Category
}

// ExportText concatenates the text of all blocks whose category is in the
// enabled set, in (page, y, x) order, inserting one blank line whenever the
// page changes relative to the previous emitted block. Returns the joined
// text and its character count. Exporting the same enabled set twice yields
// byte-identical output.
func (a *Analysis) ExportText(enabledCategoryIDs []string) (string, int) {
	enabled := make(map[string]bool, len(enabledCategoryIDs))
	for _, id := range enabledCategoryIDs {
		enabled[id] = true
	}

	ordered := make([]*model.Block, 0, len(a.Blocks))
	for i := range a.Blocks {
		ordered = append(ordered, &a.Blocks[i])
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Page != ordered[j].Page {
			return ordered[i].Page < ordered[j].Page
		}
		if ordered[i].Y != ordered[j].Y {
			return ordered[i].Y < ordered[j].Y
		}
		return ordered[i].X < ordered[j].X
	})

	var lines []string
	currentPage := -1
	for _, b := range ordered {
		if !enabled[b.CategoryID] {
			continue
		}
		if b.Page != currentPage {
			if currentPage >= 0 {
				lines = append(lines, "")
			}
			currentPage = b.Page
		}
		lines = append(lines, b.Text)
	}

	text := strings.Join(lines, "\n")
	return text, utf8.RuneCountInString(text)
}

// FindSimilar returns the ids of all blocks sharing the given block's
// category, in document storage order. An unknown block id yields an empty
// result, not an error.
func (a *Analysis) FindSimilar(blockID string) []string {
	var target *model.Block
	for i := range a.Blocks {
		if a.Blocks[i].ID == blockID {
			target = &a.Blocks[i]
			break
		}
	}
	if target == nil {
		return nil
	}

	var similar []string
	for i := range a.Blocks {
		if a.Blocks[i].CategoryID == target.CategoryID {
			similar = append(similar, a.Blocks[i].ID)
		}
	}
	return similar
}

// Category returns the category with the given id, if present.
func (a *Analysis) Category(id string) (model.Category, bool) {
	c, ok := a.Categories[id]
	return c, ok
}

// BlocksInCategory returns all blocks assigned to the given category, in
// document storage order.
func (a *Analysis) BlocksInCategory(id string) []model.Block {
	var result []model.Block
	for _, b := range a.Blocks {
		if b.CategoryID == id {
			result = append(result, b)
		}
	}
	return result
}
