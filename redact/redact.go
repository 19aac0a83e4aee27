// Package redact permanently removes selected regions and pages from a
// document and rewrites its bookmarks.
//
// A [Plan] describes everything to remove: rectangular regions (optionally
// tagged with the literal text they covered at analysis time), whole pages,
// and a replacement outline. [Plan.Apply] executes the plan against an open
// document; [Redact] is the full open-apply-save pipeline.
//
// Removal is real redaction, not masking: text, vector graphics, and raster
// images intersecting a redacted box are removed, and saving compacts the
// document so the content is physically gone.
package redact

import (
	"fmt"
	"sort"

	"github.com/bookforge/pagemark/engine"
	"github.com/bookforge/pagemark/model"
)

// Region is one rectangular area to redact, tagged with its 0-indexed page.
// Text, when present on a non-image region, enables search-based matching:
// the exact box of the matching text occurrence is redacted instead of the
// requested rectangle, which survives small extraction drift between
// analysis time and redaction time.
type Region struct {
	Page    int     `json:"page"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Text    string  `json:"text,omitempty"`
	IsImage bool    `json:"isImage,omitempty"`
}

// BBox returns the region's bounding box.
func (r Region) BBox() model.BBox {
	return model.BBox{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

// Plan describes one redaction/restructure operation.
type Plan struct {
	// Regions are the areas to redact, any pages, any order.
	Regions []Region `json:"regions"`

	// DeletedPages are 0-indexed pages to remove entirely. Regions on a
	// deleted page are ignored; deleting the page makes redacting it moot.
	DeletedPages []int `json:"deletedPages,omitempty"`

	// Bookmarks, when non-empty, replaces the document's entire outline.
	// Pages are 0-indexed and should already account for deleted pages.
	Bookmarks []model.TOCEntry `json:"bookmarks,omitempty"`
}

// Apply executes the plan against an open document: redacts regions page by
// page, deletes pages, and rewrites the outline. It does not save; use
// [Redact] for the full pipeline, or save through the engine afterwards.
//
// Page indices beyond the document's current page count are silently
// skipped at every step. Callers may hold indices that no longer exist
// after concurrent edits; that is not an error here.
func (p *Plan) Apply(doc engine.Document) error {
	deleted := make(map[int]bool, len(p.DeletedPages))
	for _, page := range p.DeletedPages {
		deleted[page] = true
	}

	byPage := make(map[int][]Region)
	for _, region := range p.Regions {
		byPage[region.Page] = append(byPage[region.Page], region)
	}
	pages := make([]int, 0, len(byPage))
	for page := range byPage {
		pages = append(pages, page)
	}
	sort.Ints(pages)

	total := doc.PageCount()
	for _, page := range pages {
		if page >= total || deleted[page] {
			continue
		}

		for _, region := range byPage[page] {
			if err := markRegion(doc, page, region); err != nil {
				return fmt.Errorf("page %d: mark redaction: %w", page, err)
			}
		}

		if err := doc.ApplyRedactions(page); err != nil {
			return fmt.Errorf("page %d: apply redactions: %w", page, err)
		}
	}

	// Delete in descending order: ascending deletion would shift the
	// remaining higher indices under us.
	toDelete := make([]int, 0, len(deleted))
	for page := range deleted {
		toDelete = append(toDelete, page)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(toDelete)))
	for _, page := range toDelete {
		if page >= doc.PageCount() {
			continue
		}
		if err := doc.DeletePage(page); err != nil {
			return fmt.Errorf("delete page %d: %w", page, err)
		}
	}

	if len(p.Bookmarks) > 0 {
		if err := doc.SetTOC(p.Bookmarks); err != nil {
			return fmt.Errorf("set bookmarks: %w", err)
		}
	}

	return nil
}

// markRegion marks one region for redaction, preferring the exact box of a
// text-search match overlapping the requested rectangle and falling back to
// the rectangle itself when no match overlaps.
func markRegion(doc engine.Document, page int, region Region) error {
	box := region.BBox()

	if region.Text != "" && !region.IsImage {
		matches, err := doc.SearchText(page, region.Text)
		if err == nil {
			for _, match := range matches {
				if match.Intersects(box) {
					return doc.MarkRedaction(page, match)
				}
			}
		}
		// No overlapping match: trade precision for robustness and redact
		// the requested rectangle.
	}

	return doc.MarkRedaction(page, box)
}

// Redact opens the document at inputPath, applies the plan, and saves the
// result to outputPath with compaction so redacted content is physically
// removed. The document is closed on every exit path.
func Redact(opener engine.Opener, inputPath, outputPath string, plan Plan) error {
	doc, err := opener.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", inputPath, err)
	}
	defer doc.Close()

	if err := plan.Apply(doc); err != nil {
		return err
	}

	if err := doc.Save(outputPath, true); err != nil {
		return fmt.Errorf("save %s: %w", outputPath, err)
	}
	return nil
}

// ExportBytes opens the document at path, redacts the given regions only
// (no page deletion or bookmark rewriting), and returns the compacted
// document bytes.
func ExportBytes(opener engine.Opener, path string, regions []Region) ([]byte, error) {
	doc, err := opener.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer doc.Close()

	plan := Plan{Regions: regions}
	if err := plan.Apply(doc); err != nil {
		return nil, err
	}

	data, err := doc.ToBytes(true)
	if err != nil {
		return nil, fmt.Errorf("serialize document: %w", err)
	}
	return data, nil
}
