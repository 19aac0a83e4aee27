// Package pagemark analyzes a paginated document's rendered content, groups
// it into semantically meaningful categories (body text, headings, footnotes,
// captions, headers/footers, images), and supports bulk text export by
// category and permanent redaction of selected regions.
//
// Basic usage:
//
//	analysis, err := pagemark.AnalyzeFile(opener, "book.pdf", pagemark.DefaultOptions())
//	if err != nil {
//	    // handle error
//	}
//	text, n := analysis.ExportText(enabledIDs)
//
// The underlying document engine is abstracted behind the engine.Document
// interface; the engine/memdoc subpackage provides an in-memory reference
// implementation. Redaction and page restructuring live in the redact
// subpackage.
package pagemark

import (
	"fmt"
	"path/filepath"

	"github.com/bookforge/pagemark/classify"
	"github.com/bookforge/pagemark/engine"
	"github.com/bookforge/pagemark/extract"
	"github.com/bookforge/pagemark/model"
)

// AnalyzeFile opens the document at path, runs a full analysis pass, and
// closes the document before returning. The document resource is held only
// for the duration of the call, on every exit path.
func AnalyzeFile(opener engine.Opener, path string, opts Options) (*Analysis, error) {
	doc, err := opener.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer doc.Close()

	analysis, err := Analyze(doc, opts)
	if err != nil {
		return nil, err
	}
	analysis.DocName = filepath.Base(path)
	return analysis, nil
}

// Analyze runs a full analysis pass over an open document: it extracts and
// normalizes every page's blocks, classifies regions, and rebuilds the
// category map. Any previous analysis of the document is superseded; blocks
// and categories are value results with no live reference to doc.
func Analyze(doc engine.Document, opts Options) (*Analysis, error) {
	pageCount := doc.PageCount()
	if opts.MaxPages > 0 && opts.MaxPages < pageCount {
		pageCount = opts.MaxPages
	}

	dims := make([]model.PageDimensions, pageCount)
	for page := 0; page < pageCount; page++ {
		d, err := doc.PageDimensions(page)
		if err != nil {
			return nil, fmt.Errorf("page %d dimensions: %w", page, err)
		}
		dims[page] = d
	}

	extractor := extract.NewWithConfig(opts.Extract)

	var blocks []model.Block
	for page := 0; page < pageCount; page++ {
		raw, err := doc.Fragments(page)
		if err != nil {
			return nil, fmt.Errorf("page %d fragments: %w", page, err)
		}
		images, err := doc.ImageBoxes(page)
		if err != nil {
			return nil, fmt.Errorf("page %d image boxes: %w", page, err)
		}

		pageBlocks := extractor.ExtractPage(page, raw, images)
		for i := range pageBlocks {
			pageBlocks[i].Region = classify.RegionFor(&pageBlocks[i], dims[page].Height)
		}
		blocks = append(blocks, pageBlocks...)
	}

	categories := classify.Categorize(blocks)

	return &Analysis{
		PageCount:      pageCount,
		PageDimensions: dims,
		Blocks:         blocks,
		Categories:     categories,
	}, nil
}
