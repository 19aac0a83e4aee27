package engine

import (
	"errors"

	"github.com/bookforge/pagemark/model"
)

// ErrPageOutOfRange is returned by Document operations referencing a page
// index beyond the document's current page count. Callers that tolerate
// concurrent edits (redaction, page deletion) skip it rather than fail.
var ErrPageOutOfRange = errors.New("page index out of range")

// ErrClosed is returned by operations on a closed document.
var ErrClosed = errors.New("document is closed")

// Opener opens documents by path.
type Opener interface {
	Open(path string) (Document, error)
}

// Document is the boundary with an external document engine. All page
// indices are 0-based; implementations backed by engines with 1-based
// native indexing convert internally. All geometry is in screen
// coordinates (top-left origin).
type Document interface {
	// PageCount returns the number of pages currently in the document.
	PageCount() int

	// PageDimensions returns the rendered size of one page.
	PageDimensions(page int) (model.PageDimensions, error)

	// Fragments returns the page's layout blocks with their lines and
	// font-attributed spans.
	Fragments(page int) ([]model.RawBlock, error)

	// ImageBoxes returns the page's explicitly enumerated image bounding
	// boxes.
	ImageBoxes(page int) ([]model.ImageInfo, error)

	// SearchText returns the bounding boxes of all occurrences of the
	// literal text on the page, in page order.
	SearchText(page int, literal string) ([]model.BBox, error)

	// MarkRedaction marks a rectangular region of the page for removal.
	// Nothing is removed until ApplyRedactions runs.
	MarkRedaction(page int, box model.BBox) error

	// ApplyRedactions permanently removes all content intersecting the
	// page's marked regions: text, vector graphics, and images alike.
	ApplyRedactions(page int) error

	// DeletePage removes one page. Subsequent pages shift down by one.
	DeletePage(page int) error

	// TOC returns the document outline with 0-indexed pages.
	TOC() ([]model.TOCEntry, error)

	// SetTOC replaces the entire document outline. Entries carry 0-indexed
	// pages; implementations convert to their native indexing.
	SetTOC(entries []model.TOCEntry) error

	// Rasterize renders one page at the given scale and returns PNG bytes.
	Rasterize(page int, scale float64) ([]byte, error)

	// Save persists the document. With compact set, redacted content is
	// physically removed (garbage collection), not merely hidden.
	Save(path string, compact bool) error

	// ToBytes serializes the document, compacting as Save does.
	ToBytes(compact bool) ([]byte, error)

	// Close releases the document resource. Safe to call more than once.
	Close() error
}
