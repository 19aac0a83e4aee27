package memdoc

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bookforge/pagemark/engine"
	"github.com/bookforge/pagemark/model"
)

// Page is one in-memory page: layout text blocks, image boxes, and vector
// graphics boxes, plus any pending redaction marks.
type Page struct {
	Width  float64
	Height float64

	blocks  []model.RawBlock
	images  []model.ImageInfo
	vectors []model.BBox
	marked  []model.BBox
}

// AddTextBlock appends a layout block built from the given lines.
func (p *Page) AddTextBlock(box model.BBox, lines ...model.Line) {
	p.blocks = append(p.blocks, model.RawBlock{BBox: box, Lines: lines})
}

// AddImage appends an image with the given bounding box.
func (p *Page) AddImage(box model.BBox) {
	p.images = append(p.images, model.ImageInfo{BBox: box})
}

// AddVector appends a vector graphics element with the given bounding box.
func (p *Page) AddVector(box model.BBox) {
	p.vectors = append(p.vectors, box)
}

// Document is an in-memory implementation of engine.Document, used by tests
// and the worker's demo mode. The outline is stored with 1-based page
// numbers, matching the native indexing of common document engines, so the
// 0-based boundary conversion is exercised for real.
type Document struct {
	name   string
	pages  []*Page
	toc    []nativeTOCEntry
	closed bool
}

// nativeTOCEntry is an outline entry in native (1-based) page indexing.
type nativeTOCEntry struct {
	level int
	title string
	page  int // 1-based
}

// New creates an empty in-memory document.
func New(name string) *Document {
	return &Document{name: name}
}

// AddPage appends a page with the given dimensions and returns it for
// content population.
func (d *Document) AddPage(width, height float64) *Page {
	page := &Page{Width: width, Height: height}
	d.pages = append(d.pages, page)
	return page
}

// Name returns the document's name.
func (d *Document) Name() string {
	return d.name
}

// PageCount returns the number of pages currently in the document.
func (d *Document) PageCount() int {
	return len(d.pages)
}

func (d *Document) page(page int) (*Page, error) {
	if d.closed {
		return nil, engine.ErrClosed
	}
	if page < 0 || page >= len(d.pages) {
		return nil, fmt.Errorf("page %d of %d: %w", page, len(d.pages), engine.ErrPageOutOfRange)
	}
	return d.pages[page], nil
}

// PageDimensions returns the size of one page.
func (d *Document) PageDimensions(page int) (model.PageDimensions, error) {
	p, err := d.page(page)
	if err != nil {
		return model.PageDimensions{}, err
	}
	return model.PageDimensions{Width: p.Width, Height: p.Height}, nil
}

// Fragments returns the page's layout blocks.
func (d *Document) Fragments(page int) ([]model.RawBlock, error) {
	p, err := d.page(page)
	if err != nil {
		return nil, err
	}
	out := make([]model.RawBlock, len(p.blocks))
	copy(out, p.blocks)
	return out, nil
}

// ImageBoxes returns the page's image bounding boxes.
func (d *Document) ImageBoxes(page int) ([]model.ImageInfo, error) {
	p, err := d.page(page)
	if err != nil {
		return nil, err
	}
	out := make([]model.ImageInfo, len(p.images))
	copy(out, p.images)
	return out, nil
}

// SearchText returns the bounding boxes of all occurrences of literal on
// the page, in page order. Occurrence boxes are sliced proportionally from
// the containing line's box by character position.
func (d *Document) SearchText(page int, literal string) ([]model.BBox, error) {
	p, err := d.page(page)
	if err != nil {
		return nil, err
	}
	if literal == "" {
		return nil, nil
	}

	var matches []model.BBox
	for _, block := range p.blocks {
		for _, line := range block.Lines {
			text := lineText(line)
			offset := 0
			for {
				idx := strings.Index(text[offset:], literal)
				if idx < 0 {
					break
				}
				start := offset + idx
				end := start + len(literal)
				matches = append(matches, charSpanBox(line, text, start, end))
				offset = end
			}
		}
	}
	return matches, nil
}

// MarkRedaction marks a rectangular region for removal.
func (d *Document) MarkRedaction(page int, box model.BBox) error {
	p, err := d.page(page)
	if err != nil {
		return err
	}
	p.marked = append(p.marked, box)
	return nil
}

// ApplyRedactions removes all content intersecting the page's marked
// regions: text spans, images, and vector graphics alike. Marks are
// consumed; empty lines and blocks left behind are dropped.
func (d *Document) ApplyRedactions(page int) error {
	p, err := d.page(page)
	if err != nil {
		return err
	}
	if len(p.marked) == 0 {
		return nil
	}

	var blocks []model.RawBlock
	for _, block := range p.blocks {
		var lines []model.Line
		for _, line := range block.Lines {
			kept := redactLine(line, p.marked)
			if len(kept.Spans) > 0 {
				lines = append(lines, kept)
			}
		}
		if len(lines) > 0 {
			block.Lines = lines
			blocks = append(blocks, block)
		}
	}
	p.blocks = blocks

	var images []model.ImageInfo
	for _, img := range p.images {
		if !overlapsAny(img.BBox, p.marked) {
			images = append(images, img)
		}
	}
	p.images = images

	var vectors []model.BBox
	for _, v := range p.vectors {
		if !overlapsAny(v, p.marked) {
			vectors = append(vectors, v)
		}
	}
	p.vectors = vectors

	p.marked = nil
	return nil
}

// DeletePage removes one page; subsequent pages shift down by one.
func (d *Document) DeletePage(page int) error {
	if _, err := d.page(page); err != nil {
		return err
	}
	d.pages = append(d.pages[:page], d.pages[page+1:]...)
	return nil
}

// TOC returns the outline with 0-indexed pages.
func (d *Document) TOC() ([]model.TOCEntry, error) {
	if d.closed {
		return nil, engine.ErrClosed
	}
	out := make([]model.TOCEntry, len(d.toc))
	for i, e := range d.toc {
		out[i] = model.TOCEntry{Level: e.level, Title: e.title, Page: e.page - 1}
	}
	return out, nil
}

// SetTOC replaces the entire outline. Incoming pages are 0-indexed and are
// stored in the document's native 1-based indexing.
func (d *Document) SetTOC(entries []model.TOCEntry) error {
	if d.closed {
		return engine.ErrClosed
	}
	toc := make([]nativeTOCEntry, len(entries))
	for i, e := range entries {
		toc[i] = nativeTOCEntry{level: e.Level, title: e.Title, page: e.Page + 1}
	}
	d.toc = toc
	return nil
}

// Close releases the document. Further operations fail with ErrClosed.
// Safe to call more than once.
func (d *Document) Close() error {
	d.closed = true
	return nil
}

// redactLine drops the spans of a line whose boxes overlap any mark.
func redactLine(line model.Line, marks []model.BBox) model.Line {
	text := lineText(line)
	kept := model.Line{BBox: line.BBox}

	start := 0
	for _, span := range line.Spans {
		end := start + len(span.Text)
		box := charSpanBox(line, text, start, end)
		if !overlapsAny(box, marks) {
			kept.Spans = append(kept.Spans, span)
		}
		start = end
	}
	return kept
}

// overlapsAny requires positive-area overlap. Adjacent spans share exact
// edge coordinates with a mark sliced from the same line, and edge contact
// must not redact the neighbor.
func overlapsAny(box model.BBox, marks []model.BBox) bool {
	for _, m := range marks {
		if box.Intersection(m).IsValid() {
			return true
		}
	}
	return false
}

// lineText concatenates a line's span texts.
func lineText(line model.Line) string {
	var sb strings.Builder
	for _, span := range line.Spans {
		sb.WriteString(span.Text)
	}
	return sb.String()
}

// charSpanBox slices a line's box proportionally by character position:
// byte range [start,end) of text maps to the corresponding horizontal slice
// of the line, with each rune given equal width.
func charSpanBox(line model.Line, text string, start, end int) model.BBox {
	totalRunes := utf8.RuneCountInString(text)
	if totalRunes == 0 {
		return line.BBox
	}

	startRunes := utf8.RuneCountInString(text[:start])
	endRunes := utf8.RuneCountInString(text[:end])
	charWidth := line.BBox.Width / float64(totalRunes)

	return model.BBox{
		X:      line.BBox.X + float64(startRunes)*charWidth,
		Y:      line.BBox.Y,
		Width:  float64(endRunes-startRunes) * charWidth,
		Height: line.BBox.Height,
	}
}
