package model

import "strings"

// Span style flag bits reported by document engines. The bit layout follows
// the common convention for rendered-text extraction: bit 0 superscript,
// bit 1 italic, bit 4 bold.
const (
	FlagSuperscript = 1 << 0
	FlagItalic      = 1 << 1
	FlagBold        = 1 << 4
)

// Span is a run of characters sharing one font within a layout line.
type Span struct {
	Text     string
	FontName string
	FontSize float64
	Flags    int
}

// Bold reports whether the span is bold, combining the lexical signal from
// the font name with the engine's flag bits.
func (s Span) Bold() bool {
	return strings.Contains(strings.ToLower(s.FontName), "bold") || s.Flags&FlagBold != 0
}

// Italic reports whether the span is italic or oblique.
func (s Span) Italic() bool {
	lower := strings.ToLower(s.FontName)
	return strings.Contains(lower, "italic") || strings.Contains(lower, "oblique") ||
		s.Flags&FlagItalic != 0
}

// Superscript reports whether the span is superscript.
func (s Span) Superscript() bool {
	return s.Flags&FlagSuperscript != 0
}

// Line is one layout line of a raw block.
type Line struct {
	BBox  BBox
	Spans []Span
}

// RawBlock is one layout block as reported by a document engine, before
// normalization. A block with no lines, or flagged as an image, is treated
// as an image fragment.
type RawBlock struct {
	BBox    BBox
	IsImage bool
	Lines   []Line
}

// ImageInfo is an explicitly enumerated image bounding box on a page.
type ImageInfo struct {
	BBox BBox
}

// PageDimensions holds the rendered size of one page.
type PageDimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// TOCEntry is one bookmark in a document outline. Page is 0-indexed here;
// engines using 1-based native indexing convert at the boundary.
type TOCEntry struct {
	Level int    `json:"level"`
	Title string `json:"title"`
	Page  int    `json:"page"`
}
