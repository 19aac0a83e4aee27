package model

// Region is the coarse page-position classification of a block. It is an
// input signal to semantic categorization, not a final category by itself.
type Region string

const (
	// RegionHeader marks short text at the very top of a page (running headers)
	RegionHeader Region = "header"
	// RegionFooter marks text at the very bottom of a page (page numbers, footers)
	RegionFooter Region = "footer"
	// RegionLower marks the lower portion of a page where footnotes live
	RegionLower Region = "lower"
	// RegionBody marks everything else
	RegionBody Region = "body"
)

// CategoryType is the semantic type assigned to a block by classification.
type CategoryType string

const (
	CategoryBody        CategoryType = "body"
	CategoryFootnote    CategoryType = "footnote"
	CategoryFootnoteRef CategoryType = "footnote_ref"
	CategoryHeading     CategoryType = "heading"
	CategorySubheading  CategoryType = "subheading"
	CategoryTitle       CategoryType = "title"
	CategoryCaption     CategoryType = "caption"
	CategoryQuote       CategoryType = "quote"
	CategoryHeader      CategoryType = "header"
	CategoryFooter      CategoryType = "footer"
	CategoryImage       CategoryType = "image"
)

// Block is one visually coherent unit of content on one page: a merged text
// run or an image placeholder. Blocks are created in bulk during a single
// analysis pass and are immutable afterwards, except for CategoryID which is
// back-filled exactly once by category synthesis.
type Block struct {
	// ID is a stable short hash derived from the page index plus either a
	// rounded position (images) or a within-page ordinal and text prefix
	// (text). It is stable across repeated analysis of the same unmodified
	// document.
	ID string `json:"id"`

	// Page is the 0-indexed page the block appears on.
	Page int `json:"page"`

	// Geometry in screen coordinates (top-left origin).
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// Text is the merged, whitespace-joined content. Image blocks carry a
	// synthetic "[Image WxH]" label instead.
	Text string `json:"text"`

	// FontSize is the dominant font size by character-weighted majority,
	// rounded to one decimal. Zero for image blocks.
	FontSize float64 `json:"font_size"`

	// FontName is the dominant font name by character-weighted majority.
	FontName string `json:"font_name"`

	// CharCount is the length of the merged text. Zero for image blocks.
	CharCount int `json:"char_count"`

	// Region is the coarse page-position classification.
	Region Region `json:"region"`

	// CategoryID references the block's category; empty until categorization.
	CategoryID string `json:"category_id"`

	// Emphasis flags, each true iff the character-weighted fraction of
	// characters carrying the attribute exceeds 50%.
	IsBold        bool `json:"is_bold"`
	IsItalic      bool `json:"is_italic"`
	IsSuperscript bool `json:"is_superscript"`

	// IsImage is true for image blocks.
	IsImage bool `json:"is_image"`

	// LineCount is the number of layout lines merged into this block.
	LineCount int `json:"line_count"`
}

// BBox returns the block's bounding box.
func (b *Block) BBox() BBox {
	return BBox{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}
}

// Category is a named, colored group of blocks sharing a semantic type.
// The category map is rebuilt wholesale on every analysis pass; ids are
// content-addressed by type name, never by member blocks.
type Category struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Color       string  `json:"color"`
	BlockCount  int     `json:"block_count"`
	CharCount   int     `json:"char_count"`
	FontSize    float64 `json:"font_size"`
	Region      Region  `json:"region"`
	SampleText  string  `json:"sample_text"`
	Enabled     bool    `json:"enabled"`
}
