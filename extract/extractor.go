// Package extract normalizes raw per-page engine fragments into attributed
// content blocks with stable identity hashes.
package extract

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/bookforge/pagemark/model"
)

// Config holds configuration for block extraction
type Config struct {
	// MinImageSize is the minimum width and height for an image fragment to
	// produce a block. Smaller images are decorative (glyphs, rules) and are
	// discarded.
	// Default: 20 units
	MinImageSize float64

	// IDTextPrefix is the number of leading text characters mixed into a
	// text block's identity hash.
	// Default: 50
	IDTextPrefix int
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		MinImageSize: 20.0,
		IDTextPrefix: 50,
	}
}

// Extractor turns raw page fragments into normalized blocks
type Extractor struct {
	config Config
}

// New creates an extractor with default configuration
func New() *Extractor {
	return &Extractor{config: DefaultConfig()}
}

// NewWithConfig creates an extractor with custom configuration
func NewWithConfig(config Config) *Extractor {
	return &Extractor{config: config}
}

// ExtractPage produces the deduplicated blocks for one page. Image boxes are
// collected from both the explicit image list and any layout fragment that is
// flagged as non-text or has no lines; a box seen via one path is skipped
// when later seen via the other. Text fragments are merged into one block
// each, with dominant font attributes computed by character-weighted
// majority. The dedup set is per page and does not carry across calls.
func (e *Extractor) ExtractPage(pageIndex int, raw []model.RawBlock, images []model.ImageInfo) []model.Block {
	var blocks []model.Block
	seen := make(map[[4]int]bool)

	for _, img := range images {
		if b, ok := e.imageBlock(pageIndex, -1, img.BBox, seen); ok {
			blocks = append(blocks, b)
		}
	}

	for idx, rb := range raw {
		if rb.IsImage || len(rb.Lines) == 0 {
			if b, ok := e.imageBlock(pageIndex, idx, rb.BBox, seen); ok {
				blocks = append(blocks, b)
			}
			continue
		}

		if b, ok := e.textBlock(pageIndex, idx, rb); ok {
			blocks = append(blocks, b)
		}
	}

	return blocks
}

// imageBlock builds a block for an image bounding box, applying the size
// filter and rounded-coordinate deduplication. ordinal is -1 for boxes from
// the explicit image list.
func (e *Extractor) imageBlock(pageIndex, ordinal int, box model.BBox, seen map[[4]int]bool) (model.Block, bool) {
	if box.Width < e.config.MinImageSize || box.Height < e.config.MinImageSize {
		return model.Block{}, false
	}

	key := [4]int{
		int(math.Round(box.Left())),
		int(math.Round(box.Top())),
		int(math.Round(box.Right())),
		int(math.Round(box.Bottom())),
	}
	if seen[key] {
		return model.Block{}, false
	}
	seen[key] = true

	var id string
	if ordinal < 0 {
		id = shortHash(fmt.Sprintf("%d:img:%.0f,%.0f", pageIndex, box.X, box.Y), 12)
	} else {
		id = shortHash(fmt.Sprintf("%d:img:%d:%.0f,%.0f", pageIndex, ordinal, box.X, box.Y), 12)
	}

	return model.Block{
		ID:       id,
		Page:     pageIndex,
		X:        box.X,
		Y:        box.Y,
		Width:    box.Width,
		Height:   box.Height,
		Text:     fmt.Sprintf("[Image %dx%d]", int(box.Width), int(box.Height)),
		FontName: "image",
		Region:   model.RegionBody,
		IsImage:  true,
	}, true
}

// textBlock merges a layout block's spans into one normalized block.
// Returns false when the merged text is empty or whitespace-only.
func (e *Extractor) textBlock(pageIndex, ordinal int, rb model.RawBlock) (model.Block, bool) {
	var parts []string
	sizes := newWeightTable[int]()
	names := newWeightTable[string]()
	boldChars := 0
	italicChars := 0
	superChars := 0
	totalChars := 0

	for _, line := range rb.Lines {
		for _, span := range line.Spans {
			if strings.TrimSpace(span.Text) == "" {
				continue
			}
			parts = append(parts, span.Text)

			charLen := utf8.RuneCountInString(span.Text)
			totalChars += charLen

			// Bucket at 0.1pt precision; the dominant size is reported rounded
			// to one decimal.
			sizes.add(int(math.Round(span.FontSize*10)), charLen)
			name := span.FontName
			if name == "" {
				name = "unknown"
			}
			names.add(name, charLen)

			if span.Bold() {
				boldChars += charLen
			}
			if span.Italic() {
				italicChars += charLen
			}
			if span.Superscript() {
				superChars += charLen
			}
		}
	}

	text := norm.NFC.String(strings.Join(parts, " "))
	if strings.TrimSpace(text) == "" {
		return model.Block{}, false
	}

	fontSize := 10.0
	if bucket, ok := sizes.dominant(); ok {
		fontSize = float64(bucket) / 10
	}
	fontName := "unknown"
	if name, ok := names.dominant(); ok {
		fontName = name
	}

	charCount := utf8.RuneCountInString(text)

	return model.Block{
		ID:            shortHash(fmt.Sprintf("%d:%d:%s", pageIndex, ordinal, prefix(text, e.config.IDTextPrefix)), 12),
		Page:          pageIndex,
		X:             rb.BBox.X,
		Y:             rb.BBox.Y,
		Width:         rb.BBox.Width,
		Height:        rb.BBox.Height,
		Text:          text,
		FontSize:      fontSize,
		FontName:      fontName,
		CharCount:     charCount,
		IsBold:        2*boldChars > totalChars,
		IsItalic:      2*italicChars > totalChars,
		IsSuperscript: 2*superChars > totalChars,
		LineCount:     len(rb.Lines),
	}, true
}

// weightTable accumulates character counts per key, preserving first-seen
// order so that ties resolve to the earliest key.
type weightTable[K comparable] struct {
	counts map[K]int
	order  []K
}

func newWeightTable[K comparable]() *weightTable[K] {
	return &weightTable[K]{counts: make(map[K]int)}
}

func (w *weightTable[K]) add(key K, n int) {
	if _, ok := w.counts[key]; !ok {
		w.order = append(w.order, key)
	}
	w.counts[key] += n
}

// dominant returns the key with the highest accumulated count. Ties break
// to the first-encountered key.
func (w *weightTable[K]) dominant() (K, bool) {
	if len(w.order) == 0 {
		var zero K
		return zero, false
	}
	best := w.order[0]
	for _, key := range w.order[1:] {
		if w.counts[key] > w.counts[best] {
			best = key
		}
	}
	return best, true
}

// prefix returns the first n runes of s.
func prefix(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// shortHash returns the first n hex characters of the MD5 digest of s.
// MD5 is used for stable short identity hashes, not for security.
func shortHash(s string, n int) string {
	sum := md5.Sum([]byte(s))
	h := hex.EncodeToString(sum[:])
	if n < len(h) {
		return h[:n]
	}
	return h
}
