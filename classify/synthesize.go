package classify

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"math"
	"sort"

	"github.com/bookforge/pagemark/model"
)

// typeColors maps known semantic types to their fixed display colors.
var typeColors = map[model.CategoryType]string{
	model.CategoryBody:        "#4CAF50", // Green
	model.CategoryFootnote:    "#2196F3", // Blue
	model.CategoryFootnoteRef: "#E91E63", // Pink
	model.CategoryHeading:     "#FF9800", // Orange
	model.CategorySubheading:  "#9C27B0", // Purple
	model.CategoryTitle:       "#F44336", // Red
	model.CategoryCaption:     "#00BCD4", // Cyan
	model.CategoryQuote:       "#FFEB3B", // Yellow
	model.CategoryHeader:      "#795548", // Brown
	model.CategoryFooter:      "#607D8B", // Blue Grey
	model.CategoryImage:       "#9E9E9E", // Grey
}

// fallbackColors is the cyclic palette for types without a fixed color,
// assigned in the order unrecognized types are first encountered.
var fallbackColors = []string{
	"#E91E63", // Pink
	"#3F51B5", // Indigo
	"#009688", // Teal
	"#8BC34A", // Light Green
	"#FF5722", // Deep Orange
	"#673AB7", // Deep Purple
	"#00E676", // Green Accent
	"#FF4081", // Pink Accent
	"#536DFE", // Indigo Accent
}

// sampleTextLen is the number of leading characters of a group's first block
// kept as the category's sample text.
const sampleTextLen = 100

// Categorize rebuilds the category map for a set of blocks: it computes the
// document baseline, classifies every block, groups by semantic type,
// synthesizes a named and colored category per group, and back-fills each
// block's CategoryID. The previous category assignment, if any, is
// discarded entirely; aggregates are recomputed from scratch so they cannot
// drift.
func Categorize(blocks []model.Block) map[string]model.Category {
	baseline := BaselineFontSize(blocks)

	// Group by semantic type only. Font or size variation within a type
	// never splits a group.
	groups := make(map[model.CategoryType][]int)
	var typeOrder []model.CategoryType
	for i := range blocks {
		catType := ClassifyBlock(&blocks[i], baseline)
		if _, ok := groups[catType]; !ok {
			typeOrder = append(typeOrder, catType)
		}
		groups[catType] = append(groups[catType], i)
	}

	// Fallback colors depend on the order unknown types are first seen while
	// walking groups sorted by descending total character count. Exact
	// char-count ties break lexically by type name so the assignment stays
	// deterministic.
	sort.SliceStable(typeOrder, func(i, j int) bool {
		ci := groupCharCount(blocks, groups[typeOrder[i]])
		cj := groupCharCount(blocks, groups[typeOrder[j]])
		if ci != cj {
			return ci > cj
		}
		return typeOrder[i] < typeOrder[j]
	})

	categories := make(map[string]model.Category, len(typeOrder))
	fallbackIdx := 0

	for _, catType := range typeOrder {
		members := groups[catType]

		totalChars := groupCharCount(blocks, members)
		sizeSum := 0.0
		for _, i := range members {
			sizeSum += blocks[i].FontSize
		}
		meanSize := math.Round(sizeSum/float64(len(members))*10) / 10

		color, known := typeColors[catType]
		if !known {
			color = fallbackColors[fallbackIdx%len(fallbackColors)]
			fallbackIdx++
		}

		name, description := describe(catType, len(members))
		first := &blocks[members[0]]

		id := categoryID(catType)
		categories[id] = model.Category{
			ID:          id,
			Name:        name,
			Description: description,
			Color:       color,
			BlockCount:  len(members),
			CharCount:   totalChars,
			FontSize:    meanSize,
			Region:      first.Region,
			SampleText:  samplePrefix(first.Text),
			Enabled:     true,
		}

		for _, i := range members {
			blocks[i].CategoryID = id
		}
	}

	return categories
}

// categoryID content-addresses a category by its type name, so re-running
// categorization on the same document yields the same ids.
func categoryID(catType model.CategoryType) string {
	sum := md5.Sum([]byte(catType))
	return hex.EncodeToString(sum[:])[:8]
}

// describe returns the human-readable name and description for a category
// type. Unrecognized types get a generic fallback.
func describe(catType model.CategoryType, blockCount int) (string, string) {
	switch catType {
	case model.CategoryBody:
		return "Body Text", fmt.Sprintf("Main content (%d blocks)", blockCount)
	case model.CategoryFootnote:
		return "Footnotes", fmt.Sprintf("Footnotes and references (%d blocks)", blockCount)
	case model.CategoryFootnoteRef:
		return "Footnote Numbers", fmt.Sprintf("Superscript reference numbers (%d blocks)", blockCount)
	case model.CategoryHeading:
		return "Section Headings", "Bold section titles"
	case model.CategorySubheading:
		return "Subheadings", "Bold subsection titles"
	case model.CategoryTitle:
		return "Titles", "Large titles or chapter headings"
	case model.CategoryHeader:
		return "Page Headers", "Running header text"
	case model.CategoryFooter:
		return "Page Footers", "Page numbers or footer text"
	case model.CategoryCaption:
		return "Captions", "Figure or table captions"
	case model.CategoryQuote:
		return "Block Quotes", "Indented quotations"
	case model.CategoryImage:
		return "Images", fmt.Sprintf("Figures and images (%d blocks)", blockCount)
	default:
		return fmt.Sprintf("Other (%s)", catType), "Other text style"
	}
}

func groupCharCount(blocks []model.Block, members []int) int {
	total := 0
	for _, i := range members {
		total += blocks[i].CharCount
	}
	return total
}

func samplePrefix(s string) string {
	runes := []rune(s)
	if len(runes) <= sampleTextLen {
		return s
	}
	return string(runes[:sampleTextLen])
}
