package memdoc

import (
	"bytes"
	"errors"
	"testing"

	"github.com/bookforge/pagemark/engine"
	"github.com/bookforge/pagemark/model"
)

func twoSpanDoc() *Document {
	doc := New("spans.pdf")
	page := doc.AddPage(612, 792)
	box := model.NewBBox(100, 200, 400, 14)
	page.AddTextBlock(box, model.Line{
		BBox: box,
		Spans: []model.Span{
			{Text: "public ", FontName: "Times-Roman", FontSize: 11},
			{Text: "secret", FontName: "Times-Roman", FontSize: 11},
			{Text: " public", FontName: "Times-Roman", FontSize: 11},
		},
	})
	return doc
}

// ============================================================================
// Page Access Tests
// ============================================================================

func TestPageBounds(t *testing.T) {
	doc := New("bounds.pdf")
	doc.AddPage(612, 792)

	if _, err := doc.PageDimensions(0); err != nil {
		t.Errorf("PageDimensions(0) error: %v", err)
	}
	if _, err := doc.PageDimensions(1); !errors.Is(err, engine.ErrPageOutOfRange) {
		t.Errorf("PageDimensions(1) error = %v, want ErrPageOutOfRange", err)
	}
	if _, err := doc.PageDimensions(-1); !errors.Is(err, engine.ErrPageOutOfRange) {
		t.Errorf("PageDimensions(-1) error = %v, want ErrPageOutOfRange", err)
	}
}

func TestClosedDocument(t *testing.T) {
	doc := New("closed.pdf")
	doc.AddPage(612, 792)

	if err := doc.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if err := doc.Close(); err != nil {
		t.Errorf("second Close() error: %v", err)
	}

	if _, err := doc.Fragments(0); !errors.Is(err, engine.ErrClosed) {
		t.Errorf("Fragments() after close error = %v, want ErrClosed", err)
	}
	if _, err := doc.TOC(); !errors.Is(err, engine.ErrClosed) {
		t.Errorf("TOC() after close error = %v, want ErrClosed", err)
	}
}

// ============================================================================
// Search Tests
// ============================================================================

func TestSearchText(t *testing.T) {
	doc := twoSpanDoc()

	matches, err := doc.SearchText(0, "secret")
	if err != nil {
		t.Fatalf("SearchText() error: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("SearchText() found %d matches, want 1", len(matches))
	}

	// "public secret public" is 20 runes over a 400-unit line starting at
	// x=100: "secret" occupies runes 7..13, so x = 100 + 7*20 = 240, width
	// 6*20 = 120.
	m := matches[0]
	if m.X != 240 || m.Width != 120 {
		t.Errorf("match box = (%v, w=%v), want (240, w=120)", m.X, m.Width)
	}
	if m.Y != 200 || m.Height != 14 {
		t.Errorf("match box y/h = (%v, %v), want (200, 14)", m.Y, m.Height)
	}
}

func TestSearchTextMultipleOccurrences(t *testing.T) {
	doc := New("multi.pdf")
	page := doc.AddPage(612, 792)
	box := model.NewBBox(0, 0, 300, 12)
	page.AddTextBlock(box, model.Line{
		BBox:  box,
		Spans: []model.Span{{Text: "ab ab ab", FontName: "Times-Roman", FontSize: 10}},
	})

	matches, err := doc.SearchText(0, "ab")
	if err != nil {
		t.Fatalf("SearchText() error: %v", err)
	}
	if len(matches) != 3 {
		t.Errorf("SearchText() found %d matches, want 3", len(matches))
	}
}

func TestSearchTextEmptyLiteral(t *testing.T) {
	doc := twoSpanDoc()
	matches, err := doc.SearchText(0, "")
	if err != nil {
		t.Fatalf("SearchText() error: %v", err)
	}
	if matches != nil {
		t.Errorf("SearchText(\"\") = %v, want nil", matches)
	}
}

// ============================================================================
// Redaction Tests
// ============================================================================

func TestRedactionRemovesMatchedSpanOnly(t *testing.T) {
	doc := twoSpanDoc()

	matches, err := doc.SearchText(0, "secret")
	if err != nil {
		t.Fatalf("SearchText() error: %v", err)
	}
	if err := doc.MarkRedaction(0, matches[0]); err != nil {
		t.Fatalf("MarkRedaction() error: %v", err)
	}
	if err := doc.ApplyRedactions(0); err != nil {
		t.Fatalf("ApplyRedactions() error: %v", err)
	}

	blocks, err := doc.Fragments(0)
	if err != nil {
		t.Fatalf("Fragments() error: %v", err)
	}
	if len(blocks) != 1 || len(blocks[0].Lines) != 1 {
		t.Fatalf("unexpected structure after redaction: %+v", blocks)
	}
	spans := blocks[0].Lines[0].Spans
	if len(spans) != 2 {
		t.Fatalf("got %d spans after redaction, want 2", len(spans))
	}
	for _, span := range spans {
		if span.Text == "secret" {
			t.Error("redacted span survived")
		}
	}
}

func TestRedactionRemovesImagesAndVectors(t *testing.T) {
	doc := New("graphics.pdf")
	page := doc.AddPage(612, 792)
	page.AddImage(model.NewBBox(100, 100, 50, 50))
	page.AddImage(model.NewBBox(400, 400, 50, 50))
	page.AddVector(model.NewBBox(110, 110, 20, 20))

	if err := doc.MarkRedaction(0, model.NewBBox(90, 90, 80, 80)); err != nil {
		t.Fatalf("MarkRedaction() error: %v", err)
	}
	if err := doc.ApplyRedactions(0); err != nil {
		t.Fatalf("ApplyRedactions() error: %v", err)
	}

	images, err := doc.ImageBoxes(0)
	if err != nil {
		t.Fatalf("ImageBoxes() error: %v", err)
	}
	if len(images) != 1 {
		t.Fatalf("got %d images after redaction, want 1", len(images))
	}
	if images[0].BBox.X != 400 {
		t.Errorf("wrong image removed, survivor at x=%v", images[0].BBox.X)
	}
}

func TestRedactionEdgeContactKeepsNeighbors(t *testing.T) {
	doc := twoSpanDoc()

	// Mark exactly the middle span's box; the neighbors touch it edge to
	// edge and must survive.
	matches, _ := doc.SearchText(0, "secret")
	doc.MarkRedaction(0, matches[0])
	doc.ApplyRedactions(0)

	blocks, _ := doc.Fragments(0)
	var texts []string
	for _, span := range blocks[0].Lines[0].Spans {
		texts = append(texts, span.Text)
	}
	if len(texts) != 2 || texts[0] != "public " || texts[1] != " public" {
		t.Errorf("surviving spans = %v, want the two neighbors", texts)
	}
}

func TestApplyRedactionsNoMarks(t *testing.T) {
	doc := twoSpanDoc()
	if err := doc.ApplyRedactions(0); err != nil {
		t.Errorf("ApplyRedactions() with no marks error: %v", err)
	}
	blocks, _ := doc.Fragments(0)
	if len(blocks) != 1 {
		t.Errorf("content changed with no marks")
	}
}

// ============================================================================
// Page Deletion Tests
// ============================================================================

func TestDeletePage(t *testing.T) {
	doc := New("delete.pdf")
	doc.AddPage(612, 792)
	doc.AddPage(500, 700)
	doc.AddPage(612, 792)

	if err := doc.DeletePage(1); err != nil {
		t.Fatalf("DeletePage() error: %v", err)
	}
	if doc.PageCount() != 2 {
		t.Fatalf("PageCount = %d, want 2", doc.PageCount())
	}
	dims, _ := doc.PageDimensions(1)
	if dims.Width != 612 {
		t.Errorf("page 1 width = %v, want 612 after shift", dims.Width)
	}

	if err := doc.DeletePage(5); !errors.Is(err, engine.ErrPageOutOfRange) {
		t.Errorf("DeletePage(5) error = %v, want ErrPageOutOfRange", err)
	}
}

// ============================================================================
// Outline Tests
// ============================================================================

func TestTOCRoundTrip(t *testing.T) {
	doc := New("toc.pdf")
	for i := 0; i < 5; i++ {
		doc.AddPage(612, 792)
	}

	in := []model.TOCEntry{
		{Level: 1, Title: "Preface", Page: 0},
		{Level: 1, Title: "Chapter One", Page: 2},
		{Level: 2, Title: "A Section", Page: 3},
	}
	if err := doc.SetTOC(in); err != nil {
		t.Fatalf("SetTOC() error: %v", err)
	}

	// Stored natively as 1-based; the round trip converts back.
	out, err := doc.TOC()
	if err != nil {
		t.Fatalf("TOC() error: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("TOC length = %d, want 3", len(out))
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("TOC[%d] = %+v, want %+v", i, out[i], in[i])
		}
	}
}

// ============================================================================
// Render Tests
// ============================================================================

func TestRasterizeProducesPNG(t *testing.T) {
	doc := twoSpanDoc()

	data, err := doc.Rasterize(0, 2.0)
	if err != nil {
		t.Fatalf("Rasterize() error: %v", err)
	}
	pngHeader := []byte{0x89, 'P', 'N', 'G'}
	if !bytes.HasPrefix(data, pngHeader) {
		t.Error("Rasterize() output is not a PNG")
	}

	unscaled, err := doc.Rasterize(0, 1.0)
	if err != nil {
		t.Fatalf("Rasterize(scale=1) error: %v", err)
	}
	if !bytes.HasPrefix(unscaled, pngHeader) {
		t.Error("unscaled Rasterize() output is not a PNG")
	}
}

func TestToBytesProducesPDF(t *testing.T) {
	doc := twoSpanDoc()
	doc.SetTOC([]model.TOCEntry{{Level: 1, Title: "Only Page", Page: 0}})

	data, err := doc.ToBytes(true)
	if err != nil {
		t.Fatalf("ToBytes() error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("ToBytes() output does not start with %PDF")
	}
}

// ============================================================================
// Opener Tests
// ============================================================================

func TestOpener(t *testing.T) {
	opener := NewOpener()
	opener.Register("a.pdf", twoSpanDoc())

	doc, err := opener.Open("a.pdf")
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if doc.PageCount() != 1 {
		t.Errorf("PageCount = %d, want 1", doc.PageCount())
	}

	if _, err := opener.Open("missing.pdf"); err == nil {
		t.Error("Open(missing) should fail")
	}
}

func TestOpenerReopensClosedDocument(t *testing.T) {
	opener := NewOpener()
	opener.Register("a.pdf", twoSpanDoc())

	doc, _ := opener.Open("a.pdf")
	doc.Close()

	reopened, err := opener.Open("a.pdf")
	if err != nil {
		t.Fatalf("Open() after close error: %v", err)
	}
	if _, err := reopened.Fragments(0); err != nil {
		t.Errorf("Fragments() after reopen error: %v", err)
	}
}
