package model

import (
	"math"
	"testing"
)

// ============================================================================
// Point Tests
// ============================================================================

func TestPointDistance(t *testing.T) {
	tests := []struct {
		name     string
		p1, p2   Point
		expected float64
	}{
		{"same point", Point{0, 0}, Point{0, 0}, 0},
		{"horizontal", Point{0, 0}, Point{3, 0}, 3},
		{"vertical", Point{0, 0}, Point{0, 4}, 4},
		{"diagonal 3-4-5", Point{0, 0}, Point{3, 4}, 5},
		{"negative coords", Point{-1, -1}, Point{2, 3}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.p1.Distance(tt.p2)
			if math.Abs(result-tt.expected) > 0.0001 {
				t.Errorf("Distance() = %v, want %v", result, tt.expected)
			}
		})
	}
}

// ============================================================================
// BBox Tests
// ============================================================================

func TestNewBBoxFromCorners(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 float64
		want           BBox
	}{
		{"normal", 10, 20, 50, 70, BBox{10, 20, 40, 50}},
		{"reversed", 50, 70, 10, 20, BBox{10, 20, 40, 50}},
		{"same point", 10, 10, 10, 10, BBox{10, 10, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewBBoxFromCorners(tt.x0, tt.y0, tt.x1, tt.y1)
			if got != tt.want {
				t.Errorf("NewBBoxFromCorners() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBBoxEdgesTopLeftOrigin(t *testing.T) {
	// Screen coordinates: Y grows downward, so Top < Bottom.
	bbox := NewBBox(10, 20, 100, 50)

	if bbox.Left() != 10 {
		t.Errorf("Left() = %v, want 10", bbox.Left())
	}
	if bbox.Right() != 110 {
		t.Errorf("Right() = %v, want 110", bbox.Right())
	}
	if bbox.Top() != 20 {
		t.Errorf("Top() = %v, want 20", bbox.Top())
	}
	if bbox.Bottom() != 70 {
		t.Errorf("Bottom() = %v, want 70", bbox.Bottom())
	}
}

func TestBBoxIntersects(t *testing.T) {
	tests := []struct {
		name string
		b1   BBox
		b2   BBox
		want bool
	}{
		{"overlapping", NewBBox(0, 0, 100, 100), NewBBox(50, 50, 100, 100), true},
		{"touching edge", NewBBox(0, 0, 100, 100), NewBBox(100, 0, 50, 50), true},
		{"disjoint horizontal", NewBBox(0, 0, 50, 50), NewBBox(100, 0, 50, 50), false},
		{"disjoint vertical", NewBBox(0, 0, 50, 50), NewBBox(0, 100, 50, 50), false},
		{"contained", NewBBox(0, 0, 100, 100), NewBBox(25, 25, 50, 50), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.b1.Intersects(tt.b2); got != tt.want {
				t.Errorf("Intersects() = %v, want %v", got, tt.want)
			}
			if got := tt.b2.Intersects(tt.b1); got != tt.want {
				t.Errorf("Intersects() reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBBoxIntersection(t *testing.T) {
	b1 := NewBBox(0, 0, 100, 100)
	b2 := NewBBox(50, 50, 100, 100)

	got := b1.Intersection(b2)
	want := BBox{50, 50, 50, 50}
	if got != want {
		t.Errorf("Intersection() = %+v, want %+v", got, want)
	}

	disjoint := NewBBox(500, 500, 10, 10)
	if got := b1.Intersection(disjoint); got != (BBox{}) {
		t.Errorf("Intersection() of disjoint boxes = %+v, want zero", got)
	}
}

func TestBBoxOverlapRatio(t *testing.T) {
	tests := []struct {
		name string
		b1   BBox
		b2   BBox
		want float64
	}{
		{"no overlap", NewBBox(0, 0, 10, 10), NewBBox(100, 100, 10, 10), 0},
		{"full containment", NewBBox(0, 0, 100, 100), NewBBox(25, 25, 50, 50), 1},
		{"half overlap", NewBBox(0, 0, 100, 100), NewBBox(50, 0, 100, 100), 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.b1.OverlapRatio(tt.b2)
			if math.Abs(got-tt.want) > 0.0001 {
				t.Errorf("OverlapRatio() = %v, want %v", got, tt.want)
			}
		})
	}
}

// ============================================================================
// Span Tests
// ============================================================================

func TestSpanBold(t *testing.T) {
	tests := []struct {
		name string
		span Span
		want bool
	}{
		{"plain", Span{FontName: "Times-Roman"}, false},
		{"bold font name", Span{FontName: "Times-Bold"}, true},
		{"bold mixed case", Span{FontName: "GEORGIA-BOLD"}, true},
		{"bold flag only", Span{FontName: "Custom", Flags: FlagBold}, true},
		{"italic flag is not bold", Span{FontName: "Custom", Flags: FlagItalic}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.span.Bold(); got != tt.want {
				t.Errorf("Bold() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpanItalic(t *testing.T) {
	tests := []struct {
		name string
		span Span
		want bool
	}{
		{"plain", Span{FontName: "Helvetica"}, false},
		{"italic font name", Span{FontName: "Times-Italic"}, true},
		{"oblique font name", Span{FontName: "Helvetica-Oblique"}, true},
		{"italic flag", Span{FontName: "Custom", Flags: FlagItalic}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.span.Italic(); got != tt.want {
				t.Errorf("Italic() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpanSuperscript(t *testing.T) {
	if (Span{FontName: "Times-Roman"}).Superscript() {
		t.Error("plain span should not be superscript")
	}
	if !(Span{Flags: FlagSuperscript}).Superscript() {
		t.Error("flagged span should be superscript")
	}
}
