package memdoc

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/go-pdf/fpdf"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/bookforge/pagemark/engine"
	"github.com/bookforge/pagemark/model"
)

// Rasterize renders one page at the given scale and returns PNG bytes.
// Text is drawn with a fixed bitmap face, images as filled gray boxes, and
// vector graphics as outlines; the unit-scale render is then resampled to
// the requested scale.
func (d *Document) Rasterize(page int, scale float64) ([]byte, error) {
	p, err := d.page(page)
	if err != nil {
		return nil, err
	}
	if scale <= 0 {
		scale = 1.0
	}

	base := image.NewRGBA(image.Rect(0, 0, int(math.Ceil(p.Width)), int(math.Ceil(p.Height))))
	xdraw.Draw(base, base.Bounds(), image.White, image.Point{}, xdraw.Src)

	gray := image.NewUniform(color.RGBA{R: 0xBD, G: 0xBD, B: 0xBD, A: 0xFF})
	for _, img := range p.images {
		xdraw.Draw(base, imageRect(img.BBox), gray, image.Point{}, xdraw.Src)
	}

	outline := color.RGBA{R: 0x90, G: 0x90, B: 0x90, A: 0xFF}
	for _, v := range p.vectors {
		drawOutline(base, imageRect(v), outline)
	}

	drawer := font.Drawer{
		Dst:  base,
		Src:  image.Black,
		Face: basicfont.Face7x13,
	}
	for _, block := range p.blocks {
		for _, line := range block.Lines {
			drawer.Dot = fixed.P(int(line.BBox.X), int(line.BBox.Bottom()))
			drawer.DrawString(lineText(line))
		}
	}

	out := base
	if scale != 1.0 {
		scaled := image.NewRGBA(image.Rect(0, 0,
			int(math.Ceil(p.Width*scale)), int(math.Ceil(p.Height*scale))))
		xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), base, base.Bounds(), xdraw.Src, nil)
		out = scaled
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// ToBytes serializes the document to PDF bytes. Serialization writes the
// current content from scratch, so redacted content is physically absent
// regardless of the compact flag.
func (d *Document) ToBytes(compact bool) ([]byte, error) {
	if d.closed {
		return nil, engine.ErrClosed
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: 612, Ht: 792},
	})
	pdf.SetAutoPageBreak(false, 0)

	// Outline entries per 0-based page, emitted while that page is current.
	bookmarks := make(map[int][]nativeTOCEntry)
	for _, e := range d.toc {
		bookmarks[e.page-1] = append(bookmarks[e.page-1], e)
	}

	for i, p := range d.pages {
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: p.Width, Ht: p.Height})

		for _, e := range bookmarks[i] {
			pdf.Bookmark(e.title, e.level, 0)
		}

		for _, block := range p.blocks {
			for _, line := range block.Lines {
				x := line.BBox.X
				for _, span := range line.Spans {
					style := ""
					if span.Bold() {
						style += "B"
					}
					if span.Italic() {
						style += "I"
					}
					size := span.FontSize
					if size <= 0 {
						size = 10
					}
					pdf.SetFont("Helvetica", style, size)
					pdf.Text(x, line.BBox.Bottom(), span.Text)
					x += pdf.GetStringWidth(span.Text)
				}
			}
		}

		pdf.SetDrawColor(0x75, 0x75, 0x75)
		pdf.SetFillColor(0xBD, 0xBD, 0xBD)
		for _, img := range p.images {
			pdf.Rect(img.BBox.X, img.BBox.Y, img.BBox.Width, img.BBox.Height, "F")
		}
		for _, v := range p.vectors {
			pdf.Rect(v.X, v.Y, v.Width, v.Height, "D")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// Save persists the document to path as PDF.
func (d *Document) Save(path string, compact bool) error {
	data, err := d.ToBytes(compact)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// imageRect converts a page-space box to integer pixel bounds.
func imageRect(box model.BBox) image.Rectangle {
	return image.Rect(
		int(math.Floor(box.Left())), int(math.Floor(box.Top())),
		int(math.Ceil(box.Right())), int(math.Ceil(box.Bottom())),
	)
}

// drawOutline draws a 1px rectangle outline.
func drawOutline(dst *image.RGBA, r image.Rectangle, c color.Color) {
	for x := r.Min.X; x < r.Max.X; x++ {
		dst.Set(x, r.Min.Y, c)
		dst.Set(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		dst.Set(r.Min.X, y, c)
		dst.Set(r.Max.X-1, y, c)
	}
}
