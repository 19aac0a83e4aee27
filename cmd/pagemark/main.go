// Command pagemark is a single-shot JSON worker: it reads one request from
// stdin, handles it, and writes one JSON response to stdout. Logs go to
// stderr. A supervising process keeps one worker per request in flight;
// write ordering across concurrent workers against the same file must be
// serialized by the supervisor.
//
// The worker runs against the in-memory reference engine with a built-in
// sample document registered under "demo.pdf". Production deployments embed
// the service package with an opener backed by a real document engine.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/bookforge/pagemark/engine/memdoc"
	"github.com/bookforge/pagemark/model"
	"github.com/bookforge/pagemark/service"
)

var (
	configPath  = flag.String("config", "", "Configuration file path (TOML)")
	showVersion = flag.Bool("version", false, "Print version information")
)

const version = "0.3.0"

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("pagemark %s\n", version)
		return
	}

	config, err := service.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	opener := memdoc.NewOpener()
	opener.Register("demo.pdf", sampleDocument())

	svc := service.New(opener, config)

	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read request:", err)
		os.Exit(1)
	}

	response := svc.Handle(input)
	fmt.Println(string(response))
}

// sampleDocument builds a small two-page document exercising every block
// kind: title, running header, body text, a footnote with its superscript
// reference, an image, and a page-number footer.
func sampleDocument() *memdoc.Document {
	doc := memdoc.New("demo.pdf")

	page1 := doc.AddPage(612, 792)
	page1.AddTextBlock(model.NewBBox(72, 100, 468, 36), model.Line{
		BBox:  model.NewBBox(72, 100, 468, 36),
		Spans: []model.Span{{Text: "A Field Guide to Paginated Documents", FontName: "Times-Bold", FontSize: 24}},
	})
	page1.AddTextBlock(model.NewBBox(72, 200, 468, 60),
		model.Line{
			BBox: model.NewBBox(72, 200, 468, 14),
			Spans: []model.Span{{
				Text: "Every page of a scanned book carries more structure than its words alone.",
				FontName: "Times-Roman", FontSize: 11,
			}},
		},
		model.Line{
			BBox: model.NewBBox(72, 216, 468, 14),
			Spans: []model.Span{{
				Text: "Headers repeat, footnotes sink to the bottom, and captions hug their figures.",
				FontName: "Times-Roman", FontSize: 11,
			}},
		},
	)
	page1.AddImage(model.NewBBox(200, 400, 212, 160))
	page1.AddTextBlock(model.NewBBox(72, 770, 468, 12), model.Line{
		BBox:  model.NewBBox(72, 770, 468, 12),
		Spans: []model.Span{{Text: "1", FontName: "Times-Roman", FontSize: 9}},
	})

	page2 := doc.AddPage(612, 792)
	page2.AddTextBlock(model.NewBBox(72, 20, 468, 12), model.Line{
		BBox:  model.NewBBox(72, 20, 468, 12),
		Spans: []model.Span{{Text: "A Field Guide", FontName: "Times-Italic", FontSize: 9}},
	})
	page2.AddTextBlock(model.NewBBox(72, 120, 468, 28),
		model.Line{
			BBox: model.NewBBox(72, 120, 468, 14),
			Spans: []model.Span{
				{Text: "The classifier leans on one anchor: the dominant body font size.", FontName: "Times-Roman", FontSize: 11},
				{Text: "1", FontName: "Times-Roman", FontSize: 7, Flags: model.FlagSuperscript},
			},
		},
	)
	page2.AddTextBlock(model.NewBBox(72, 700, 468, 12), model.Line{
		BBox:  model.NewBBox(72, 700, 468, 12),
		Spans: []model.Span{{Text: "1. Measured by character-weighted majority, not by first appearance.", FontName: "Times-Roman", FontSize: 8}},
	})

	return doc
}
