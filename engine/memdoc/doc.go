// Package memdoc provides an in-memory reference implementation of
// engine.Document.
//
// Pages are populated with text blocks, image boxes, and vector graphics
// boxes through a small builder API ([Document.AddPage], [Page.AddTextBlock],
// [Page.AddImage], [Page.AddVector]). The implementation supports the full
// engine contract: fragment enumeration, proportional-position text search,
// real redaction (intersecting spans, images, and vectors are removed, not
// hidden), page deletion, outline access with native 1-based indexing, PNG
// rasterization, and persistence to PDF bytes.
//
// memdoc exists for tests and for the worker's demo mode; production
// deployments plug in an engine backed by a real renderer.
package memdoc
