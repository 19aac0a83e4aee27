// Package engine defines the boundary with an external document engine: the
// collaborator that opens paginated documents and provides per-page text
// fragments, image boxes, text search, redaction, page deletion, outline
// access, and rasterization.
//
// The analysis and redaction pipelines in this module depend only on the
// [Document] interface. The in-memory reference implementation lives in
// the memdoc subpackage and is used by tests and the command-line worker's
// demo mode.
package engine
