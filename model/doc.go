// Package model provides the intermediate representation (IR) for analyzed
// document content.
//
// This package defines the user-facing data structures produced by a
// document analysis pass: normalized content blocks, semantic categories,
// and the raw fragment types that document engines report.
//
// # Blocks and Categories
//
// A [Block] is one visually coherent unit of page content — a merged text
// run or an image placeholder — with geometry, dominant font attributes,
// emphasis flags, and a stable identity hash. A [Category] is a named,
// colored group of blocks sharing a semantic type ([CategoryType]).
//
// Blocks belong to exactly one category after analysis; the CategoryID field
// is the only mutable part of a block and is set exactly once.
//
// # Coordinates
//
// All geometry uses screen coordinates: the origin is the top-left corner of
// the page and Y increases downward. Page indices are 0-based everywhere in
// this module; engines with 1-based native indexing convert at the boundary.
//
// # Geometry
//
// Geometric primitives support position and layout calculations:
//
//   - [BBox] - bounding box with intersection, union, and overlap calculations
//   - [Point] - 2D point with distance calculation
package model
