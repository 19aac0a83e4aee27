// Package classify assigns semantic structure to extracted content blocks.
//
// Classification runs in three stages:
//
//   - [RegionFor] maps a block's vertical position and text length to a
//     coarse page region (header, footer, lower, body).
//   - [ClassifyBlock] maps block attributes, region, and the document's
//     inferred body font size ([BaselineFontSize]) to a semantic category
//     type.
//   - [Categorize] groups classified blocks by type, synthesizes named and
//     colored categories with recomputed aggregates, and back-fills each
//     block's category id.
//
// Both classifiers are explicit ordered decision tables: rules are checked
// top to bottom and the first match wins, so priority between overlapping
// signals is auditable and testable rule by rule. The classifier is a
// single-document, single-pass, rule-based system with no learned state.
package classify
