// Package model provides the domain types shared by the fact-extraction
// pipeline.
//
// The input side mirrors what a document layout parser produces: a [Table]
// of [Cell] values with row/column offsets, merged-cell spans, and header
// flags, plus the surrounding [DocumentContext] text.
//
// The output side is the [FactRecord]: one normalized (entity, metric,
// period, value, unit) observation per data cell, with [Provenance] locating
// it in the source document. Semantic fields are nullable: a nil field means
// the pipeline could not determine it, which is always preferred over a
// fabricated value.
//
// Classification enums live here too: [HeaderClass] is the semantic category
// of a header cell's text, and [Orientation] is the structural layout of a
// whole table.
package model
