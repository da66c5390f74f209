// Package fieldlens infers a statistically annotated schema from data in any
// self-describing serialization format, without prior type definitions.
//
// The package provides:
//
//   - A recursive Schema tree annotated with per-node statistics (counts,
//     bounds, bounded distinct-value samples, string pattern flags, field
//     presence accounting).
//   - An inference driver that folds canonical decode events into a Schema,
//     one document at a time, with memory bounded by schema richness rather
//     than input volume.
//   - Coalesce, an associative and commutative merge of independently built
//     Schema trees, enabling parallel fan-out/fan-in analysis.
//   - A stable interchange form so a finished Schema can be persisted and
//     re-rendered without re-running inference.
//   - Pluggable per-node Aggregators for custom statistics.
//
// Design policy:
//   - Keep only public APIs in the root package; put the token plumbing under
//     internal/engine.
//   - Place format drivers under source/, render targets under target/, and
//     the CLI under cmd/fieldlens.
//   - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	schema := fieldlens.NewSchema()
//	err := fieldlens.Infer(schema, fieldlens.JSONBytes(data))
//	err = fieldlens.Infer(schema, fieldlens.JSONBytes(more)) // resumes
//
//	wire, err := json.Marshal(schema) // stable interchange form
package fieldlens
