// Package units recovers implicit measurement and currency units for
// extracted fact records.
//
// Financial tables frequently omit units from cells, leaving them in
// surrounding context: a page title ("Results in EUR million"), a section
// heading, or a table caption. The [Engine] fills the gap by querying an
// external [Inferrer] collaborator with a per-metric context bundle.
//
// The engine owns all policy around the collaborator:
//
//   - one call per distinct unit-less metric, cached in a [Cache] for the
//     rest of the document run
//   - concurrent requests for the same metric wait for the in-flight call
//   - at most one retry on failure, then the unit stays nil and record
//     confidence is downgraded
//   - explicit in-table units are never overridden
//   - in-flight calls are bounded and optionally rate limited
//
// [LLMClient] is the stock Inferrer: an OpenAI-compatible chat completion
// call that answers with a bare unit string or "unknown".
package units
