// Package diag defines the diagnostic model shared by the host frontend and
// the lint driver.
//
// # Purpose
//
//   - Provide deterministic data structures for findings produced by the
//     lexer, parser, and semantic passes of the embedded frontend.
//   - Carry lint-pass diagnostics translated back from the stable API,
//     including notes, help messages, and suggestions with applicability.
//   - Offer a light-weight collection (Bag) that lets producers emit
//     diagnostics without coupling to storage or formatting layers.
//
// # Scope
//
// Package diag performs no formatting or IO. Rendering lives in
// internal/diagfmt; the translation from the stable lint API into this model
// lives in internal/driver.
//
// The Bag deliberately performs no deduplication: emitting the same
// diagnostic twice yields two entries. Sorting is stable and deterministic so
// output order does not depend on map iteration.
package diag
