// Package harness provides a scenario-driven test harness for the
// decompose/recompose engines.
//
// A scenario is a YAML file describing an object tree and the expected
// decomposition outcome: how many records the sinks receive, the
// total-children hint on the rebuilt root, and optionally a pinned root
// id. The harness decomposes the tree into an in-memory transport,
// recomposes it back, and exposes both sides for assertions. Golden
// files pin the encoded root record byte-for-byte.
//
// Scenario trees use a fixed convention: every YAML mapping becomes an
// object, sequences become lists, scalars become primitives. Plain
// (non-object) mappings are exercised by unit tests instead.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
package harness
