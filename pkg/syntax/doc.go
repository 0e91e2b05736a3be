// Package syntax is the structural analysis phase: it parses the decoded
// header and payload texts as JSON and aggregates every structural violation
// found instead of stopping at the first.
//
// This aggregate policy is deliberately different from the fail-fast
// semantic phase; the two contracts must not be unified.
package syntax
