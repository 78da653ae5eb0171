// Package logging provides the structured logging interface used by the
// prime counter. It wraps zerolog behind a small Logger interface so the
// orchestration layer can log worker lifecycle events without depending on a
// concrete backend; a standard library adapter is provided for tests and
// embedding.
package logging
