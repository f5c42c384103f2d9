// Package diag defines the diagnostic model shared by the lexer driver and the CLI.
//
// Diagnostic is the central record: Severity, Code, Message, the Primary
// span and optional Notes. Producers emit through a Reporter; BagReporter
// aggregates into a Bag, which bounds the number of stored items and sorts
// them deterministically.
//
// Package diag performs no formatting or IO. Rendering lives in
// internal/diagfmt.
package diag
