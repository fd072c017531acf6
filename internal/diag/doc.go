// Package diag defines the diagnostic model shared by the lexer, parser and
// driver.
//
// Diagnostic is the central record: a Severity, a numeric Code with a stable
// string form (LEX/SYN/IO/FMT prefixes), a short message and the primary
// source.Span. Producers emit through a Reporter so that storage stays
// decoupled; BagReporter collects into a Bag which supports sorting and
// deduplication. Error carries a set of diagnostics through plain error
// returns, which is how a failed parse reaches the CLI.
package diag
