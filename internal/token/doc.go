// Package token defines lexical token kinds and trivia for Tolk sources.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Contextual words (get, asm, builtin, redef, private, readonly, tolk)
//     are identifiers; the parser checks them by text.
//   - Comments never appear in the main token stream. They are leading
//     Trivia of the following token, EOF included.
package token
