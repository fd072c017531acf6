// Package ast holds the concrete syntax tree produced by the parser.
//
// The tree is untyped: every node carries a grammar type name, a named flag,
// byte span and row/column points, and an ordered list of children with
// optional field labels. Keyword and punctuation tokens stay in the tree as
// anonymous nodes so that sibling queries see the real token sequence.
// Comments are inserted after parsing as named "comment" children of the
// deepest node that strictly contains them.
package ast
