// Package parser implements a recursive-descent, precedence-climbing parser
// over the Vela token vocabulary.
//
// The engine follows the teacher's prefix/infix function-map idiom
// (prefixFns/infixFns maps filled in New, a precedence table keyed on token
// type) but
// scoped to the much smaller grammar spec §4.2 defines, and fails fast: the
// first malformed token aborts parsing with a single *errors.CompilerError,
// never partial output and never error-recovery synchronization.
package parser
