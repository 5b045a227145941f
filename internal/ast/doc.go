// Package ast defines the Abstract Syntax Tree node types produced by the
// parser.
//
// Nodes are immutable once built: type information is never stored on a
// node. The type checker records inferred/annotated types in a side table
// keyed by node identity instead of mutating nodes in place, so the same
// AST can be walked by multiple independent passes without one pass's
// bookkeeping leaking into another's.
//
// Node categories:
//   - Expressions: values that can be evaluated (literals, identifiers,
//     binary/unary ops, calls, lambdas, pipelines, match, object/array
//     literals, member/index access)
//   - Statements: actions to be executed (declarations, assignment,
//     control flow, import)
//   - Declarations: top-level constructs (functions, classes, traits)
package ast
