// Package lang interprets the arrow configuration language, a small
// line-oriented format that assigns evaluated values to upper-case names.
//
// # Grammar
//
// Informal EBNF:
//
//	Source      → Line*
//	Line        → Blank | Comment | Assignment
//	Comment     → '#' <any text>
//	Assignment  → Name [ ' ' | '\t' ]* '<-' Value
//	Name        → [A-Z]+
//	Value       → Integer | Name | List | Expression
//	Integer     → '-'? [0-9]+
//	List        → '(list' ( Value ( ' ' | '\t' )+ )* ')'
//	Expression  → '|' ( Operand '+' Operand | Concat | Abs ) '|'
//	Concat      → 'concat(' [ Piece ( ',' Piece )* ] ')'
//	Abs         → 'abs(' Operand ')'
//
// Lines are trimmed before they are interpreted. A Name used as a value
// resolves to whatever was most recently assigned to it; there are no
// forward references.
//
// # Example
//
//	# integers, lists and expressions
//	A <- 5
//	B <- |A + 3|
//	C <- (list A B (list 1 -2))
//	D <- |concat(A, B)|
//
// evaluates to the ordered mapping
//
//	A = 5
//	B = 8
//	C = [5, 8, [1, -2]]
//	D = "58"
//
// The resulting [Mapping] can be written as TOML, YAML or JSON with [Encode],
// re-rendered in arrow syntax with [Mapping.Format], or inspected with
// [Query], which evaluates an expr-lang expression against it.
//
// # Errors
//
// Every failure is an [*Error] derived from one of the package sentinels.
// Use [KindOf] to distinguish syntax errors from type errors.
package lang
