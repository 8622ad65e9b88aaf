package compiler

import "fmt"

// SyntaxError is a single compile-time diagnostic: a token's position plus
// a human-readable message. Compile aggregates every SyntaxError hit during
// one pass (outside of panic mode) with hashicorp/go-multierror.
type SyntaxError struct {
	Line    int32
	Column  int
	Lexeme  string
	Message string
}

func (e SyntaxError) Error() string {
	return fmt.Sprintf("💥 SyntaxError: %s (near %q, line %d)", e.Message, e.Lexeme, e.Line)
}

// DeveloperError marks an internal invariant violation - a condition that
// is not the programmer's fault and should never occur if the compiler
// itself is sound. A constant-pool overflow is not one: value.ConstantPool.Add
// reports it as a plain error and compilation continues.
type DeveloperError struct {
	Message string
}

func (e DeveloperError) Error() string {
	return fmt.Sprintf("🤖 DeveloperError: %s", e.Message)
}
