// Package compiler turns Ember source into a chunk.Chunk. Compile implements
// the single-pass Pratt compiler described by the scanner/compiler contract:
// it pulls tokens one at a time from a lexer.Lexer and emits bytecode
// directly, with no intermediate AST.
package compiler

import (
	"ember/chunk"
	"ember/lexer"
	"ember/token"
	"ember/value"

	"github.com/hashicorp/go-multierror"
)

// Precedence levels for the CORE grammar's rules, lowest to highest. A rule
// parses its right-hand operand at one level above its own so that equal
// precedence binds left-to-right.
const (
	PREC_NONE       = iota
	PREC_ASSIGNMENT // =
	PREC_OR         // or
	PREC_AND        // and
	PREC_EQUALITY   // == !=
	PREC_COMPARISON // < > <= >=
	PREC_TERM       // + -
	PREC_FACTOR     // * /
	PREC_UNARY      // ! -
	PREC_CALL       // . ()
	PREC_PRIMARY
)

type parseFunc func(*Compiler)

// parseRule binds a token type to its prefix and infix parsing behaviour and
// the precedence an infix occurrence of it binds at.
type parseRule struct {
	prefix     parseFunc
	infix      parseFunc
	precedence int
}

// Compiler is the CORE token-stream compiler. One Compiler compiles one
// source string to one chunk.Chunk.
type Compiler struct {
	lexer *lexer.Lexer
	chunk *chunk.Chunk

	previous token.Token
	current  token.Token

	hadError  bool
	panicMode bool
	errs      *multierror.Error

	rules map[token.TokenType]parseRule
}

// Compile compiles source into a chunk.Chunk. It returns the chunk and a nil
// error on success. On failure it returns every SyntaxError encountered
// (panic-mode recovery lets the compiler keep scanning for more errors
// instead of stopping at the first one), aggregated with
// hashicorp/go-multierror, and a nil chunk: the partial chunk is discarded.
func Compile(source string) (*chunk.Chunk, error) {
	c := &Compiler{
		lexer: lexer.New(source),
		chunk: &chunk.Chunk{},
	}
	c.rules = c.buildRules()

	c.advance()
	for !c.check(token.EOF) {
		c.declaration()
	}
	c.consume(token.EOF, "expected end of expression")
	c.emitOp(chunk.OP_RETURN)

	if c.hadError {
		return nil, c.errs.ErrorOrNil()
	}
	return c.chunk, nil
}

func (c *Compiler) buildRules() map[token.TokenType]parseRule {
	return map[token.TokenType]parseRule{
		token.LPA:          {prefix: (*Compiler).grouping},
		token.SUB:          {prefix: (*Compiler).unary, infix: (*Compiler).binary, precedence: PREC_TERM},
		token.ADD:          {infix: (*Compiler).binary, precedence: PREC_TERM},
		token.MULT:         {infix: (*Compiler).binary, precedence: PREC_FACTOR},
		token.DIV:          {infix: (*Compiler).binary, precedence: PREC_FACTOR},
		token.BANG:         {prefix: (*Compiler).unary},
		token.NOT_EQUAL:    {infix: (*Compiler).binary, precedence: PREC_EQUALITY},
		token.EQUAL_EQUAL:  {infix: (*Compiler).binary, precedence: PREC_EQUALITY},
		token.LESS:         {infix: (*Compiler).binary, precedence: PREC_COMPARISON},
		token.LESS_EQUAL:   {infix: (*Compiler).binary, precedence: PREC_COMPARISON},
		token.LARGER:       {infix: (*Compiler).binary, precedence: PREC_COMPARISON},
		token.LARGER_EQUAL: {infix: (*Compiler).binary, precedence: PREC_COMPARISON},
		token.NUMBER:       {prefix: (*Compiler).number},
		token.STRING:       {prefix: (*Compiler).string},
		token.TRUE:         {prefix: (*Compiler).literal},
		token.FALSE:        {prefix: (*Compiler).literal},
		token.NIL:          {prefix: (*Compiler).literal},
	}
}

func (c *Compiler) getRule(t token.TokenType) parseRule {
	return c.rules[t]
}

// declaration compiles a single statement. The CORE grammar has exactly one
// statement form: print(expr);
func (c *Compiler) declaration() {
	if c.panicMode {
		c.synchronize()
	}
	c.printStatement()
}

func (c *Compiler) printStatement() {
	c.consume(token.PRINT, "expected 'print' statement")
	line := c.previous.Line
	c.consume(token.LPA, "expected '(' after 'print'")
	c.expression()
	c.consume(token.RPA, "expected ')' after expression")
	c.consume(token.SEMICOLON, "expected ';' after statement")
	c.chunk.WriteOp(chunk.OP_PRINT, int(line))
}

func (c *Compiler) expression() {
	c.parsePrecedence(PREC_ASSIGNMENT)
}

func (c *Compiler) parsePrecedence(precedence int) {
	c.advance()
	rule := c.getRule(c.previous.TokenType)
	if rule.prefix == nil {
		c.errorAtPrevious("expected expression")
		return
	}
	rule.prefix(c)

	for precedence <= c.getRule(c.current.TokenType).precedence {
		c.advance()
		infix := c.getRule(c.previous.TokenType).infix
		infix(c)
	}
}

func (c *Compiler) grouping() {
	c.expression()
	c.consume(token.RPA, "expected ')' after expression")
}

func (c *Compiler) unary() {
	operator := c.previous
	c.parsePrecedence(PREC_UNARY)
	switch operator.TokenType {
	case token.SUB:
		c.chunk.WriteOp(chunk.OP_NEGATE, int(operator.Line))
	case token.BANG:
		c.chunk.WriteOp(chunk.OP_NOT, int(operator.Line))
	}
}

// binary compiles the right-hand operand, then emits the opcode(s) for
// operator. Four of the six comparison operators desugar onto the three
// opcodes EQUAL/GREATER/LESS the VM implements, followed by OP_NOT, rather
// than giving each one its own dedicated opcode.
func (c *Compiler) binary() {
	operator := c.previous
	rule := c.getRule(operator.TokenType)
	c.parsePrecedence(rule.precedence + 1)

	line := int(operator.Line)
	switch operator.TokenType {
	case token.ADD:
		c.chunk.WriteOp(chunk.OP_ADD, line)
	case token.SUB:
		c.chunk.WriteOp(chunk.OP_SUBTRACT, line)
	case token.MULT:
		c.chunk.WriteOp(chunk.OP_MULTIPLY, line)
	case token.DIV:
		c.chunk.WriteOp(chunk.OP_DIVIDE, line)
	case token.EQUAL_EQUAL:
		c.chunk.WriteOp(chunk.OP_EQUAL, line)
	case token.NOT_EQUAL:
		c.chunk.WriteOp(chunk.OP_EQUAL, line)
		c.chunk.WriteOp(chunk.OP_NOT, line)
	case token.LARGER:
		c.chunk.WriteOp(chunk.OP_GREATER, line)
	case token.LARGER_EQUAL:
		c.chunk.WriteOp(chunk.OP_LESS, line)
		c.chunk.WriteOp(chunk.OP_NOT, line)
	case token.LESS:
		c.chunk.WriteOp(chunk.OP_LESS, line)
	case token.LESS_EQUAL:
		c.chunk.WriteOp(chunk.OP_GREATER, line)
		c.chunk.WriteOp(chunk.OP_NOT, line)
	}
}

func (c *Compiler) number() {
	c.emitConstant(value.Number(c.previous.Literal.(float64)))
}

// string interns the just-consumed (previous) token's literal as a
// constant-pool entry. A
// full pool is not a syntax error: Intern has already logged it and handed
// back index 0, so compilation continues and still produces a usable chunk.
func (c *Compiler) string() {
	idx, _ := c.chunk.Constants.Intern(c.previous.Literal.(string))
	c.chunk.WriteConstant(idx, int(c.previous.Line))
}

func (c *Compiler) literal() {
	line := int(c.previous.Line)
	switch c.previous.TokenType {
	case token.TRUE:
		c.chunk.WriteOp(chunk.OP_TRUE, line)
	case token.FALSE:
		c.chunk.WriteOp(chunk.OP_FALSE, line)
	case token.NIL:
		c.chunk.WriteOp(chunk.OP_NIL, line)
	}
}

// emitConstant adds v to the constant pool and writes the CONSTANT
// instruction for it - see string's comment on why a full pool doesn't
// fail the compile.
func (c *Compiler) emitConstant(v value.Value) {
	idx, _ := c.chunk.AddConstant(v)
	c.chunk.WriteConstant(idx, int(c.previous.Line))
}

func (c *Compiler) emitOp(op chunk.OpCode) {
	c.chunk.WriteOp(op, int(c.previous.Line))
}

// advance pulls the next non-error token from the lexer into current,
// shifting the old current into previous. Error tokens from the lexer are
// reported immediately and skipped, so the parser never has to handle them.
func (c *Compiler) advance() {
	c.previous = c.current
	for {
		c.current = c.lexer.Next()
		if c.current.TokenType != token.ERROR {
			break
		}
		c.errorAtCurrent(c.current.Lexeme)
	}
}

func (c *Compiler) check(t token.TokenType) bool {
	return c.current.TokenType == t
}

func (c *Compiler) consume(t token.TokenType, message string) {
	if c.check(t) {
		c.advance()
		return
	}
	c.errorAtCurrent(message)
}

// synchronize discards tokens until it reaches a plausible statement
// boundary, so one syntax error does not cascade into a wall of spurious
// ones.
func (c *Compiler) synchronize() {
	c.panicMode = false
	for c.current.TokenType != token.EOF {
		if c.previous.TokenType == token.SEMICOLON {
			return
		}
		switch c.current.TokenType {
		case token.PRINT:
			return
		}
		c.advance()
	}
}

func (c *Compiler) errorAtCurrent(message string) {
	c.errorAt(c.current, message)
}

func (c *Compiler) errorAtPrevious(message string) {
	c.errorAt(c.previous, message)
}

func (c *Compiler) errorAt(tok token.Token, message string) {
	if c.panicMode {
		return
	}
	c.panicMode = true
	c.hadError = true
	c.errs = multierror.Append(c.errs, SyntaxError{
		Line:    tok.Line,
		Column:  tok.Column,
		Lexeme:  tok.Lexeme,
		Message: message,
	})
}
