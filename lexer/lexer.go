// lexer.go implements the Scanner external collaborator described by the
// core specification: it turns source text into a stream of token.Token
// values, pulled one at a time via Next(), which is exactly the contract
// the compiler needs (scanner.next()).
package lexer

import (
	"ember/token"
	"fmt"
)

func isLetter(char rune) bool {
	return rune('a') <= char && char <= rune('z') || rune('A') <= char && char <= rune('Z') || char == rune('_')
}

func isNumber(char rune) bool {
	return rune('0') <= char && char <= rune('9')
}

// Lexer scans Ember source text into tokens. It maintains the current
// scanning position, the current character, and line/column bookkeeping.
type Lexer struct {
	characters []rune
	totalChars int

	position     int
	readPosition int
	currentChar  rune

	lineCount int32
	column    int
}

// New constructs a Lexer over the given source text.
func New(input string) *Lexer {
	lexer := &Lexer{characters: []rune(input), lineCount: 1}
	lexer.totalChars = len(lexer.characters)
	lexer.readChar()
	return lexer
}

// CreateLexer is an alias for New.
func CreateLexer(input string) *Lexer {
	return New(input)
}

func (lexer *Lexer) advance() {
	lexer.position = lexer.readPosition
	lexer.readPosition++
	lexer.column = lexer.readPosition
}

func (lexer *Lexer) isFinished() bool {
	return lexer.readPosition >= lexer.totalChars
}

func (lexer *Lexer) readChar() {
	if lexer.isFinished() {
		lexer.currentChar = rune(0)
	} else {
		lexer.currentChar = lexer.characters[lexer.readPosition]
	}
	lexer.advance()
}

func (lexer *Lexer) peek() rune {
	if lexer.isFinished() {
		return rune(0)
	}
	return lexer.characters[lexer.readPosition]
}

func (lexer *Lexer) isMatch(expected rune) bool {
	if lexer.isFinished() {
		return false
	}
	if lexer.characters[lexer.readPosition] == expected {
		lexer.readPosition++
		return true
	}
	return false
}

// isWhiteSpace reports whether char is whitespace, bumping the line counter
// whenever the current character is a newline.
func (lexer *Lexer) isWhiteSpace(char rune) bool {
	if char == rune(' ') || char == rune('\r') || char == rune('\t') {
		return true
	}
	if lexer.currentChar == rune('\n') {
		lexer.lineCount++
		lexer.column = 0
		return true
	}
	return false
}

func (lexer *Lexer) skipWhiteSpace() {
	for lexer.isWhiteSpace(lexer.currentChar) {
		lexer.readChar()
	}
}

// handleComment discards everything up to (not including) the next newline,
// for a "//" line comment.
func (lexer *Lexer) handleComment() {
	for lexer.currentChar != rune('\n') && lexer.currentChar != rune(0) {
		lexer.readChar()
	}
}

// handleNumber scans an integer, or a float with exactly one decimal point
// followed by at least one digit (the spec requires a digit after '.').
func (lexer *Lexer) handleNumber() token.Token {
	initPos := lexer.position

	for isNumber(lexer.currentChar) {
		lexer.readChar()
	}

	if lexer.currentChar == '.' && isNumber(lexer.peek()) {
		lexer.readChar() // consume '.'
		for isNumber(lexer.currentChar) {
			lexer.readChar()
		}
	}

	number := string(lexer.characters[initPos:lexer.position])
	return token.CreateLiteralToken(token.NUMBER, parseFloat(number), number, lexer.lineCount, lexer.column)
}

// parseFloat avoids pulling strconv in just for this one call site; every
// NUMBER literal is stored as float64 regardless of whether the source had
// a fractional part, matching Value's single numeric tag.
func parseFloat(s string) float64 {
	var whole, frac float64
	var fracDiv float64 = 1
	seenDot := false
	for _, r := range s {
		if r == '.' {
			seenDot = true
			continue
		}
		d := float64(r - '0')
		if !seenDot {
			whole = whole*10 + d
		} else {
			fracDiv *= 10
			frac = frac*10 + d
		}
	}
	return whole + frac/fracDiv
}

func (lexer *Lexer) handleIdentifier() token.Token {
	initPos := lexer.position
	for isLetter(lexer.currentChar) || isNumber(lexer.currentChar) {
		lexer.readChar()
	}

	identifier := string(lexer.characters[initPos:lexer.position])
	if keywordType, exists := token.Keywords[identifier]; exists {
		return token.CreateLiteralToken(keywordType, nil, identifier, lexer.lineCount, lexer.column)
	}
	return token.CreateLiteralToken(token.IDENTIFIER, identifier, identifier, lexer.lineCount, lexer.column)
}

// handleStringLiteral scans a double-quoted string literal. Ember strings
// support no escape sequences, per the scanner contract.
func (lexer *Lexer) handleStringLiteral() token.Token {
	initPos := lexer.position
	isClosed := false
	lexer.readChar() // consume the opening '"'

	for {
		result := lexer.currentChar
		if result == 0 || result == '\n' {
			break
		}
		if result == '"' {
			isClosed = true
			lexer.readChar()
			break
		}
		lexer.readChar()
	}

	if !isClosed {
		return token.CreateErrorToken(
			fmt.Sprintf("unclosed string literal starting at line %d", lexer.lineCount),
			lexer.lineCount, lexer.column)
	}

	// initPos+1 and position-1 strip the surrounding quotes.
	literal := string(lexer.characters[initPos+1 : lexer.position-1])
	return token.CreateLiteralToken(token.STRING, literal, literal, lexer.lineCount, lexer.column)
}

// Next scans and returns the next token.Token from the source. Once the
// input is exhausted it returns EOF tokens indefinitely, per the scanner
// contract.
func (lexer *Lexer) Next() token.Token {
	for {
		lexer.skipWhiteSpace()

		switch lexer.currentChar {
		case rune(0):
			return token.CreateToken(token.EOF, lexer.lineCount, lexer.column)
		case rune('('):
			tok := token.CreateToken(token.LPA, lexer.lineCount, lexer.column)
			lexer.readChar()
			return tok
		case rune(')'):
			tok := token.CreateToken(token.RPA, lexer.lineCount, lexer.column)
			lexer.readChar()
			return tok
		case rune('{'):
			tok := token.CreateToken(token.LCUR, lexer.lineCount, lexer.column)
			lexer.readChar()
			return tok
		case rune('}'):
			tok := token.CreateToken(token.RCUR, lexer.lineCount, lexer.column)
			lexer.readChar()
			return tok
		case rune(';'):
			tok := token.CreateToken(token.SEMICOLON, lexer.lineCount, lexer.column)
			lexer.readChar()
			return tok
		case rune(','):
			tok := token.CreateToken(token.COMMA, lexer.lineCount, lexer.column)
			lexer.readChar()
			return tok
		case rune('.'):
			tok := token.CreateToken(token.DOT, lexer.lineCount, lexer.column)
			lexer.readChar()
			return tok
		case rune('*'):
			tok := token.CreateToken(token.MULT, lexer.lineCount, lexer.column)
			lexer.readChar()
			return tok
		case rune('+'):
			tok := token.CreateToken(token.ADD, lexer.lineCount, lexer.column)
			lexer.readChar()
			return tok
		case rune('-'):
			tok := token.CreateToken(token.SUB, lexer.lineCount, lexer.column)
			lexer.readChar()
			return tok
		case rune('/'):
			if lexer.isMatch('/') {
				lexer.readChar()
				lexer.handleComment()
				continue
			}
			tok := token.CreateToken(token.DIV, lexer.lineCount, lexer.column)
			lexer.readChar()
			return tok
		case rune('='):
			tokType := token.TokenType(token.ASSIGN)
			if lexer.isMatch('=') {
				tokType = token.EQUAL_EQUAL
			}
			tok := token.CreateToken(tokType, lexer.lineCount, lexer.column)
			lexer.readChar()
			return tok
		case rune('!'):
			tokType := token.TokenType(token.BANG)
			if lexer.isMatch('=') {
				tokType = token.NOT_EQUAL
			}
			tok := token.CreateToken(tokType, lexer.lineCount, lexer.column)
			lexer.readChar()
			return tok
		case rune('<'):
			tokType := token.TokenType(token.LESS)
			if lexer.isMatch('=') {
				tokType = token.LESS_EQUAL
			}
			tok := token.CreateToken(tokType, lexer.lineCount, lexer.column)
			lexer.readChar()
			return tok
		case rune('>'):
			tokType := token.TokenType(token.LARGER)
			if lexer.isMatch('=') {
				tokType = token.LARGER_EQUAL
			}
			tok := token.CreateToken(tokType, lexer.lineCount, lexer.column)
			lexer.readChar()
			return tok
		case rune('"'):
			return lexer.handleStringLiteral()
		default:
			if isLetter(lexer.currentChar) {
				return lexer.handleIdentifier()
			}
			if isNumber(lexer.currentChar) {
				return lexer.handleNumber()
			}
			illegal := lexer.currentChar
			line, col := lexer.lineCount, lexer.column
			lexer.readChar()
			return token.CreateErrorToken(fmt.Sprintf("unexpected character: '%c'", illegal), line, col)
		}
	}
}

// Scan runs the lexer to completion and returns every token it produced,
// including the trailing EOF. It stops at the first ERROR token, returning
// the tokens scanned so far (that ERROR token last) and a non-nil error. It
// is a convenience wrapper over Next for callers that want the whole token
// stream up front rather than pulling one token at a time.
func (lexer *Lexer) Scan() ([]token.Token, error) {
	var tokens []token.Token
	for {
		tok := lexer.Next()
		tokens = append(tokens, tok)
		if tok.TokenType == token.ERROR {
			return tokens, fmt.Errorf("%s, line: %d", tok.Lexeme, tok.Line)
		}
		if tok.TokenType == token.EOF {
			return tokens, nil
		}
	}
}
