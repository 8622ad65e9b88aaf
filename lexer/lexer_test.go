package lexer

import (
	"ember/token"
	"testing"
)

func scanAll(t *testing.T, source string) []token.Token {
	t.Helper()
	lex := New(source)
	var tokens []token.Token
	for {
		tok := lex.Next()
		tokens = append(tokens, tok)
		if tok.TokenType == token.EOF || tok.TokenType == token.ERROR {
			break
		}
	}
	return tokens
}

func TestOperators(t *testing.T) {
	tokens := scanAll(t, "==/=*+>-<!=<=>=!")
	want := []token.TokenType{
		token.EQUAL_EQUAL, token.DIV, token.ASSIGN, token.MULT, token.ADD,
		token.LARGER, token.SUB, token.LESS, token.NOT_EQUAL, token.LESS_EQUAL,
		token.LARGER_EQUAL, token.BANG, token.EOF,
	}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(tokens), len(want), tokens)
	}
	for i, tt := range tokens {
		if tt.TokenType != want[i] {
			t.Errorf("token %d = %v, want %v", i, tt.TokenType, want[i])
		}
	}
}

func TestPunctuation(t *testing.T) {
	tokens := scanAll(t, "(){};,.")
	want := []token.TokenType{
		token.LPA, token.RPA, token.LCUR, token.RCUR, token.SEMICOLON, token.COMMA, token.DOT, token.EOF,
	}
	for i, tt := range tokens {
		if tt.TokenType != want[i] {
			t.Errorf("token %d = %v, want %v", i, tt.TokenType, want[i])
		}
	}
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	tokens := scanAll(t, "print foo true false nil")
	want := []token.TokenType{token.PRINT, token.IDENTIFIER, token.TRUE, token.FALSE, token.NIL, token.EOF}
	for i, tt := range tokens {
		if tt.TokenType != want[i] {
			t.Errorf("token %d = %v, want %v", i, tt.TokenType, want[i])
		}
	}
	if tokens[1].Lexeme != "foo" {
		t.Errorf("identifier lexeme = %q, want foo", tokens[1].Lexeme)
	}
}

func TestNumberLiterals(t *testing.T) {
	tests := []struct {
		source string
		want   float64
	}{
		{"123", 123},
		{"1.5", 1.5},
		{"0.25", 0.25},
	}
	for _, tt := range tests {
		tokens := scanAll(t, tt.source)
		if tokens[0].TokenType != token.NUMBER {
			t.Fatalf("source %q: token type = %v, want NUMBER", tt.source, tokens[0].TokenType)
		}
		if tokens[0].Literal.(float64) != tt.want {
			t.Errorf("source %q: literal = %v, want %v", tt.source, tokens[0].Literal, tt.want)
		}
	}
}

// A trailing '.' with no following digit is not part of the number: "1."
// scans as NUMBER("1") followed by a DOT token.
func TestNumberRequiresDigitAfterDot(t *testing.T) {
	tokens := scanAll(t, "1.")
	if tokens[0].TokenType != token.NUMBER || tokens[0].Literal.(float64) != 1 {
		t.Fatalf("first token = %v, want NUMBER(1)", tokens[0])
	}
	if tokens[1].TokenType != token.DOT {
		t.Fatalf("second token = %v, want DOT", tokens[1])
	}
}

func TestStringLiteral(t *testing.T) {
	tokens := scanAll(t, `"foobar"`)
	if tokens[0].TokenType != token.STRING {
		t.Fatalf("token type = %v, want STRING", tokens[0].TokenType)
	}
	if tokens[0].Literal.(string) != "foobar" {
		t.Errorf("literal = %q, want foobar", tokens[0].Literal)
	}
}

func TestUnclosedStringProducesErrorToken(t *testing.T) {
	tokens := scanAll(t, `"unterminated`)
	last := tokens[len(tokens)-1]
	if last.TokenType != token.ERROR {
		t.Fatalf("token type = %v, want ERROR", last.TokenType)
	}
}

func TestUnexpectedCharacterProducesErrorToken(t *testing.T) {
	tokens := scanAll(t, "@")
	if tokens[0].TokenType != token.ERROR {
		t.Fatalf("token type = %v, want ERROR", tokens[0].TokenType)
	}
}

func TestCommentsAreSkipped(t *testing.T) {
	tokens := scanAll(t, "1 // this is a comment\n+ 2")
	want := []token.TokenType{token.NUMBER, token.ADD, token.NUMBER, token.EOF}
	for i, tt := range tokens {
		if tt.TokenType != want[i] {
			t.Errorf("token %d = %v, want %v", i, tt.TokenType, want[i])
		}
	}
}

func TestSingleSlashIsStillDivision(t *testing.T) {
	tokens := scanAll(t, "4 / 2")
	want := []token.TokenType{token.NUMBER, token.DIV, token.NUMBER, token.EOF}
	for i, tt := range tokens {
		if tt.TokenType != want[i] {
			t.Errorf("token %d = %v, want %v", i, tt.TokenType, want[i])
		}
	}
}

func TestEOFIsIdempotent(t *testing.T) {
	lex := New("")
	first := lex.Next()
	second := lex.Next()
	if first.TokenType != token.EOF || second.TokenType != token.EOF {
		t.Fatalf("expected repeated EOF, got %v then %v", first, second)
	}
}

func TestScanConvenienceWrapper(t *testing.T) {
	tokens, err := New("print(1);").Scan()
	if err != nil {
		t.Fatalf("Scan() returned error: %v", err)
	}
	if tokens[len(tokens)-1].TokenType != token.EOF {
		t.Fatalf("last token = %v, want EOF", tokens[len(tokens)-1])
	}
}
