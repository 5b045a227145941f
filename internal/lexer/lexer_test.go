package lexer

import (
	"testing"

	"github.com/vela-lang/vela/pkg/token"
)

func tokenTypes(t *testing.T, toks []token.Token) []token.Type {
	t.Helper()
	types := make([]token.Type, len(toks))
	for i, tok := range toks {
		types[i] = tok.Type
	}
	return types
}

func TestTokenizeNumbers(t *testing.T) {
	toks, err := New("42 3.14 0 7.5").Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantTypes := []token.Type{token.INT, token.FLOAT, token.INT, token.FLOAT, token.EOF}
	gotTypes := tokenTypes(t, toks)
	if len(gotTypes) != len(wantTypes) {
		t.Fatalf("got %d tokens, want %d: %v", len(gotTypes), len(wantTypes), toks)
	}
	for i, want := range wantTypes {
		if gotTypes[i] != want {
			t.Errorf("token %d: got %s, want %s", i, gotTypes[i], want)
		}
	}
	if toks[1].Literal != "3.14" {
		t.Errorf("float literal = %q, want %q", toks[1].Literal, "3.14")
	}
}

func TestTokenizeIdentifiersAndKeywords(t *testing.T) {
	toks, err := New("func foo return x").Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []token.Type{token.FUNC, token.IDENT, token.RETURN, token.IDENT, token.EOF}
	got := tokenTypes(t, toks)
	for i, w := range want {
		if got[i] != w {
			t.Errorf("token %d: got %s, want %s", i, got[i], w)
		}
	}
}

func TestTokenizeTypeKeywords(t *testing.T) {
	toks, err := New("int float str bool auto void").Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []token.Type{
		token.TYPE_INT, token.TYPE_FLOAT, token.TYPE_STR,
		token.TYPE_BOOL, token.TYPE_AUTO, token.TYPE_VOID, token.EOF,
	}
	got := tokenTypes(t, toks)
	for i, w := range want {
		if got[i] != w {
			t.Errorf("token %d: got %s, want %s", i, got[i], w)
		}
		if !got[i].IsTypeKeyword() && w != token.EOF {
			t.Errorf("token %d: %s should report IsTypeKeyword", i, got[i])
		}
	}
}

func TestTokenizeStringEscapes(t *testing.T) {
	toks, err := New(`"hello\nworld" 'it\'s'`).Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Literal != "hello\nworld" {
		t.Errorf("got %q, want %q", toks[0].Literal, "hello\nworld")
	}
	if toks[1].Literal != "it's" {
		t.Errorf("got %q, want %q", toks[1].Literal, "it's")
	}
}

func TestTokenizeOperators(t *testing.T) {
	src := "== != <= >= += -= -> => |> ** + - * / % = < > |"
	toks, err := New(src).Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []token.Type{
		token.EQ, token.NEQ, token.LE, token.GE, token.PLUS_ASSIGN, token.MINUS_ASSIGN,
		token.ARROW, token.FATARROW, token.PIPE, token.POW,
		token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT,
		token.ASSIGN, token.LT, token.GT, token.BAR, token.EOF,
	}
	got := tokenTypes(t, toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), toks)
	}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("token %d: got %s, want %s", i, got[i], w)
		}
	}
}

func TestTokenizeDelimiters(t *testing.T) {
	toks, err := New("( ) { } [ ] , : .").Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []token.Type{
		token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE,
		token.LBRACKET, token.RBRACKET, token.COMMA, token.COLON, token.DOT, token.EOF,
	}
	got := tokenTypes(t, toks)
	for i, w := range want {
		if got[i] != w {
			t.Errorf("token %d: got %s, want %s", i, got[i], w)
		}
	}
}

func TestTokenizePreservesNewlines(t *testing.T) {
	toks, err := New("x\ny").Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []token.Type{token.IDENT, token.NEWLINE, token.IDENT, token.EOF}
	got := tokenTypes(t, toks)
	for i, w := range want {
		if got[i] != w {
			t.Errorf("token %d: got %s, want %s", i, got[i], w)
		}
	}
	if toks[0].Pos.Line != 1 || toks[2].Pos.Line != 2 {
		t.Errorf("line tracking wrong: %d, %d", toks[0].Pos.Line, toks[2].Pos.Line)
	}
}

func TestTokenizeSkipsComments(t *testing.T) {
	toks, err := New("x # this is a comment\ny").Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []token.Type{token.IDENT, token.NEWLINE, token.IDENT, token.EOF}
	got := tokenTypes(t, toks)
	for i, w := range want {
		if got[i] != w {
			t.Errorf("token %d: got %s, want %s", i, got[i], w)
		}
	}
}

func TestTokenizeUnterminatedStringFails(t *testing.T) {
	toks, err := New(`"unterminated`).Tokenize()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if toks != nil {
		t.Errorf("expected nil token vector alongside error, got %v", toks)
	}
}

func TestTokenizeIntegerOverflowFails(t *testing.T) {
	toks, err := New("99999999999999999999").Tokenize()
	if err == nil {
		t.Fatalf("expected error, got tokens: %v", toks)
	}
	if toks != nil {
		t.Errorf("expected nil token vector alongside error, got %v", toks)
	}
}

func TestTokenizeUnrecognizedCharacterFails(t *testing.T) {
	toks, err := New("x = $").Tokenize()
	if err == nil {
		t.Fatalf("expected error, got tokens: %v", toks)
	}
	if toks != nil {
		t.Errorf("expected nil token vector alongside error, got %v", toks)
	}
}

func TestTokenizeNeverReturnsPartialOnError(t *testing.T) {
	toks, err := New("func main() -> void { @ }").Tokenize()
	if err == nil {
		t.Fatal("expected error")
	}
	if toks != nil {
		t.Errorf("expected nil tokens on error, got %d tokens", len(toks))
	}
}
