// File: lexer.go
// Title: Pipeline Lexical Analyzer
// Description: Tokenizes pipeline expressions into identifiers, quoted
//              strings, integers, '=' and '|' with line/column tracking.
//              String escapes are decoded while scanning.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial lexer implementation
// - 2026-10-19 v0.2.0: Pipeline token set, escape decoding, signed integers

package parser

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/msto63/cstring/foundation/utils/cstring"
)

// TokenType represents the type of a lexical token
type TokenType int

const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenIllegal

	// Identifiers and literals
	TokenIdentifier // trim, max_tokens, both
	TokenString     // "text" or 'text'
	TokenNumber     // 42, -1

	// Operators and delimiters
	TokenEquals // =
	TokenPipe   // |
)

// Token represents a lexical token with position information
type Token struct {
	Type     TokenType // Token type
	Value    string    // Token text, decoded for strings
	Position int       // Byte position in input
	Line     int       // Line number (1-based)
	Column   int       // Column number (1-based)
	Err      string    // Reason for illegal tokens
}

// String returns a string representation of the token
func (t Token) String() string {
	switch t.Type {
	case TokenEOF:
		return "EOF"
	case TokenIllegal:
		return fmt.Sprintf("ILLEGAL(%s)", t.Value)
	default:
		return fmt.Sprintf("%s(%s)", t.Type.String(), t.Value)
	}
}

// String returns a string representation of the token type
func (tt TokenType) String() string {
	switch tt {
	case TokenEOF:
		return "EOF"
	case TokenIllegal:
		return "ILLEGAL"
	case TokenIdentifier:
		return "IDENTIFIER"
	case TokenString:
		return "STRING"
	case TokenNumber:
		return "NUMBER"
	case TokenEquals:
		return "EQUALS"
	case TokenPipe:
		return "PIPE"
	default:
		return "UNKNOWN"
	}
}

// Lexer performs lexical analysis of pipeline input
type Lexer struct {
	input    string // Input string
	position int    // Current position in input (points to current char)
	readPos  int    // Current reading position (after current char)
	ch       byte   // Current char under examination
	line     int    // Current line number (1-based)
	column   int    // Current column number (1-based)
}

// NewLexer creates a new lexer for the given input
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input:  input,
		line:   1,
		column: 0,
	}
	l.readChar()
	return l
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	pos := l.position
	line := l.line
	column := l.column

	switch {
	case l.ch == 0 && l.position >= len(l.input):
		return Token{Type: TokenEOF, Position: pos, Line: line, Column: column}
	case l.ch == '=':
		l.readChar()
		return Token{Type: TokenEquals, Value: "=", Position: pos, Line: line, Column: column}
	case l.ch == '|':
		l.readChar()
		return Token{Type: TokenPipe, Value: "|", Position: pos, Line: line, Column: column}
	case l.ch == '"' || l.ch == '\'':
		tok := l.readString(l.ch)
		tok.Position, tok.Line, tok.Column = pos, line, column
		return tok
	case isLetter(l.ch):
		return Token{Type: TokenIdentifier, Value: l.readIdentifier(), Position: pos, Line: line, Column: column}
	case isDigit(l.ch) || (l.ch == '-' && isDigit(l.peekChar())):
		return Token{Type: TokenNumber, Value: l.readNumber(), Position: pos, Line: line, Column: column}
	}

	r, size := utf8.DecodeRuneInString(l.input[l.position:])
	if size == 0 {
		size = 1
	}
	for i := 0; i < size; i++ {
		l.readChar()
	}
	return Token{
		Type:     TokenIllegal,
		Value:    string(r),
		Position: pos,
		Line:     line,
		Column:   column,
		Err:      fmt.Sprintf("unexpected character %q", r),
	}
}

// Tokenize returns all tokens from the input as a slice
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token

	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)

		if tok.Type == TokenEOF {
			break
		}

		if tok.Type == TokenIllegal {
			return tokens, fmt.Errorf("%s at line %d, column %d (position %d)",
				tok.Err, tok.Line, tok.Column, tok.Position)
		}
	}

	return tokens, nil
}

// readChar reads the next character and advances position
func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}

	if l.position < len(l.input) && l.readPos > 0 && l.input[l.position] == '\n' {
		l.line++
		l.column = 0
	}

	l.position = l.readPos
	l.readPos++
	l.column++
}

// peekChar returns the next character without advancing position
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// readIdentifier reads an identifier (letters, digits, underscores, hyphens)
func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) || l.ch == '-' {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readNumber reads an optionally negative integer literal
func (l *Lexer) readNumber() string {
	start := l.position
	if l.ch == '-' {
		l.readChar()
	}
	for isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readString reads a quoted string literal and decodes its escapes. The
// decoded bytes are collected in a cstring buffer.
func (l *Lexer) readString(quote byte) Token {
	decoded := cstring.New[byte]()
	defer decoded.Free()

	for {
		l.readChar()
		switch {
		case l.ch == 0 && l.position >= len(l.input):
			return Token{Type: TokenIllegal, Value: decoded.String(), Err: "unterminated string literal"}
		case l.ch == quote:
			l.readChar()
			return Token{Type: TokenString, Value: decoded.String()}
		case l.ch == '\\':
			l.readChar()
			c, ok := unescape(l.ch)
			if !ok {
				if l.ch == 0 && l.position >= len(l.input) {
					return Token{Type: TokenIllegal, Value: decoded.String(), Err: "unterminated string literal"}
				}
				return Token{Type: TokenIllegal, Value: decoded.String(), Err: fmt.Sprintf("unknown escape sequence \\%c", l.ch)}
			}
			decoded.PushBack(c)
		default:
			decoded.PushBack(l.ch)
		}
	}
}

func unescape(ch byte) (byte, bool) {
	switch ch {
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case 'r':
		return '\r', true
	case '0':
		return 0, true
	case '\\', '"', '\'':
		return ch, true
	}
	return 0, false
}

// skipWhitespace skips whitespace characters
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

// isLetter checks if the character starts an identifier
func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

// isDigit checks if the character is a digit
func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// IsValidIdentifier checks if a string is a valid stage or parameter name
func IsValidIdentifier(s string) bool {
	if s == "" {
		return false
	}

	r, _ := utf8.DecodeRuneInString(s)
	if !unicode.IsLetter(r) && r != '_' {
		return false
	}

	for _, r := range s[1:] {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' {
			return false
		}
	}

	return true
}

// TokenizeInput is a convenience function that tokenizes input and returns tokens or error
func TokenizeInput(input string) ([]Token, error) {
	return NewLexer(input).Tokenize()
}
