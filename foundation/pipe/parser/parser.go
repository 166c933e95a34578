// File: parser.go
// Title: Pipeline Recursive Descent Parser
// Description: Converts token streams into pipeline syntax trees.
//              Grammar:
//                pipeline := stage { "|" stage }
//                stage    := IDENT { param }
//                param    := IDENT "=" value | value
//                value    := STRING | NUMBER | IDENT
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-25 v0.1.0: Initial parser implementation
// - 2026-10-19 v0.2.0: Pipeline grammar with named and positional parameters

package parser

import (
	"fmt"
	"strings"

	mdwerrors "github.com/msto63/cstring/foundation/core/errors"
	mdwlog "github.com/msto63/cstring/foundation/core/log"
	"github.com/msto63/cstring/foundation/pipe/ast"
)

// Parser implements recursive descent parsing for pipeline expressions
type Parser struct {
	lexer    *Lexer
	current  Token // Current token
	previous Token // Previous token
	logger   *mdwlog.Logger
	options  Options
}

// Options configures parser behavior
type Options struct {
	Logger         *mdwlog.Logger
	MaxInputLength int
	MaxStages      int
}

// ParseError represents a parsing error with position information
type ParseError struct {
	Message  string
	Position int
	Line     int
	Column   int
	Token    Token
}

func (pe *ParseError) Error() string {
	if pe.Token.Type == TokenEOF {
		return fmt.Sprintf("parse error at line %d, column %d: %s (at end of input)",
			pe.Line, pe.Column, pe.Message)
	}
	return fmt.Sprintf("parse error at line %d, column %d: %s (near '%s')",
		pe.Line, pe.Column, pe.Message, pe.Token.Value)
}

// New creates a new pipeline parser with the given options
func New(opts Options) *Parser {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.MaxInputLength == 0 {
		opts.MaxInputLength = 4096
	}
	if opts.MaxStages == 0 {
		opts.MaxStages = 32
	}

	return &Parser{
		logger:  opts.Logger.WithField("component", "pipe-parser"),
		options: opts,
	}
}

// Parse parses a pipeline expression and returns its syntax tree
func (p *Parser) Parse(input string) (*ast.Pipeline, error) {
	if len(input) > p.options.MaxInputLength {
		return nil, mdwerrors.InvalidInput(mdwerrors.ModulePipe, "parse",
			fmt.Sprintf("%d bytes", len(input)),
			fmt.Sprintf("at most %d bytes", p.options.MaxInputLength))
	}

	if strings.TrimSpace(input) == "" {
		return nil, p.wrap(&ParseError{Message: "empty pipeline", Line: 1, Column: 1})
	}

	p.lexer = NewLexer(input)
	p.previous = Token{}
	p.advance()

	pipeline, perr := p.parsePipeline()
	if perr != nil {
		p.logger.Debug("Parse failed", mdwlog.Fields{
			"line":   perr.Line,
			"column": perr.Column,
			"reason": perr.Message,
		})
		return nil, p.wrap(perr)
	}
	pipeline.Source = input

	if err := pipeline.Validate(); err != nil {
		return nil, mdwerrors.PipeParseError(err.Error(), 0, 1, 1, err)
	}

	p.logger.Debug("Pipeline parsed", mdwlog.Fields{
		"stages": len(pipeline.Stages),
	})
	return pipeline, nil
}

// Parse is a convenience function using default options
func Parse(input string) (*ast.Pipeline, error) {
	return New(Options{Logger: mdwlog.Discard()}).Parse(input)
}

func (p *Parser) wrap(perr *ParseError) error {
	return mdwerrors.PipeParseError(perr.Error(), perr.Position, perr.Line, perr.Column, perr)
}

func (p *Parser) parsePipeline() (*ast.Pipeline, *ParseError) {
	pipeline := &ast.Pipeline{}

	for {
		stage, err := p.parseStage()
		if err != nil {
			return nil, err
		}
		pipeline.Stages = append(pipeline.Stages, stage)

		if len(pipeline.Stages) > p.options.MaxStages {
			return nil, p.errorAt(p.previous,
				fmt.Sprintf("pipeline exceeds maximum of %d stages", p.options.MaxStages))
		}

		switch p.current.Type {
		case TokenEOF:
			return pipeline, nil
		case TokenPipe:
			p.advance()
		default:
			return nil, p.errorAt(p.current, "expected '|' or end of input")
		}
	}
}

func (p *Parser) parseStage() (*ast.Stage, *ParseError) {
	if p.current.Type == TokenIllegal {
		return nil, p.errorAt(p.current, p.current.Err)
	}
	if p.current.Type != TokenIdentifier {
		return nil, p.errorAt(p.current, "expected stage name")
	}

	stage := &ast.Stage{
		Name: p.current.Value,
		Pos:  position(p.current),
	}
	p.advance()

	for p.current.Type != TokenPipe && p.current.Type != TokenEOF {
		param, err := p.parseParam()
		if err != nil {
			return nil, err
		}
		stage.Params = append(stage.Params, param)
	}

	return stage, nil
}

func (p *Parser) parseParam() (ast.Param, *ParseError) {
	tok := p.current

	if tok.Type == TokenIdentifier && p.peekEquals() {
		p.advance() // name
		p.advance() // '='
		value, err := p.parseValue()
		if err != nil {
			return ast.Param{}, err
		}
		return ast.Param{Name: tok.Value, Value: value, Pos: position(tok)}, nil
	}

	value, err := p.parseValue()
	if err != nil {
		return ast.Param{}, err
	}
	return ast.Param{Value: value, Pos: position(tok)}, nil
}

func (p *Parser) parseValue() (ast.Value, *ParseError) {
	tok := p.current
	var vt ast.ValueType

	switch tok.Type {
	case TokenString:
		vt = ast.ValueString
	case TokenNumber:
		vt = ast.ValueNumber
	case TokenIdentifier:
		vt = ast.ValueIdent
	case TokenIllegal:
		return ast.Value{}, p.errorAt(tok, tok.Err)
	case TokenEquals:
		return ast.Value{}, p.errorAt(tok, "unexpected '=' without parameter name")
	default:
		return ast.Value{}, p.errorAt(tok, "expected parameter value")
	}

	p.advance()
	return ast.Value{Type: vt, Text: tok.Value, Pos: position(tok)}, nil
}

// peekEquals reports whether the token after the current one is '='
func (p *Parser) peekEquals() bool {
	save := *p.lexer
	next := p.lexer.NextToken()
	*p.lexer = save
	return next.Type == TokenEquals
}

func (p *Parser) advance() {
	p.previous = p.current
	p.current = p.lexer.NextToken()
}

func (p *Parser) errorAt(tok Token, message string) *ParseError {
	return &ParseError{
		Message:  message,
		Position: tok.Position,
		Line:     tok.Line,
		Column:   tok.Column,
		Token:    tok,
	}
}

func position(tok Token) ast.Position {
	return ast.Position{Line: tok.Line, Column: tok.Column, Offset: tok.Position}
}
