//
// Copyright 2012 Nathan Fiedler. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//

package yal

//
// Parser for the language, turning the lexeme sequence into an
// ordered vector of top-level cons-cell trees via simple recursive
// descent, the same shape this language's earlier liswat parser used.
//

// parser walks a slice of Lexemes, discarding Space lexemes itself as
// it consumes them via next.
type parser struct {
	lexemes []Lexeme
	pos     int
}

// Parse tokenizes and parses input, returning the ordered top-level
// Values or the first LispError encountered during either phase.
func Parse(input string) ([]*Value, *LispError) {
	lexemes, err := Lex(input)
	if err != nil {
		return nil, err
	}
	return ParseLexemes(lexemes)
}

// ParseLexemes parses an already-lexed stream, such as the one Lex
// returns; Space lexemes in it are skipped.
func ParseLexemes(lexemes []Lexeme) ([]*Value, *LispError) {
	p := &parser{lexemes: lexemes}
	var top []*Value
	for {
		lx, ok := p.next()
		if !ok {
			return top, nil
		}
		v, err := p.readValue(lx)
		if err != nil {
			return nil, err
		}
		top = append(top, v)
	}
}

// next returns the next non-Space lexeme, discarding Space lexemes as
// it scans past them.
func (p *parser) next() (Lexeme, bool) {
	for p.pos < len(p.lexemes) {
		lx := p.lexemes[p.pos]
		p.pos++
		if lx.Kind != tokenSpace {
			return lx, true
		}
	}
	return Lexeme{}, false
}

// readValue reads one Value given that lx has already been consumed
// via next() as the token starting this Value.
func (p *parser) readValue(lx Lexeme) (*Value, *LispError) {
	pos := &Position{lx.Line, lx.Col}
	switch lx.Kind {
	case tokenNumber:
		return &Value{Payload: Number(lx.Num), Pos: pos}, nil
	case tokenStr:
		return &Value{Payload: Str(lx.Text), Pos: pos}, nil
	case tokenSymbol:
		return &Value{Payload: Symbol(lx.Text), Pos: pos}, nil
	case tokenQuote:
		inner, ok := p.next()
		if !ok {
			return nil, NewLispError(ESYNTAX, *pos, "Unexpected end of file")
		}
		v, err := p.readValue(inner)
		if err != nil {
			return nil, err
		}
		return &Value{Payload: &Quoted{Inner: v}, Pos: pos}, nil
	case tokenOpenBracket:
		return p.readList(pos)
	case tokenCloseBracket:
		return nil, NewLispError(ESYNTAX, *pos, "Unexpected token ')'")
	case tokenDot:
		return nil, NewLispError(ESYNTAX, *pos, "Unexpected token '.'")
	default:
		return nil, NewLispError(ESYNTAX, *pos, "Unexpected token")
	}
}

// readList reads a ListBody up to and including the closing bracket,
// given that the opening bracket at pos has already been consumed.
func (p *parser) readList(pos *Position) (*Value, *LispError) {
	var items []*Value
	for {
		lx, ok := p.next()
		if !ok {
			return nil, NewLispError(ESYNTAX, *pos, "Unexpected end of file")
		}
		switch lx.Kind {
		case tokenCloseBracket:
			if len(items) == 0 {
				return &Value{Pos: pos}, nil
			}
			return &Value{Payload: pairFromItems(items, NewNil(nil)), Pos: pos}, nil
		case tokenDot:
			if len(items) == 0 {
				return nil, NewLispError(ESYNTAX, Position{lx.Line, lx.Col}, "Unexpected token '.'")
			}
			tailLx, ok := p.next()
			if !ok {
				return nil, NewLispError(ESYNTAX, Position{lx.Line, lx.Col}, "Unexpected end of file")
			}
			tail, err := p.readValue(tailLx)
			if err != nil {
				return nil, err
			}
			closeLx, ok := p.next()
			if !ok {
				return nil, NewLispError(ESYNTAX, Position{lx.Line, lx.Col}, "Unexpected end of file")
			}
			if closeLx.Kind != tokenCloseBracket {
				return nil, NewLispError(ESYNTAX, Position{closeLx.Line, closeLx.Col}, "Unexpected token")
			}
			return &Value{Payload: pairFromItems(items, tail), Pos: pos}, nil
		default:
			v, err := p.readValue(lx)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
	}
}

// pairFromItems builds the right-nested Pair chain for a non-empty
// ListBody, terminating in tail.
func pairFromItems(items []*Value, tail *Value) *Pair {
	result := tail
	for i := len(items) - 1; i >= 0; i-- {
		result = NewPair(items[i], result)
	}
	p, _ := AsPair(result)
	return p
}
