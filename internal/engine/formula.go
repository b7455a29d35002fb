package engine

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Formula expressions are restricted to decimal literals, the four arithmetic
// operators, parentheses, and names from a fixed symbol table ("basic" plus
// already-resolved component codes). There is no function call syntax and no
// code-execution path.

type formulaError struct {
	expr string
	msg  string
}

func (e *formulaError) Error() string {
	return fmt.Sprintf("formula %q: %s", e.expr, e.msg)
}

// EvalFormula evaluates expr against the given symbol table.
func EvalFormula(expr string, symbols map[string]decimal.Decimal) (decimal.Decimal, error) {
	p := &formulaParser{expr: expr, input: []rune(expr), symbols: symbols}
	v, err := p.parseExpr()
	if err != nil {
		return decimal.Zero, err
	}
	p.skipSpace()
	if p.pos < len(p.input) {
		return decimal.Zero, &formulaError{expr, fmt.Sprintf("unexpected %q at position %d", p.input[p.pos], p.pos)}
	}
	return v, nil
}

type formulaParser struct {
	expr    string
	input   []rune
	pos     int
	symbols map[string]decimal.Decimal
}

func (p *formulaParser) parseExpr() (decimal.Decimal, error) {
	v, err := p.parseTerm()
	if err != nil {
		return decimal.Zero, err
	}
	for {
		p.skipSpace()
		switch p.peek() {
		case '+':
			p.pos++
			rhs, err := p.parseTerm()
			if err != nil {
				return decimal.Zero, err
			}
			v = v.Add(rhs)
		case '-':
			p.pos++
			rhs, err := p.parseTerm()
			if err != nil {
				return decimal.Zero, err
			}
			v = v.Sub(rhs)
		default:
			return v, nil
		}
	}
}

func (p *formulaParser) parseTerm() (decimal.Decimal, error) {
	v, err := p.parseFactor()
	if err != nil {
		return decimal.Zero, err
	}
	for {
		p.skipSpace()
		switch p.peek() {
		case '*':
			p.pos++
			rhs, err := p.parseFactor()
			if err != nil {
				return decimal.Zero, err
			}
			v = v.Mul(rhs)
		case '/':
			p.pos++
			rhs, err := p.parseFactor()
			if err != nil {
				return decimal.Zero, err
			}
			if rhs.IsZero() {
				return decimal.Zero, &formulaError{p.expr, "division by zero"}
			}
			v = v.Div(rhs)
		default:
			return v, nil
		}
	}
}

func (p *formulaParser) parseFactor() (decimal.Decimal, error) {
	p.skipSpace()
	switch c := p.peek(); {
	case c == '-':
		p.pos++
		v, err := p.parseFactor()
		if err != nil {
			return decimal.Zero, err
		}
		return v.Neg(), nil
	case c == '(':
		p.pos++
		v, err := p.parseExpr()
		if err != nil {
			return decimal.Zero, err
		}
		p.skipSpace()
		if p.peek() != ')' {
			return decimal.Zero, &formulaError{p.expr, "missing closing parenthesis"}
		}
		p.pos++
		return v, nil
	case unicode.IsDigit(c) || c == '.':
		return p.parseNumber()
	case unicode.IsLetter(c) || c == '_':
		return p.parseSymbol()
	case c == 0:
		return decimal.Zero, &formulaError{p.expr, "unexpected end of expression"}
	default:
		return decimal.Zero, &formulaError{p.expr, fmt.Sprintf("unexpected %q at position %d", c, p.pos)}
	}
}

func (p *formulaParser) parseNumber() (decimal.Decimal, error) {
	start := p.pos
	for p.pos < len(p.input) && (unicode.IsDigit(p.input[p.pos]) || p.input[p.pos] == '.') {
		p.pos++
	}
	v, err := decimal.NewFromString(string(p.input[start:p.pos]))
	if err != nil {
		return decimal.Zero, &formulaError{p.expr, fmt.Sprintf("invalid number %q", string(p.input[start:p.pos]))}
	}
	return v, nil
}

func (p *formulaParser) parseSymbol() (decimal.Decimal, error) {
	start := p.pos
	for p.pos < len(p.input) && (unicode.IsLetter(p.input[p.pos]) || unicode.IsDigit(p.input[p.pos]) || p.input[p.pos] == '_') {
		p.pos++
	}
	name := strings.ToLower(string(p.input[start:p.pos]))
	v, ok := p.symbols[name]
	if !ok {
		return decimal.Zero, &formulaError{p.expr, fmt.Sprintf("unresolved reference %q", name)}
	}
	return v, nil
}

func (p *formulaParser) peek() rune {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *formulaParser) skipSpace() {
	for p.pos < len(p.input) && unicode.IsSpace(p.input[p.pos]) {
		p.pos++
	}
}
