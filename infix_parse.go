package caravel

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ParseInfix parses an infix expression into a Tree.
//
// The grammar, shared with InfixFormat through one static table:
//
//	expr    := unary | expr binop expr
//	unary   := "-" unary | "+" unary | atom
//	atom    := number | ident | ident "(" expr {"," expr} ")" | "(" expr ")"
//	binop   := "+" | "-" | "*" | "/" | "^"
//
// Precedence and associativity: "^" (4, right) > unary "-" (3) > "*" "/"
// (2, left) > "+" "-" (1, left). Function names come from the arity table
// (unary functions, binary "pow", variadic "min"/"max" with two or more
// arguments). Bare identifiers are resolved through vars; an identifier
// absent from vars fails with ErrNotFound, while unbalanced parentheses,
// unknown tokens and arity mismatches fail with ErrSyntax. Numeric literals
// become constant leaves.
func ParseInfix(expr string, vars map[string]uint64) (*Tree, error) {
	tokens, err := tokenize(expr)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens, vars: vars}
	if err := p.parseExpr(precAdd); err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrSyntax, tok.text, tok.pos)
	}
	return NewTree(p.out)
}

// ============================================================================
// Tokenizer
// ============================================================================

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokOp
	tokLParen
	tokRParen
	tokComma
)

type token struct {
	kind  tokenKind
	text  string
	value float64 // tokNumber only
	pos   int     // byte offset in the source
}

func tokenize(expr string) ([]token, error) {
	var tokens []token
	i := 0
	for i < len(expr) {
		c := expr[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++

		case c == '(':
			tokens = append(tokens, token{kind: tokLParen, text: "(", pos: i})
			i++
		case c == ')':
			tokens = append(tokens, token{kind: tokRParen, text: ")", pos: i})
			i++
		case c == ',':
			tokens = append(tokens, token{kind: tokComma, text: ",", pos: i})
			i++
		case strings.ContainsRune("+-*/^", rune(c)):
			tokens = append(tokens, token{kind: tokOp, text: string(c), pos: i})
			i++

		case c >= '0' && c <= '9' || c == '.':
			j := i
			for j < len(expr) && (expr[j] >= '0' && expr[j] <= '9' || expr[j] == '.') {
				j++
			}
			// Exponent part, including a signed exponent.
			if j < len(expr) && (expr[j] == 'e' || expr[j] == 'E') {
				k := j + 1
				if k < len(expr) && (expr[k] == '+' || expr[k] == '-') {
					k++
				}
				if k < len(expr) && expr[k] >= '0' && expr[k] <= '9' {
					for k < len(expr) && expr[k] >= '0' && expr[k] <= '9' {
						k++
					}
					j = k
				}
			}
			text := expr[i:j]
			v, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bad number %q at offset %d", ErrSyntax, text, i)
			}
			tokens = append(tokens, token{kind: tokNumber, text: text, value: v, pos: i})
			i = j

		case c == '_' || unicode.IsLetter(rune(c)):
			j := i
			for j < len(expr) && (expr[j] == '_' || unicode.IsLetter(rune(expr[j])) || unicode.IsDigit(rune(expr[j]))) {
				j++
			}
			tokens = append(tokens, token{kind: tokIdent, text: expr[i:j], pos: i})
			i = j

		default:
			return nil, fmt.Errorf("%w: unknown token %q at offset %d", ErrSyntax, string(c), i)
		}
	}
	return append(tokens, token{kind: tokEOF, pos: len(expr)}), nil
}

// ============================================================================
// Precedence-climbing parser
// ============================================================================

// binaryOps maps operator tokens to node types; precedence and
// associativity come from nodeTable so parser and formatter cannot drift.
var binaryOps = map[string]NodeType{
	"+": NodeAdd,
	"-": NodeSub,
	"*": NodeMul,
	"/": NodeDiv,
	"^": NodePow,
}

// parser emits postfix nodes into out while climbing precedence levels, so
// the finished slice is already the tree's canonical linearization.
type parser struct {
	tokens []token
	pos    int
	vars   map[string]uint64
	out    []Node
}

func (p *parser) peek() token { return p.tokens[p.pos] }

// powerFollows reports whether the token after the current one is the ^
// operator, which binds tighter than unary minus.
func (p *parser) powerFollows() bool {
	after := p.tokens[p.pos+1]
	return after.kind == tokOp && after.text == "^"
}

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) parseExpr(minPrec int) error {
	if err := p.parseUnary(); err != nil {
		return err
	}
	for {
		tok := p.peek()
		if tok.kind != tokOp {
			return nil
		}
		op := binaryOps[tok.text]
		info := nodeTable[op]
		if info.precedence < minPrec {
			return nil
		}
		p.next()

		nextMin := info.precedence + 1
		if info.rightAssoc {
			nextMin = info.precedence
		}
		if err := p.parseExpr(nextMin); err != nil {
			return err
		}
		p.out = append(p.out, NewNode(op))
	}
}

func (p *parser) parseUnary() error {
	tok := p.peek()
	if tok.kind == tokOp && tok.text == "-" {
		p.next()
		// A minus directly adjacent to a number literal folds into a
		// negative constant leaf; that is the canonical form the formatter
		// re-emits. The fold never reaches through parentheses, so -(2)
		// stays a negation node, and it yields to a tighter-binding power
		// so -2^2 keeps its conventional reading -(2^2).
		if num := p.peek(); num.kind == tokNumber && !p.powerFollows() {
			p.next()
			p.out = append(p.out, NewConstantNode(-num.value))
			return nil
		}
		// The operand climbs through ^ but stops at * and /, so
		// -x^2 parses as -(x^2) while -a*b parses as (-a)*b.
		if err := p.parseExpr(precUnary); err != nil {
			return err
		}
		p.out = append(p.out, NewNode(NodeNeg))
		return nil
	}
	if tok.kind == tokOp && tok.text == "+" {
		p.next()
		return p.parseUnary()
	}
	return p.parseAtom()
}

func (p *parser) parseAtom() error {
	tok := p.next()
	switch tok.kind {
	case tokNumber:
		p.out = append(p.out, NewConstantNode(tok.value))
		return nil

	case tokIdent:
		if p.peek().kind == tokLParen {
			return p.parseCall(tok)
		}
		hash, ok := p.vars[tok.text]
		if !ok {
			return fmt.Errorf("%w: identifier %q at offset %d", ErrNotFound, tok.text, tok.pos)
		}
		p.out = append(p.out, NewVariableNode(hash))
		return nil

	case tokLParen:
		if err := p.parseExpr(precAdd); err != nil {
			return err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return fmt.Errorf("%w: expected ')' at offset %d", ErrSyntax, closing.pos)
		}
		return nil

	case tokEOF:
		return fmt.Errorf("%w: unexpected end of expression", ErrSyntax)

	default:
		return fmt.Errorf("%w: unexpected %q at offset %d", ErrSyntax, tok.text, tok.pos)
	}
}

// parseCall parses a function invocation after its name token.
func (p *parser) parseCall(name token) error {
	fn, ok := functionTable[name.text]
	if !ok {
		return fmt.Errorf("%w: unknown function %q at offset %d", ErrSyntax, name.text, name.pos)
	}
	p.next() // consume '('

	argc := 0
	for {
		if err := p.parseExpr(precAdd); err != nil {
			return err
		}
		argc++
		tok := p.next()
		if tok.kind == tokComma {
			continue
		}
		if tok.kind == tokRParen {
			break
		}
		return fmt.Errorf("%w: expected ',' or ')' at offset %d", ErrSyntax, tok.pos)
	}

	info := nodeTable[fn]
	switch {
	case info.arity == -1:
		if argc < 2 {
			return fmt.Errorf("%w: %s takes at least 2 arguments, got %d", ErrSyntax, name.text, argc)
		}
		p.out = append(p.out, NewNodeWithArity(fn, argc))
	case argc != info.arity:
		return fmt.Errorf("%w: %s takes %d argument(s), got %d", ErrSyntax, name.text, info.arity, argc)
	default:
		p.out = append(p.out, NewNode(fn))
	}
	return nil
}
