package represent

import (
	"strings"
)

// expression   = value [ binaryOp expression ]
// value        = { unaryOp } number
//              | { unaryOp } quaternion
//              | { unaryOp } functionCall
//              | string
//              | { unaryOp } identifier
//              | { unaryOp } '(' expression ')'
//              | { unaryOp } matrix
//              | { unaryOp } vector
//              | { unaryOp } array
// functionCall = identifier '(' [ expression { ',' expression } ] ')'
// quaternion   = 'q' '[' expression ',' expression ',' expression ',' expression ']'
// vector       = '[' expression ',' expression ',' expression ',' expression ']'
// matrix       = '[' vector ',' vector ',' vector ',' vector ']'
// array        = '{' expression { ',' expression } '}'
// identifier   = letter { letter | digit | '-' }, not ending in '-'
// string       = '`' { char } '`'

// Parse lexes and parses an expression into grammar-ordered tokens. If any
// part of the input fails to lex or parse, the result is empty.
func Parse(src string) TokenStream {
	in, err := lex(strings.NewReader(src))
	if err != nil {
		tracer().Debugf("lexing %q failed: %v", src, err)
		return TokenStream{}
	}
	if in.Len() == 0 {
		return TokenStream{}
	}
	p := parser{in: in.tokens}
	n, out, ok := p.expression(0)
	if !ok {
		tracer().Debugf("no expression in %q", src)
		return TokenStream{}
	}
	if n != len(p.in) {
		tracer().Debugf("parsing %q stopped at token %d of %d: %v", src, n, len(p.in), p.in[n])
		return TokenStream{}
	}
	return out
}

// parser holds lexed tokens. Each rule takes the index of its first token and
// returns the index after its last along with the tokens it produced. A rule
// that fails produces nothing, so callers can try the next alternative from
// the same index.
type parser struct {
	in []Token
	// vectors remembers vector results by start index. A matrix and a vector
	// both begin with '[' and both parse vectors one level deeper, so without
	// it nested brackets take exponential time.
	vectors map[int]parsed
}

// parsed is a remembered rule result.
type parsed struct {
	end int
	out TokenStream
	ok  bool
}

// at returns the token at index i, or a TokenNone token past the end.
func (p *parser) at(i int) Token {
	if i < len(p.in) {
		return p.in[i]
	}
	return Token{}
}

func (p *parser) expression(i int) (int, TokenStream, bool) {
	j, out, ok := p.value(i)
	if !ok {
		return i, TokenStream{}, false
	}
	tok := p.at(j)
	if tok.Kind != TokenOperator {
		return j, out, true
	}
	k, rhs, ok := p.expression(j + 1)
	if !ok {
		// The optional tail failed; the caller decides whether the leftover
		// operator is an error.
		return j, out, true
	}
	out.Push(tok)
	out.PushAll(rhs)
	return k, out, true
}

func (p *parser) value(i int) (int, TokenStream, bool) {
	var out TokenStream
	k := i
	for {
		tok := p.at(k)
		if tok.Kind != TokenOperator {
			break
		}
		op, ok := OpKind(tok.Value).unary()
		if !ok {
			return i, TokenStream{}, false
		}
		out.Push(opToken(op))
		k++
	}
	if k == i {
		if j, s, ok := p.string(i); ok {
			return j, s, true
		}
	}
	alts := [...]func(int) (int, TokenStream, bool){
		p.number,
		p.quaternion,
		p.functionCall,
		p.identifier,
		p.group,
		p.matrix,
		p.vector,
		p.array,
	}
	for _, alt := range alts {
		if j, s, ok := alt(k); ok {
			out.PushAll(s)
			return j, out, true
		}
	}
	return i, TokenStream{}, false
}

// number = baseFlag digit { digit } [ '.' { digit } ]
func (p *parser) number(i int) (int, TokenStream, bool) {
	if p.at(i).Kind != TokenBaseFlag {
		return i, TokenStream{}, false
	}
	j := i + 1
	for p.at(j).Kind == TokenDigit {
		j++
	}
	if j == i+1 {
		// A base prefix with no digits.
		return i, TokenStream{}, false
	}
	if p.at(j).Kind == TokenDecimalPoint {
		j++
		for p.at(j).Kind == TokenDigit {
			j++
		}
	}
	return j, Stream(p.in[i:j]...), true
}

func (p *parser) string(i int) (int, TokenStream, bool) {
	if p.at(i).Kind != TokenStringStart {
		return i, TokenStream{}, false
	}
	j := i + 1
	for p.at(j).Kind == TokenRaw {
		j++
	}
	return j, Stream(p.in[i:j]...), true
}

// name scans the characters of an identifier.
func (p *parser) name(i int) (int, []rune, bool) {
	if p.at(i).Kind != TokenIdentifierRaw {
		return i, nil, false
	}
	j := i + 1
	var name []rune
	for p.at(j).Kind == TokenRaw {
		name = append(name, rune(p.at(j).Value))
		j++
	}
	if !validIdentifier(name) {
		return i, nil, false
	}
	return j, name, true
}

func (p *parser) identifier(i int) (int, TokenStream, bool) {
	j, name, ok := p.name(i)
	if !ok {
		return i, TokenStream{}, false
	}
	var out TokenStream
	out.Push(Token{Kind: TokenIdentifierRaw})
	pushRunes(&out, name)
	return j, out, true
}

func (p *parser) functionCall(i int) (int, TokenStream, bool) {
	j, name, ok := p.name(i)
	if !ok {
		return i, TokenStream{}, false
	}
	if tok := p.at(j); tok.Kind != TokenParen || tok.Value != parenOpen {
		return i, TokenStream{}, false
	}
	var out TokenStream
	if tok := p.at(j + 1); tok.Kind == TokenParen && tok.Value == parenClose {
		// Call with no arguments.
		out.Push(Token{Kind: TokenFunctionIdentifier})
		pushRunes(&out, name)
		out.Push(Token{Kind: TokenParen, Value: parenOpen})
		out.Push(Token{Kind: TokenParen, Value: parenClose})
		return j + 2, out, true
	}
	k, args, n, ok := p.arguments(j+1, Token{Kind: TokenParen, Value: parenClose})
	if !ok {
		return i, TokenStream{}, false
	}
	out.Push(Token{Kind: TokenFunctionIdentifier, Value: uint32(n)})
	pushRunes(&out, name)
	out.PushAll(args)
	return k, out, true
}

func (p *parser) group(i int) (int, TokenStream, bool) {
	if tok := p.at(i); tok.Kind != TokenParen || tok.Value != parenOpen {
		return i, TokenStream{}, false
	}
	j, e, ok := p.expression(i + 1)
	if !ok {
		return i, TokenStream{}, false
	}
	if tok := p.at(j); tok.Kind != TokenParen || tok.Value != parenClose {
		return i, TokenStream{}, false
	}
	var out TokenStream
	out.Push(Token{Kind: TokenParen, Value: parenOpen})
	out.PushAll(e)
	out.Push(Token{Kind: TokenParen, Value: parenClose})
	return j + 1, out, true
}

func (p *parser) quaternion(i int) (int, TokenStream, bool) {
	j, name, ok := p.name(i)
	if !ok || string(name) != "q" {
		return i, TokenStream{}, false
	}
	return p.constructor(j, TokenQuaternion, '[', ']', 4)
}

func (p *parser) vector(i int) (int, TokenStream, bool) {
	if r, ok := p.vectors[i]; ok {
		return r.end, r.out, r.ok
	}
	j, out, ok := p.constructor(i, TokenVector, '[', ']', 4)
	if p.vectors == nil {
		p.vectors = make(map[int]parsed)
	}
	p.vectors[i] = parsed{end: j, out: out, ok: ok}
	return j, out, ok
}

func (p *parser) array(i int) (int, TokenStream, bool) {
	return p.constructor(i, TokenArray, '{', '}', -1)
}

func (p *parser) matrix(i int) (int, TokenStream, bool) {
	if tok := p.at(i); tok.Kind != TokenBracket || tok.Value != '[' {
		return i, TokenStream{}, false
	}
	var out TokenStream
	out.Push(Token{Kind: TokenMatrix})
	out.Push(Token{Kind: TokenParen, Value: parenOpen})
	j := i + 1
	for row := 0; row < 4; row++ {
		if row > 0 {
			if p.at(j).Kind != TokenArgDelimit {
				return i, TokenStream{}, false
			}
			out.Push(Token{Kind: TokenArgDelimit})
			j++
		}
		k, v, ok := p.vector(j)
		if !ok {
			return i, TokenStream{}, false
		}
		out.PushAll(v)
		j = k
	}
	if tok := p.at(j); tok.Kind != TokenBracket || tok.Value != ']' {
		return i, TokenStream{}, false
	}
	out.Push(Token{Kind: TokenParen, Value: parenClose})
	return j + 1, out, true
}

// constructor parses a bracketed argument list of a literal constructor. If
// want is not negative, the list must have exactly that many elements.
func (p *parser) constructor(i int, kind TokenKind, open, close rune, want int) (int, TokenStream, bool) {
	if tok := p.at(i); tok.Kind != TokenBracket || tok.Value != uint32(open) {
		return i, TokenStream{}, false
	}
	j, args, n, ok := p.arguments(i+1, Token{Kind: TokenBracket, Value: uint32(close)})
	if !ok || want >= 0 && n != want {
		return i, TokenStream{}, false
	}
	var out TokenStream
	marker := Token{Kind: kind}
	if kind == TokenArray {
		marker.Value = uint32(n)
	}
	out.Push(marker)
	out.PushAll(args)
	return j, out, true
}

// arguments parses one or more comma-separated expressions followed by end.
// The result is wrapped in parens regardless of the brackets in the input.
func (p *parser) arguments(i int, end Token) (int, TokenStream, int, bool) {
	var out TokenStream
	out.Push(Token{Kind: TokenParen, Value: parenOpen})
	n := 0
	j := i
	for {
		k, e, ok := p.expression(j)
		if !ok {
			return i, TokenStream{}, 0, false
		}
		out.PushAll(e)
		n++
		if n > maxArity {
			return i, TokenStream{}, 0, false
		}
		tok := p.at(k)
		switch {
		case tok.Kind == TokenArgDelimit:
			out.Push(tok)
			j = k + 1
		case tok.Equal(end):
			out.Push(Token{Kind: TokenParen, Value: parenClose})
			return k + 1, out, n, true
		default:
			return i, TokenStream{}, 0, false
		}
	}
}

// maxArity is the largest argument count that fits in a token's Extra.
const maxArity = 1<<16 - 1

// validIdentifier checks a name against the identifier rule.
func validIdentifier(name []rune) bool {
	if len(name) == 0 || !isIdentStart(name[0]) || name[len(name)-1] == '-' {
		return false
	}
	for _, r := range name[1:] {
		if !isIdentPart(r) && r != '-' {
			return false
		}
	}
	return true
}

func pushRunes(out *TokenStream, name []rune) {
	for _, r := range name {
		out.Push(Token{Kind: TokenRaw, Value: uint32(r)})
	}
}
