package represent

import (
	"github.com/emirpasic/gods/stacks/linkedliststack"
)

// precedence returns the binding power of an operator and whether it
// associates to the right.
func precedence(op OpKind) (prec int, right, ok bool) {
	switch op {
	case OpUnaryPlus, OpUnaryMinus:
		return 90, true, true
	case OpMultiply, OpDivide:
		return 20, false, true
	case OpPlus, OpMinus:
		return 10, false, true
	}
	return 0, false, false
}

// opEntry is an entry on the operator stack of the RPN compiler.
type opEntry struct {
	tok Token
	// col is the index of tok in the input program.
	col int
	// call is whether an open paren begins the arguments of the marker
	// below it.
	call bool
	// delims counts the argument delimiters inside an open paren.
	delims int
}

// opStack is the side stack of the shunting-yard algorithm.
type opStack struct {
	stack *linkedliststack.Stack
}

func (s opStack) push(e opEntry) {
	s.stack.Push(e)
}

func (s opStack) pop() (opEntry, bool) {
	e, ok := s.stack.Pop()
	if !ok {
		return opEntry{}, false
	}
	return e.(opEntry), true
}

func (s opStack) top() (opEntry, bool) {
	e, ok := s.stack.Peek()
	if !ok {
		return opEntry{}, false
	}
	return e.(opEntry), true
}

// popOperators moves operators to out until the top of the stack is not an
// operator.
func (s opStack) popOperators(out *TokenStream) {
	for {
		e, ok := s.top()
		if !ok || e.tok.Kind != TokenOperator {
			return
		}
		s.pop()
		out.Push(e.tok)
	}
}

// rpn converts a resolved program to postfix order.
func (s *store) rpn(in TokenStream) (TokenStream, error) {
	ops := opStack{stack: linkedliststack.New()}
	var out TokenStream
	for i := 0; i < in.Len(); i++ {
		tok := in.At(i)
		switch tok.Kind {
		case TokenStorageRef, TokenRawValue:
			out.Push(tok)
		case TokenOperator:
			p, right, ok := precedence(OpKind(tok.Value))
			if !ok {
				return TokenStream{}, &OperatorError{Col: i, Operator: tok.Value}
			}
			for {
				e, ok := ops.top()
				if !ok || e.tok.Kind != TokenOperator {
					break
				}
				q, _, _ := precedence(OpKind(e.tok.Value))
				if q < p || q == p && right {
					break
				}
				ops.pop()
				out.Push(e.tok)
			}
			ops.push(opEntry{tok: tok, col: i})
		case TokenFunctionIdentifier, TokenVector, TokenQuaternion, TokenMatrix, TokenArray:
			ops.push(opEntry{tok: tok, col: i})
		case TokenParen:
			if tok.Value == parenOpen {
				call := i > 0 && in.At(i-1).Kind.isMarker()
				ops.push(opEntry{tok: tok, col: i, call: call})
				continue
			}
			ops.popOperators(&out)
			paren, ok := ops.pop()
			if !ok || paren.tok.Kind != TokenParen {
				return TokenStream{}, &BracketError{Col: i}
			}
			if !paren.call {
				continue
			}
			marker, _ := ops.pop()
			n := paren.delims + 1
			if in.At(i-1).Kind == TokenParen && in.At(i-1).Value == parenOpen {
				n = 0
			}
			if want := marker.arity(); n != want {
				return TokenStream{}, &CallError{Col: i, Func: s.markerName(marker.tok), Len: n}
			}
			out.Push(marker.tok)
		case TokenArgDelimit:
			ops.popOperators(&out)
			paren, ok := ops.pop()
			if !ok || paren.tok.Kind != TokenParen || !paren.call {
				return TokenStream{}, &SeparatorError{Col: i}
			}
			paren.delims++
			ops.push(paren)
		default:
			panic("represent: unresolved token " + tok.String() + " in program")
		}
	}
	for {
		e, ok := ops.pop()
		if !ok {
			break
		}
		if e.tok.Kind != TokenOperator {
			return TokenStream{}, &BracketError{Col: e.col, Open: true}
		}
		out.Push(e.tok)
	}
	return out, nil
}

// arity returns the number of arguments a call or constructor marker takes.
func (e opEntry) arity() int {
	switch e.tok.Kind {
	case TokenFunctionIdentifier:
		return int(e.tok.Extra)
	case TokenVector, TokenQuaternion, TokenMatrix:
		return 4
	case TokenArray:
		return int(e.tok.Value)
	}
	return -1
}

// markerName names a call or constructor marker for errors.
func (s *store) markerName(tok Token) string {
	switch tok.Kind {
	case TokenFunctionIdentifier:
		if int(tok.Value) < len(s.storage) {
			if name, ok := s.storage[tok.Value].AsIdentifier(); ok {
				return name
			}
		}
		return "function"
	case TokenVector:
		return "vector"
	case TokenQuaternion:
		return "quaternion"
	case TokenMatrix:
		return "matrix"
	case TokenArray:
		return "array"
	}
	return tok.Kind.String()
}
