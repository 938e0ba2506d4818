package represent

import (
	"strconv"
	"strings"
)

// Token is the unit shared by every stage of the pipeline. The meaning of
// Value depends on Kind: a digit, a base, an operator, a storage slot, an
// inline integer, a character, or an arity. Extra is scratch space for the
// later stages and is never set by the lexer or parser.
type Token struct {
	Kind  TokenKind
	Value uint32
	Extra uint16
}

// Equal compares the kinds and values of two tokens. Extra is ignored.
func (t Token) Equal(u Token) bool {
	return t.Kind == u.Kind && t.Value == u.Value
}

func (t Token) String() string {
	switch t.Kind {
	case TokenOperator:
		return t.Kind.String() + "(" + OpKind(t.Value).String() + ")"
	case TokenRaw, TokenBracket:
		return t.Kind.String() + "(" + strconv.QuoteRune(rune(t.Value)) + ")"
	case TokenParen:
		if t.Value == parenOpen {
			return "Paren(open)"
		}
		return "Paren(close)"
	case TokenFunctionIdentifier:
		if t.Extra != 0 {
			return t.Kind.String() + "(" + strconv.FormatUint(uint64(t.Value), 10) + "/" + strconv.Itoa(int(t.Extra)) + ")"
		}
	}
	return t.Kind.String() + "(" + strconv.FormatUint(uint64(t.Value), 10) + ")"
}

// TokenKind distinguishes tokens.
type TokenKind uint16

const (
	TokenNone TokenKind = iota
	// TokenBaseFlag starts a number literal; its value is the base.
	TokenBaseFlag
	// TokenDigit is one digit of a number literal.
	TokenDigit
	// TokenDecimalPoint separates the integer and fractional digits.
	TokenDecimalPoint
	// TokenOperator is an operator; its value is an OpKind.
	TokenOperator
	// TokenParen is an open (0) or close (1) parenthesis.
	TokenParen
	// TokenArgDelimit separates call and constructor arguments.
	TokenArgDelimit
	// TokenFunctionIdentifier names a call. Before resolution the value is the
	// arity and the name follows as TokenRaw; after, the value is a storage
	// slot and Extra holds the arity.
	TokenFunctionIdentifier
	// TokenIdentifierRaw starts an identifier whose name follows as TokenRaw.
	TokenIdentifierRaw
	// TokenRaw is one character of an identifier or string.
	TokenRaw
	// TokenStringStart starts a string whose body follows as TokenRaw.
	TokenStringStart
	// TokenVector marks a four-component vector constructor.
	TokenVector
	// TokenQuaternion marks a quaternion constructor.
	TokenQuaternion
	// TokenMatrix marks a matrix constructor of four row vectors.
	TokenMatrix
	// TokenArray marks an array constructor; its value is the element count.
	TokenArray
	// TokenStorageRef refers to a storage slot.
	TokenStorageRef
	// TokenRawValue is an inline small non-negative integer.
	TokenRawValue
	// TokenBracket is a square or curly bracket. Only the lexer emits it; the
	// parser rewrites brackets to constructor markers and parens.
	TokenBracket
)

var tokenKindNames = [...]string{
	TokenNone:               "None",
	TokenBaseFlag:           "BaseFlag",
	TokenDigit:              "Digit",
	TokenDecimalPoint:       "DecimalPoint",
	TokenOperator:           "Operator",
	TokenParen:              "Paren",
	TokenArgDelimit:         "ArgDelimit",
	TokenFunctionIdentifier: "FunctionIdentifier",
	TokenIdentifierRaw:      "IdentifierRaw",
	TokenRaw:                "Raw",
	TokenStringStart:        "StringStart",
	TokenVector:             "Vector",
	TokenQuaternion:         "Quaternion",
	TokenMatrix:             "Matrix",
	TokenArray:              "Array",
	TokenStorageRef:         "StorageRef",
	TokenRawValue:           "RawValue",
	TokenBracket:            "Bracket",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return "TokenKind(" + strconv.Itoa(int(k)) + ")"
}

// isMarker reports whether tokens of kind k open a call or constructor.
func (k TokenKind) isMarker() bool {
	switch k {
	case TokenFunctionIdentifier, TokenVector, TokenQuaternion, TokenMatrix, TokenArray:
		return true
	}
	return false
}

const (
	parenOpen  uint32 = 0
	parenClose uint32 = 1
)

// OpKind identifies an operator.
type OpKind uint32

const (
	OpPlus OpKind = iota
	OpMinus
	OpMultiply
	OpDivide
	OpUnaryPlus
	OpUnaryMinus
)

func (op OpKind) String() string {
	switch op {
	case OpPlus:
		return "+"
	case OpMinus:
		return "-"
	case OpMultiply:
		return "*"
	case OpDivide:
		return "/"
	case OpUnaryPlus:
		return "u+"
	case OpUnaryMinus:
		return "u-"
	}
	return "op(" + strconv.Itoa(int(op)) + ")"
}

// unary returns the unary form of a binary + or -.
func (op OpKind) unary() (OpKind, bool) {
	switch op {
	case OpPlus:
		return OpUnaryPlus, true
	case OpMinus:
		return OpUnaryMinus, true
	}
	return op, false
}

func (op OpKind) isUnary() bool {
	return op == OpUnaryPlus || op == OpUnaryMinus
}

// Operators contains the runes which are lexed as operators.
const Operators = "+-*/"

func opToken(op OpKind) Token {
	return Token{Kind: TokenOperator, Value: uint32(op)}
}

// TokenStream is an append-only sequence of tokens.
type TokenStream struct {
	tokens []Token
}

// Push appends a token.
func (s *TokenStream) Push(tok Token) {
	s.tokens = append(s.tokens, tok)
}

// PushAll appends every token of another stream.
func (s *TokenStream) PushAll(o TokenStream) {
	s.tokens = append(s.tokens, o.tokens...)
}

// Pop removes the last token. Panics if the stream is empty.
func (s *TokenStream) Pop() Token {
	if len(s.tokens) == 0 {
		panic("represent: pop from empty token stream")
	}
	t := s.tokens[len(s.tokens)-1]
	s.tokens = s.tokens[:len(s.tokens)-1]
	return t
}

// Clear empties the stream.
func (s *TokenStream) Clear() {
	s.tokens = nil
}

// Len returns the number of tokens.
func (s TokenStream) Len() int {
	return len(s.tokens)
}

// At returns the token at index i.
func (s TokenStream) At(i int) Token {
	return s.tokens[i]
}

// Tokens returns a copy of the tokens in the stream.
func (s TokenStream) Tokens() []Token {
	return append([]Token(nil), s.tokens...)
}

// Equal compares two streams token by token.
func (s TokenStream) Equal(o TokenStream) bool {
	if len(s.tokens) != len(o.tokens) {
		return false
	}
	for i, t := range s.tokens {
		if !t.Equal(o.tokens[i]) {
			return false
		}
	}
	return true
}

func (s TokenStream) String() string {
	var b strings.Builder
	for i, t := range s.tokens {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t.String())
	}
	return b.String()
}

// Stream creates a token stream from a list of tokens.
func Stream(tokens ...Token) TokenStream {
	return TokenStream{tokens: append([]Token(nil), tokens...)}
}
