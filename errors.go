package represent

import (
	"errors"
	"strconv"
)

// ErrCompile is matched by every error that rejects a program during
// conversion to RPN. Use errors.Is to test for it.
var ErrCompile = errors.New("invalid program")

// OperatorError is an error indicating an operator token that is not
// understood. It implements InputError.
type OperatorError struct {
	// Col is the index of the token in the program.
	Col int
	// Operator is the value of the token that was not understood.
	Operator uint32
}

func (err *OperatorError) Error() string {
	return errpos(err.Col, "unknown operator "+strconv.FormatUint(uint64(err.Operator), 10))
}

func (err *OperatorError) Pos() int {
	return err.Col
}

func (err *OperatorError) Is(target error) bool {
	return target == ErrCompile
}

// BracketError is an error indicating mismatched parentheses in a program.
// It implements InputError.
type BracketError struct {
	// Col is the index of the unmatched paren in the program.
	Col int
	// Open is whether the unmatched paren is an open paren.
	Open bool
}

func (err *BracketError) Error() string {
	if err.Open {
		return errpos(err.Col, "open paren with no close paren")
	}
	return errpos(err.Col, "close paren with no open paren")
}

func (err *BracketError) Pos() int {
	return err.Col
}

func (err *BracketError) Is(target error) bool {
	return target == ErrCompile
}

// SeparatorError is an error indicating an argument delimiter outside of a
// call or constructor. It implements InputError.
type SeparatorError struct {
	// Col is the index of the delimiter in the program.
	Col int
}

func (err *SeparatorError) Error() string {
	return errpos(err.Col, `invalid occurrence of separator ","`)
}

func (err *SeparatorError) Pos() int {
	return err.Col
}

func (err *SeparatorError) Is(target error) bool {
	return target == ErrCompile
}

// CallError is an error indicating a call or constructor with the wrong
// number of arguments. It implements InputError.
type CallError struct {
	// Col is the index of the token that ended the call.
	Col int
	// Func names the function or constructor that was called.
	Func string
	// Len is the number of arguments the call tried to imply.
	Len int
}

func (err *CallError) Error() string {
	return errpos(err.Col, "cannot call "+err.Func+" with "+strconv.Itoa(err.Len)+" arguments")
}

func (err *CallError) Pos() int {
	return err.Col
}

// Is matches ErrCompile for calls rejected while converting to RPN. A
// CallError from evaluation has Col < 0 and does not match.
func (err *CallError) Is(target error) bool {
	return target == ErrCompile && err.Col >= 0
}

// EmptyExpressionError is an error indicating that there is nothing to
// evaluate, usually because the input did not parse.
type EmptyExpressionError struct{}

func (err *EmptyExpressionError) Error() string {
	return "no expression"
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error. For lex errors, this is the
	// number of runes up to and including the invalid one. For program
	// errors, it is the index of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*SeparatorError)(nil)
	_ InputError = (*CallError)(nil)
	_ InputError = (*LexError)(nil)
)

// NameError is an error from a lookup for a name that is missing from the
// evaluation context or bound to nothing.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "undefined name: " + strconv.Quote(err.Name)
}

// DefinitionError is an error indicating an attempt to redefine a name with
// a value of a different kind.
type DefinitionError struct {
	Name string
	// Old is the kind of the existing value, which is kept.
	Old Kind
	// New is the kind of the rejected value.
	New Kind
}

func (err *DefinitionError) Error() string {
	return "cannot redefine " + err.Old.String() + " " + strconv.Quote(err.Name) + " as " + err.New.String()
}

// DomainError is an error returned when an operator or function is applied
// to arguments outside its domain.
type DomainError struct {
	// X is the out-of-domain argument.
	X string
	// Arg is the 1-based index of the argument.
	Arg int
	// Func is a name identifying the operator or function.
	Func string
}

func (err *DomainError) Error() string {
	r := err.X + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Arg > 0 {
		r += " (argument " + strconv.Itoa(err.Arg) + ")"
	}
	return r
}

// OperandError is an error indicating an operator applied to values it has no
// overload for. It is only returned by contexts created with Strict.
type OperandError struct {
	Op OpKind
	// Left is the kind of the left operand. For unary operators, Left is the
	// kind of the operand and Right is KindNull.
	Left, Right Kind
}

func (err *OperandError) Error() string {
	if err.Op.isUnary() {
		return "invalid operand for " + err.Op.String() + ": " + err.Left.String()
	}
	return "invalid operands for " + err.Op.String() + ": " + err.Left.String() + " and " + err.Right.String()
}

// ArgumentError is an error indicating a function argument of the wrong kind.
type ArgumentError struct {
	Func string
	// Arg is the 1-based index of the argument.
	Arg  int
	Want Kind
	Got  Kind
}

func (err *ArgumentError) Error() string {
	return "argument " + strconv.Itoa(err.Arg) + " of " + err.Func + " must be " + err.Want.String() + ", not " + err.Got.String()
}

// ArrayError is an error indicating an array literal whose elements have
// different kinds.
type ArrayError struct {
	// Index is the 0-based index of the first element which differs.
	Index int
	Want  Kind
	Got   Kind
}

func (err *ArrayError) Error() string {
	return "array element " + strconv.Itoa(err.Index) + " is " + err.Got.String() + ", not " + err.Want.String()
}

// StackError is an error indicating a program which leaves the value stack
// inconsistent: popping from an empty stack, or finishing with other than
// exactly one value.
type StackError struct {
	// Want is the number of values required.
	Want int
	// Have is the number of values available.
	Have int
}

func (err *StackError) Error() string {
	return "inconsistent stack: need " + strconv.Itoa(err.Want) + " values, have " + strconv.Itoa(err.Have)
}

// TagError is an error indicating a result of a different kind than was
// requested.
type TagError struct {
	Want Kind
	Got  Kind
}

func (err *TagError) Error() string {
	return "result is " + err.Got.String() + ", not " + err.Want.String()
}
