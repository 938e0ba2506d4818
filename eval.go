package represent

import (
	"github.com/shopspring/decimal"

	"github.com/zephyrtronium/represent/linalg"
)

// Context is a context for evaluating one expression. It owns the storage
// and names the expression refers to, and it can evaluate the expression any
// number of times with any backing. It is not safe to use a Context
// concurrently.
type Context struct {
	store
	program TokenStream
	prec    int32
	strict  bool
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type (
	varopt struct {
		name string
		val  Cell
	}
	varsopt   map[string]Cell
	precopt   int32
	strictopt struct{}
	funcsopt  map[string]Func
)

func (varopt) ctxOption()    {}
func (varsopt) ctxOption()   {}
func (precopt) ctxOption()   {}
func (strictopt) ctxOption() {}
func (funcsopt) ctxOption()  {}

// SetVar defines a name in the context.
func SetVar(name string, val Cell) ContextOption {
	return varopt{name, val}
}

// SetVars defines any number of names in the context.
func SetVars(vars map[string]Cell) ContextOption {
	return varsopt(vars)
}

// Prec sets the number of decimal places kept by division and functions
// when evaluating with the Decimal backing.
func Prec(places int32) ContextOption {
	return precopt(places)
}

// Strict makes operators applied to values they have no overload for an
// evaluation error. By default, such operators log and produce Null.
func Strict() ContextOption {
	return strictopt{}
}

// WithFuncs adds functions to the context or replaces default ones. A nil
// Func removes a default function. Functions are bound when the context is
// created, to names the expression uses and to names reached through
// identifiers set with SetVar or SetVars; later definitions do not bind them.
func WithFuncs(funcs map[string]Func) ContextOption {
	return funcsopt(funcs)
}

// NewContext parses and resolves an expression. Malformed input produces a
// context with an empty program, which fails to evaluate; the error is only
// non-nil if an option's definition is rejected.
func NewContext(text string, opts ...ContextOption) (*Context, error) {
	ctx := Context{store: newStore(), prec: DefaultPrec}
	funcs := DefaultFuncs()
	for _, opt := range opts {
		switch opt := opt.(type) {
		case nil: // do nothing
		case precopt:
			ctx.prec = int32(opt)
		case strictopt:
			ctx.strict = true
		case funcsopt:
			for k, f := range opt {
				if f == nil {
					delete(funcs, k)
					continue
				}
				funcs[k] = f
			}
		case varopt, varsopt: // after resolving
		default:
			panic("represent: unknown option type")
		}
	}
	p := Parse(text)
	ctx.program = ctx.resolve(p)
	tracer().Debugf("resolved %q to %d tokens, %d slots", text, ctx.program.Len(), len(ctx.storage))
	for _, opt := range opts {
		switch opt := opt.(type) {
		case varopt:
			if err := ctx.Define(opt.name, opt.val); err != nil {
				return nil, err
			}
		case varsopt:
			for k, v := range opt {
				if err := ctx.Define(k, v); err != nil {
					return nil, err
				}
			}
		}
	}
	// Bind functions to the names the program uses that are still unbound.
	for name, slot := range ctx.symbols {
		f := funcs[name]
		if f != nil && ctx.storage[slot].IsNull() {
			ctx.storage[slot] = FunctionValue[decimal.Decimal](name, f)
		}
	}
	ctx.bindAliases(funcs)
	return &ctx, nil
}

// bindAliases binds functions to unbound names reached by identifier chains
// in storage, so a variable holding Identifier("sqrt") can be called.
func (ctx *Context) bindAliases(funcs map[string]Func) {
	for i := 0; i < len(ctx.storage); i++ {
		c := ctx.storage[i]
		for hops := 0; hops <= len(ctx.storage); hops++ {
			name, ok := c.AsIdentifier()
			if !ok {
				break
			}
			if slot, ok := ctx.symbols[name]; ok && !ctx.storage[slot].IsNull() {
				c = ctx.storage[slot]
				continue
			}
			if f := funcs[name]; f != nil {
				// The name is new or bound to Null, so this cannot fail.
				ctx.Define(name, FunctionValue[decimal.Decimal](name, f))
			}
			break
		}
	}
}

// Define binds a name. If the name is new, it gets a new slot. Otherwise the
// slot is overwritten if it is Null or holds a value of the same kind as
// val; if not, the definition is rejected with a *DefinitionError and the
// old value is kept.
func (ctx *Context) Define(name string, val Cell) error {
	slot, ok := ctx.symbols[name]
	if !ok {
		ctx.symbols[name] = ctx.add(val)
		return nil
	}
	old := ctx.storage[slot]
	if !old.IsNull() && old.Kind() != val.Kind() {
		err := &DefinitionError{Name: name, Old: old.Kind(), New: val.Kind()}
		tracer().Errorf("%v", err)
		return err
	}
	ctx.storage[slot] = val
	return nil
}

// Lookup resolves identifiers. Cells which are not identifiers are returned
// unchanged. An identifier is replaced by the cell its name is bound to,
// repeatedly, until the result is not an identifier. A name which is not
// bound, or bound to Null, is a *NameError.
func (ctx *Context) Lookup(c Cell) (Cell, error) {
	return ctx.lookup(c)
}

func (s *store) lookup(c Cell) (Cell, error) {
	// A chain longer than storage must contain a cycle.
	for hops := 0; hops <= len(s.storage); hops++ {
		name, ok := c.AsIdentifier()
		if !ok {
			return c, nil
		}
		slot, ok := s.symbols[name]
		if !ok || s.storage[slot].IsNull() {
			return Cell{}, &NameError{Name: name}
		}
		c = s.storage[slot]
	}
	name, _ := c.AsIdentifier()
	return Cell{}, &NameError{Name: name}
}

// Evaluate evaluates the expression with the Decimal backing.
func (ctx *Context) Evaluate() (Cell, error) {
	return EvaluateWith[decimal.Decimal](ctx, Decimal{Places: ctx.prec})
}

// RPN returns the program of the context in postfix order.
func (ctx *Context) RPN() (TokenStream, error) {
	return ctx.rpn(ctx.program)
}

// Program returns the resolved program of the context.
func (ctx *Context) Program() TokenStream {
	return Stream(ctx.program.tokens...)
}

// Storage returns a copy of the context's storage.
func (ctx *Context) Storage() []Cell {
	return append([]Cell(nil), ctx.storage...)
}

// Symbols returns a copy of the context's names and the slots they are
// bound to.
func (ctx *Context) Symbols() map[string]uint32 {
	m := make(map[string]uint32, len(ctx.symbols))
	for k, v := range ctx.symbols {
		m[k] = v
	}
	return m
}

// EvaluateWith evaluates the expression with a particular backing. The
// result is converted back to a cell; float results convert exactly, so the
// result shows the backing's rounding error.
func EvaluateWith[N any, B Backing[N]](ctx *Context, b B) (Cell, error) {
	rpn, err := ctx.RPN()
	if err != nil {
		return Cell{}, err
	}
	r, err := run[N](b, &ctx.store, rpn, ctx.strict)
	if err != nil {
		return Cell{}, err
	}
	return canonical[N](b, r)
}

// EvaluateAs evaluates the expression with the Decimal backing and extracts
// a result of type T. See As for the allowed types.
func EvaluateAs[T any](ctx *Context) (T, error) {
	c, err := ctx.Evaluate()
	if err != nil {
		var zero T
		return zero, err
	}
	return As[T](c)
}

// As extracts the payload of a cell. T must be decimal.Decimal,
// linalg.Vec4[decimal.Decimal], linalg.Quat[decimal.Decimal],
// linalg.Mat4[decimal.Decimal], string, Function, or []Cell. If the cell
// holds a different kind, the error is a *TagError.
func As[T any](c Cell) (T, error) {
	var r T
	var want Kind
	var ok bool
	switch p := any(&r).(type) {
	case *decimal.Decimal:
		want = KindScalar
		*p, ok = c.AsScalar()
	case *linalg.Vec4[decimal.Decimal]:
		want = KindVector
		*p, ok = c.AsVector()
	case *linalg.Quat[decimal.Decimal]:
		want = KindQuaternion
		*p, ok = c.AsQuaternion()
	case *linalg.Mat4[decimal.Decimal]:
		want = KindMatrix
		*p, ok = c.AsMatrix()
	case *string:
		want = KindString
		*p, ok = c.AsString()
	case *Function:
		want = KindFunction
		*p, ok = c.AsFunction()
	case *[]Cell:
		want = KindArray
		*p, ok = c.AsArray()
	default:
		panic("represent: As with unsupported type")
	}
	if !ok {
		var zero T
		return zero, &TagError{Want: want, Got: c.Kind()}
	}
	return r, nil
}

// Eval is a shortcut to create a context for an expression and evaluate it
// with the Decimal backing.
func Eval(text string, opts ...ContextOption) (Cell, error) {
	ctx, err := NewContext(text, opts...)
	if err != nil {
		return Cell{}, err
	}
	return ctx.Evaluate()
}

// EvalAs is a shortcut to evaluate an expression and extract a result of
// type T.
func EvalAs[T any](text string, opts ...ContextOption) (T, error) {
	c, err := Eval(text, opts...)
	if err != nil {
		var zero T
		return zero, err
	}
	return As[T](c)
}
