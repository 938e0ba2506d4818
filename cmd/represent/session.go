package main

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/npillmayer/schuko"
	"github.com/shopspring/decimal"

	"github.com/zephyrtronium/represent"
)

// backings are the backing names a session accepts, in display order.
var backings = []string{"decimal", "float64", "float32"}

// session is the state shared by one-shot evaluation and the REPL.
type session struct {
	vars    map[string]represent.Cell
	prec    int32
	strict  bool
	backing string
	dump    bool
	out     io.Writer
}

// newSession creates a session from configuration and --given definitions.
func newSession(konf schuko.Configuration, given []string, out io.Writer) (*session, error) {
	s := session{
		vars:    make(map[string]represent.Cell),
		prec:    represent.DefaultPrec,
		backing: "all",
		out:     out,
	}
	if konf != nil {
		if konf.IsSet("prec") {
			s.prec = int32(konf.GetInt("prec"))
		}
		if b := konf.GetString("backing"); b != "" {
			s.backing = b
		}
		s.strict = konf.GetBool("strict")
		s.dump = konf.GetBool("dump")
	}
	if err := s.setBacking(s.backing); err != nil {
		return nil, err
	}
	if s.prec < 0 {
		return nil, fmt.Errorf("negative precision %d", s.prec)
	}
	for _, g := range given {
		name, src, err := parseGiven(g)
		if err != nil {
			return nil, err
		}
		if err := s.define(name, src); err != nil {
			return nil, fmt.Errorf("defining %s: %w", name, err)
		}
	}
	return &s, nil
}

var nameRE = regexp.MustCompile(`^[A-Za-z_](?:[A-Za-z0-9_-]*[A-Za-z0-9_])?$`)

// parseGiven splits a name=expression definition.
func parseGiven(g string) (name, src string, err error) {
	k := strings.IndexByte(g, '=')
	if k < 0 {
		return "", "", fmt.Errorf("definition %q has no '='", g)
	}
	name, src = strings.TrimSpace(g[:k]), strings.TrimSpace(g[k+1:])
	if !nameRE.MatchString(name) {
		return "", "", fmt.Errorf("invalid variable name %q", name)
	}
	if src == "" {
		return "", "", fmt.Errorf("definition of %s is empty", name)
	}
	return name, src, nil
}

func (s *session) setBacking(b string) error {
	b = strings.ToLower(b)
	if b == "all" {
		s.backing = b
		return nil
	}
	for _, v := range backings {
		if b == v {
			s.backing = b
			return nil
		}
	}
	return fmt.Errorf("unknown backing %q", b)
}

func (s *session) options() []represent.ContextOption {
	opts := []represent.ContextOption{represent.Prec(s.prec), represent.SetVars(s.vars)}
	if s.strict {
		opts = append(opts, represent.Strict())
	}
	return opts
}

// define evaluates src with the decimal backing and binds the result to
// name for later expressions.
func (s *session) define(name, src string) error {
	r, err := represent.Eval(src, s.options()...)
	if err != nil {
		return err
	}
	s.vars[name] = r
	tracer().Debugf("%s = %v", name, r)
	return nil
}

// result is the outcome of evaluating with one backing.
type result struct {
	backing string
	value   represent.Cell
	err     error
}

func (s *session) evaluate(ctx *represent.Context) []result {
	var r []result
	for _, b := range backings {
		if s.backing != "all" && s.backing != b {
			continue
		}
		var v represent.Cell
		var err error
		switch b {
		case "decimal":
			v, err = ctx.Evaluate()
		case "float64":
			v, err = represent.EvaluateWith[float64](ctx, represent.Float64{})
		case "float32":
			v, err = represent.EvaluateWith[float32](ctx, represent.Float32{})
		}
		r = append(r, result{backing: b, value: v, err: err})
	}
	return r
}

// eval evaluates an expression and writes its results. With a single
// backing, an evaluation error is returned. With all backings, errors are
// written in the table, and an error is returned only if every backing
// failed.
func (s *session) eval(src string) error {
	ctx, err := represent.NewContext(src, s.options()...)
	if err != nil {
		return err
	}
	if s.dump {
		if err := s.dumpContext(ctx); err != nil {
			return err
		}
	}
	results := s.evaluate(ctx)
	if len(results) == 1 {
		if results[0].err != nil {
			return results[0].err
		}
		fmt.Fprintln(s.out, results[0].value)
		return nil
	}
	failed := 0
	for _, r := range results {
		if r.err != nil {
			failed++
		}
	}
	if failed == len(results) {
		return results[0].err
	}
	s.renderResults(results)
	return nil
}

func (s *session) renderResults(results []result) {
	var ref decimal.Decimal
	haveRef := false
	if results[0].backing == "decimal" && results[0].err == nil {
		ref, haveRef = results[0].value.AsScalar()
	}
	t := table.NewWriter()
	t.SetOutputMirror(s.out)
	t.AppendHeader(table.Row{"Backing", "Result", "Difference"})
	for _, r := range results {
		if r.err != nil {
			t.AppendRow(table.Row{r.backing, "error: " + r.err.Error(), ""})
			continue
		}
		diff := ""
		if x, ok := r.value.AsScalar(); ok && haveRef && r.backing != "decimal" {
			diff = x.Sub(ref).String()
		}
		t.AppendRow(table.Row{r.backing, r.value.String(), diff})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}

// dumpContext writes the storage, symbols, program, and RPN of a context.
func (s *session) dumpContext(ctx *represent.Context) error {
	names := make(map[uint32][]string)
	for name, slot := range ctx.Symbols() {
		names[slot] = append(names[slot], name)
	}
	st := table.NewWriter()
	st.SetOutputMirror(s.out)
	st.SetTitle("Storage")
	st.AppendHeader(table.Row{"Slot", "Kind", "Value", "Names"})
	for i, c := range ctx.Storage() {
		n := names[uint32(i)]
		sort.Strings(n)
		st.AppendRow(table.Row{i, c.Kind(), c.String(), strings.Join(n, ", ")})
	}
	st.SetStyle(table.StyleLight)
	st.Render()

	rpn, err := ctx.RPN()
	if err != nil {
		return err
	}
	s.renderTokens("Program", ctx.Program())
	s.renderTokens("RPN", rpn)
	return nil
}

func (s *session) renderTokens(title string, ts represent.TokenStream) {
	t := table.NewWriter()
	t.SetOutputMirror(s.out)
	t.SetTitle(title)
	t.AppendHeader(table.Row{"#", "Token"})
	for i, tok := range ts.Tokens() {
		t.AppendRow(table.Row{i, tok.String()})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}

// interpret handles one line of interactive input which is not a REPL
// command: a session setting, a definition, or an expression.
func (s *session) interpret(line string) error {
	cmd, rest := line, ""
	if k := strings.IndexAny(line, " \t"); k >= 0 {
		cmd, rest = line[:k], strings.TrimSpace(line[k+1:])
	}
	switch cmd {
	case "let":
		name, src, err := parseGiven(rest)
		if err != nil {
			return err
		}
		return s.define(name, src)
	case "vars":
		s.renderVars()
		return nil
	case "backing":
		if rest == "" {
			fmt.Fprintln(s.out, s.backing)
			return nil
		}
		return s.setBacking(rest)
	case "prec":
		if rest == "" {
			fmt.Fprintln(s.out, s.prec)
			return nil
		}
		p, err := strconv.ParseInt(rest, 10, 32)
		if err != nil || p < 0 {
			return fmt.Errorf("invalid precision %q", rest)
		}
		s.prec = int32(p)
		return nil
	case "dump", "strict":
		v, err := onOff(rest)
		if err != nil {
			return err
		}
		if cmd == "dump" {
			s.dump = v
		} else {
			s.strict = v
		}
		return nil
	}
	return s.eval(line)
}

func onOff(s string) (bool, error) {
	switch s {
	case "on", "true", "1":
		return true, nil
	case "off", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, not %q", s)
}

func (s *session) renderVars() {
	names := make([]string, 0, len(s.vars))
	for name := range s.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	t := table.NewWriter()
	t.SetOutputMirror(s.out)
	t.AppendHeader(table.Row{"Name", "Kind", "Value"})
	for _, name := range names {
		v := s.vars[name]
		t.AppendRow(table.Row{name, v.Kind(), v.String()})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
}
