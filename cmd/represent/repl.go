package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/chzyer/readline"
	prtxt "github.com/jedib0t/go-pretty/v6/text"
)

var welcomeMessage = "Welcome to represent [V%s]\n"
var stdprompt = prtxt.FgGreen.Sprint("represent> ")

// repl reads lines interactively and hands everything which is not an
// editing command to a session.
type repl struct {
	s        *session
	readline *readline.Instance
	editmode string
}

func newREPL(s *session) *repl {
	r := &repl{s: s, editmode: "emacs"}
	histfile := fmt.Sprintf("%s/represent-repl-history.tmp", os.TempDir())
	rl, err := readline.NewEx(&readline.Config{
		Prompt:              stdprompt,
		HistoryFile:         histfile,
		AutoComplete:        r.completer(),
		InterruptPrompt:     "^C",
		EOFPrompt:           "exit",
		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	r.readline = rl
	s.out = rl.Stdout()
	return r
}

func (r *repl) completer() *readline.PrefixCompleter {
	vars := func(string) []string {
		names := make([]string, 0, len(r.s.vars))
		for name := range r.s.vars {
			names = append(names, name)
		}
		sort.Strings(names)
		return names
	}
	onoff := []readline.PrefixCompleterInterface{readline.PcItem("on"), readline.PcItem("off")}
	bs := []readline.PrefixCompleterInterface{readline.PcItem("all")}
	for _, b := range backings {
		bs = append(bs, readline.PcItem(b))
	}
	return readline.NewPrefixCompleter(
		readline.PcItem("help"),
		readline.PcItem("bye"),
		readline.PcItem("mode",
			readline.PcItem("vi"),
			readline.PcItem("emacs"),
		),
		readline.PcItem("setprompt"),
		readline.PcItem("let", readline.PcItemDynamic(vars)),
		readline.PcItem("vars"),
		readline.PcItem("backing", bs...),
		readline.PcItem("prec"),
		readline.PcItem("dump", onoff...),
		readline.PcItem("strict", onoff...),
	)
}

func (r *repl) displayCommands(out io.Writer) {
	fmt.Fprintf(out, welcomeMessage, version)
	io.WriteString(out, "\nThe following commands are available:\n\n")
	io.WriteString(out, "  help                 : print this message\n")
	io.WriteString(out, "  bye                  : quit\n")
	io.WriteString(out, "  mode [vi|emacs]      : display or set current editing mode\n")
	io.WriteString(out, "  setprompt [prompt]   : set current prompt [to default]\n")
	io.WriteString(out, "  let name = expr      : define a variable\n")
	io.WriteString(out, "  vars                 : list variables\n")
	io.WriteString(out, "  backing [name]       : display or set backing (decimal, float64, float32, all)\n")
	io.WriteString(out, "  prec [places]        : display or set decimal places\n")
	io.WriteString(out, "  dump on|off          : print storage, program, and RPN\n")
	io.WriteString(out, "  strict on|off        : make unsupported operands an error\n")
	io.WriteString(out, "\nAnything else is evaluated as an expression.\n")
}

// prompt runs the REPL until bye, EOF, or an interrupt on an empty line.
func (r *repl) prompt() {
	defer r.readline.Close()
	fmt.Fprintf(r.readline.Stderr(), welcomeMessage, version)
	for {
		line, err := r.readline.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		line = strings.TrimSpace(line)
		if r.execute(line) {
			break
		}
	}
}

// execute runs one line. If it returns true, the REPL should terminate.
func (r *repl) execute(line string) bool {
	words := strings.Fields(line)
	if len(words) == 0 {
		return false
	}
	switch words[0] {
	case "help":
		r.displayCommands(r.readline.Stderr())
	case "bye", "quit", "exit":
		io.WriteString(r.readline.Stderr(), "> goodbye!\n")
		return true
	case "mode":
		if len(words) > 1 {
			switch words[1] {
			case "vi":
				r.readline.SetVimMode(true)
				r.editmode = "vi"
				return false
			case "emacs":
				r.readline.SetVimMode(false)
				r.editmode = "emacs"
				return false
			}
		}
		fmt.Fprintf(r.readline.Stderr(), "> current input mode: %s\n", r.editmode)
	case "setprompt":
		p := strings.TrimSpace(strings.TrimPrefix(line, "setprompt"))
		if p == "" {
			p = stdprompt
		} else {
			p += " "
		}
		r.readline.SetPrompt(p)
	default:
		tracer().Debugf("interpreting %q", line)
		if err := r.s.interpret(line); err != nil {
			fmt.Fprintf(r.readline.Stderr(), "error: %v\n", err)
		}
	}
	return false
}

// filterInput blocks ctrl-z.
func filterInput(r rune) (rune, bool) {
	if r == readline.CharCtrlZ {
		return r, false
	}
	return r, true
}
