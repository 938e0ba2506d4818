// Command represent evaluates expressions with arbitrary-precision decimals
// and with machine floats, and shows how the results differ.
package main

import (
	"os"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/represent"
)

const version = "0.1"

// rootCmd is the only command.
var rootCmd = &cobra.Command{
	Use:   "represent [flags] expression...",
	Short: "Evaluate expressions with decimal and machine float numbers",
	Long: `represent evaluates an expression with arbitrary-precision decimals and
with float64 and float32 machine numbers, and prints each result.

The arguments are joined into one expression. Values are scalars, vectors
like [1,2,3,4], quaternions like q[1,0,0,0], 4x4 matrices, strings in
backticks, and arrays like {1,2,3}. With -i, or with no arguments, represent
reads expressions interactively.`,
	Args:         cobra.ArbitraryArgs,
	RunE:         run,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		exit(2)
	}
	exit(0)
}

func init() {
	cobra.OnInitialize(loadConfig)
	flags := rootCmd.PersistentFlags()
	flags.BoolP("interactive", "i", false, "run an interactive session")
	flags.StringArrayP("given", "g", nil, "name=expression variable definition (any number of times)")
	flags.IntP("prec", "p", represent.DefaultPrec, "decimal places kept by division and functions")
	flags.StringP("backing", "b", "all", "backing to evaluate with: decimal, float64, float32, or all")
	flags.Bool("strict", false, "make operators on unsupported operands an error")
	flags.Bool("dump", false, "print the storage, program, and RPN of each expression")
	flags.String("logfile", "stderr", "URL of log output location")
	flags.String("tracelevel", "Error", "trace level: Debug, Info, or Error")
}

func run(cmd *cobra.Command, args []string) error {
	given, err := cmd.Flags().GetStringArray("given")
	if err != nil {
		return err
	}
	s, err := newSession(config, given, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	interactive := config.Koanf().Bool("interactive") || len(args) == 0
	if len(args) > 0 {
		src := strings.Join(args, " ")
		tracer().Debugf("evaluating %q", src)
		if err := s.eval(src); err != nil {
			if !interactive {
				return err
			}
			cmd.PrintErrln("error:", err)
		}
	}
	if interactive {
		newREPL(s).prompt()
	}
	return nil
}

// exit exits the program.
func exit(code int) {
	os.Exit(code)
}

// tracer traces with key 'cli'.
func tracer() tracing.Trace {
	return tracing.Select("cli")
}
