package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hdlcore/vcore/internal/eval"
)

var (
	traceFunc string
	traceArgs []string
)

var traceCmd = &cobra.Command{
	Use:   "trace <fixture.yaml>",
	Short: "Fold a call and print its fold-trace events",
	Long: `trace runs the same fold as "eval" but with fold-trace recording
turned on, then pretty-prints every recorded event: one line for the fold
of the requested call, and a highlighted line for every debug warning
emitted along the way (e.g. the iteration-cap guard tripping on a runaway
loop).

The evaluator emits debug warnings only when VCORE_EVAL_DEBUG is set (e.g.
VCORE_EVAL_DEBUG=1); without it, no warnings are emitted or recorded.`,
	Args: cobra.ExactArgs(1),
	RunE: runTrace,
}

func init() {
	traceCmd.Flags().StringVar(&traceFunc, "func", "", "name of the function declared in the fixture to call")
	traceCmd.Flags().StringArrayVar(&traceArgs, "arg", nil, "integer literal argument, one per flag occurrence, in order")
	traceCmd.MarkFlagRequired("func")
	rootCmd.AddCommand(traceCmd)
}

func runTrace(cmd *cobra.Command, args []string) error {
	unit, err := loadFixture(args[0])
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	fd, err := findFunc(unit, traceFunc)
	if err != nil {
		return err
	}

	call, err := buildCall(fd, traceArgs)
	if err != nil {
		return err
	}

	ctx := newContext("", args[0])
	ctx.EnableTrace()

	result := eval.Eval(ctx, call)

	for i, ev := range ctx.Trace().Events() {
		if w := ev.Get("warning"); w.Exists() {
			printWarn("  [%d] %s: %s\n", i, ev.Get("pos").String(), w.String())
			continue
		}
		fmt.Printf("  [%d] %s: %s folded=%v -> %s\n", i, ev.Get("pos").String(),
			ev.Get("callee").String(), ev.Get("folded").Bool(), ev.Get("result").String())
	}

	if ctx.HasErrors() {
		fmt.Fprint(os.Stderr, ctx.Render(!noColor))
		return fmt.Errorf("evaluation of %s failed", traceFunc)
	}

	fmt.Println("result:", result)
	return nil
}

func printWarn(format string, args ...any) {
	if noColor {
		fmt.Printf(format, args...)
		return
	}
	color.New(color.FgYellow).Printf(format, args...)
}
