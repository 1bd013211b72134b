package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hdlcore/vcore/internal/ast"
	"github.com/hdlcore/vcore/internal/eval"
)

var (
	evalFunc string
	evalArgs []string
)

var evalCmd = &cobra.Command{
	Use:   "eval <fixture.yaml>",
	Short: "Fold a call to one scalar function in a fixture design tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runEval,
}

func init() {
	evalCmd.Flags().StringVar(&evalFunc, "func", "", "name of the function declared in the fixture to call")
	evalCmd.Flags().StringArrayVar(&evalArgs, "arg", nil, "integer literal argument, one per flag occurrence, in order")
	evalCmd.MarkFlagRequired("func")
	rootCmd.AddCommand(evalCmd)
}

func runEval(cmd *cobra.Command, args []string) error {
	unit, err := loadFixture(args[0])
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	fd, err := findFunc(unit, evalFunc)
	if err != nil {
		return err
	}

	call, err := buildCall(fd, evalArgs)
	if err != nil {
		return err
	}

	ctx := newContext("", args[0])
	result := eval.Eval(ctx, call)

	if ctx.HasErrors() {
		fmt.Fprint(os.Stderr, ctx.Render(!noColor))
		return fmt.Errorf("evaluation of %s failed", evalFunc)
	}

	fmt.Println(result)
	return nil
}

func findFunc(u *ast.Unit, name string) (*ast.FuncDecl, error) {
	for _, d := range u.Decls {
		if fd, ok := d.(*ast.FuncDecl); ok && fd.Name == name {
			return fd, nil
		}
	}
	return nil, fmt.Errorf("no function %q declared in fixture", name)
}

func buildCall(fd *ast.FuncDecl, rawArgs []string) (*ast.Call, error) {
	if len(rawArgs) != len(fd.Ports) {
		return nil, fmt.Errorf("%s expects %d argument(s), got %d", fd.Name, len(fd.Ports), len(rawArgs))
	}
	pos := ast.Position{Line: 1, Column: 1}
	args := make([]ast.Expr, len(rawArgs))
	for i, raw := range rawArgs {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("argument %d (%q): %w", i+1, raw, err)
		}
		args[i] = &ast.IntLit{NodePos: pos, Typ: fd.Ports[i].Typ, Value: v}
	}
	return &ast.Call{NodePos: pos, Typ: fd.ReturnType, Callee: fd, Args: args}, nil
}
