package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/hdlcore/vcore/internal/ast"
	"github.com/hdlcore/vcore/internal/bounds"
	"github.com/hdlcore/vcore/internal/fixture"
)

var boundsCheckCmd = &cobra.Command{
	Use:   "bounds-check [fixture.yaml ...]",
	Short: "Run the bounds checker over one or more fixture design trees",
	Long: `bounds-check runs the bounds checker over the fixture files named on
the command line. With no arguments, it falls back to every *.yaml file
under .vcore.yaml's configured fixtureDirs.`,
	Args: cobra.ArbitraryArgs,
	RunE: runBoundsCheck,
}

func init() {
	rootCmd.AddCommand(boundsCheckCmd)
}

func runBoundsCheck(cmd *cobra.Command, args []string) error {
	paths, err := resolveFixturePaths(args)
	if err != nil {
		return err
	}

	failed := 0
	for _, path := range paths {
		unit, err := loadFixture(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		ctx := newContext("", path)
		bounds.Check(ctx, unit)

		if ctx.HasErrors() || len(ctx.Diagnostics()) > 0 {
			fmt.Fprint(os.Stderr, ctx.Render(!noColor))
			fmt.Fprintln(os.Stderr)
		}
		if ctx.HasErrors() {
			failed++
		} else if verbose {
			colorGreen("%s: clean (%d elided array references)\n", path, countElided(unit))
		}
	}
	if failed > 0 {
		return fmt.Errorf("bounds-check failed for %d of %d file(s)", failed, len(paths))
	}
	return nil
}

// resolveFixturePaths returns args unchanged when non-empty; otherwise it
// scans cfg.FixtureDirs for *.yaml fixtures, per .vcore.yaml's fixtureDirs.
func resolveFixturePaths(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if cfg == nil || len(cfg.FixtureDirs) == 0 {
		return nil, fmt.Errorf("no fixture files given and no fixtureDirs configured in .vcore.yaml")
	}

	var paths []string
	for _, dir := range cfg.FixtureDirs {
		matches, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
		if err != nil {
			return nil, fmt.Errorf("fixtureDirs entry %q: %w", dir, err)
		}
		paths = append(paths, matches...)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no *.yaml fixtures found under fixtureDirs %v", cfg.FixtureDirs)
	}
	return paths, nil
}

func loadFixture(path string) (unit *ast.Unit, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed fixture: %v", r)
		}
	}()
	data, readErr := os.ReadFile(path)
	if readErr != nil {
		return nil, readErr
	}
	return fixture.Build(data), nil
}

func countElided(u *ast.Unit) int {
	n := 0
	var walk func(e ast.Expr)
	walk = func(e ast.Expr) {
		if ar, ok := e.(*ast.ArrayRef); ok && ar.ElideBounds {
			n++
		}
	}
	for _, d := range u.Decls {
		fd, ok := d.(*ast.FuncDecl)
		if !ok || fd.Body == nil {
			continue
		}
		for _, s := range fd.Body.Stmts {
			if ret, ok := s.(*ast.Return); ok {
				walk(ret.Value)
			}
		}
	}
	return n
}

func colorGreen(format string, args ...any) {
	if noColor {
		fmt.Fprintf(os.Stdout, format, args...)
		return
	}
	color.New(color.FgGreen).Fprintf(os.Stdout, format, args...)
}
