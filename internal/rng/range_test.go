package rng

import (
	"testing"

	"github.com/hdlcore/vcore/internal/ast"
)

func lit(v int64) *ast.IntLit { return &ast.IntLit{Value: v} }

func foldInt(e ast.Expr) (int64, bool) {
	l, ok := e.(*ast.IntLit)
	if !ok {
		return 0, false
	}
	return l.Value, true
}

func TestBoundsAscending(t *testing.T) {
	r := &ast.Range{Left: lit(0), Right: lit(7), Dir: ast.To}
	low, high, ok := Bounds(r, foldInt)
	if !ok || low != 0 || high != 7 {
		t.Fatalf("Bounds = (%d, %d, %v)", low, high, ok)
	}
}

func TestBoundsDescending(t *testing.T) {
	r := &ast.Range{Left: lit(7), Right: lit(0), Dir: ast.Downto}
	low, high, ok := Bounds(r, foldInt)
	if !ok || low != 0 || high != 7 {
		t.Fatalf("Bounds = (%d, %d, %v)", low, high, ok)
	}
}

func TestLengthNullRangeIsZero(t *testing.T) {
	r := &ast.Range{Left: lit(5), Right: lit(2), Dir: ast.To}
	n, ok := Length(r, foldInt)
	if !ok || n != 0 {
		t.Fatalf("Length = (%d, %v), want (0, true)", n, ok)
	}
}

func TestIsNullUnknownWhenUnfolded(t *testing.T) {
	r := &ast.Range{Left: &ast.Ref{}, Right: lit(0), Dir: ast.To}
	_, known := IsNull(r, foldInt)
	if known {
		t.Fatal("IsNull should report unknown when an endpoint does not fold")
	}
}

func TestIsNullDowntoDirection(t *testing.T) {
	r := &ast.Range{Left: lit(0), Right: lit(7), Dir: ast.Downto}
	isNull, known := IsNull(r, foldInt)
	if !known || !isNull {
		t.Fatalf("0 downto 7 should be statically null, got (%v, %v)", isNull, known)
	}
}
