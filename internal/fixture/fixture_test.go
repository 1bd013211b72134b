package fixture

import (
	"testing"

	"github.com/hdlcore/vcore/internal/ast"
)

const incrementFixture = `
unit: counter
types:
  - name: nibble
    kind: integer
    range: {left: 0, right: 15}
funcs:
  - name: increment
    ports:
      - {name: x, type: nibble}
    return: nibble
    stmts:
      - kind: return
        value:
          kind: call
          builtin: add
          type: nibble
          args:
            - {kind: ref, name: x}
            - {kind: int, type: nibble, value: 1}
`

func TestBuildDecodesFunctionFixture(t *testing.T) {
	unit := Build([]byte(incrementFixture))
	if unit.Name != "counter" {
		t.Fatalf("unit name = %q", unit.Name)
	}
	if len(unit.Decls) != 1 {
		t.Fatalf("expected one decl, got %d", len(unit.Decls))
	}
	fd, ok := unit.Decls[0].(*ast.FuncDecl)
	if !ok {
		t.Fatalf("decl 0 = %T, want *ast.FuncDecl", unit.Decls[0])
	}
	if fd.Name != "increment" || len(fd.Ports) != 1 || fd.Ports[0].Name != "x" {
		t.Fatalf("unexpected FuncDecl shape: %+v", fd)
	}
	ret, ok := fd.Body.Stmts[0].(*ast.Return)
	if !ok {
		t.Fatalf("body stmt 0 = %T, want *ast.Return", fd.Body.Stmts[0])
	}
	call, ok := ret.Value.(*ast.Call)
	if !ok || call.Callee.Builtin != "add" {
		t.Fatalf("return value = %+v, want an add call", ret.Value)
	}
}

const enumAndArrayFixture = `
unit: traffic
enums:
  - name: color
    literals: [red, amber, green]
types:
  - name: byte_vec
    kind: array
    elem: color
    dims:
      - {left: 0, right: 3}
consts:
  - name: all_red
    type: byte_vec
    value:
      kind: aggregate
      type: byte_vec
      assocs:
        - {kind: others, value: {kind: enumlit, type: color, value: red}}
`

func TestBuildResolvesEnumAndArrayTypes(t *testing.T) {
	unit := Build([]byte(enumAndArrayFixture))
	cd, ok := unit.Decls[0].(*ast.ConstDecl)
	if !ok {
		t.Fatalf("decl 0 = %T, want *ast.ConstDecl", unit.Decls[0])
	}
	arrType, ok := cd.Typ.(*ast.ConstrainedArrayType)
	if !ok {
		t.Fatalf("const type = %T, want *ast.ConstrainedArrayType", cd.Typ)
	}
	if _, ok := arrType.Elem.(*ast.EnumType); !ok {
		t.Fatalf("array elem type = %T, want *ast.EnumType", arrType.Elem)
	}
	agg, ok := cd.Value.(*ast.Aggregate)
	if !ok || len(agg.Assocs) != 1 || agg.Assocs[0].Kind != ast.Others {
		t.Fatalf("const value = %+v, want a single others association", cd.Value)
	}
}

func TestBuildPanicsOnUnknownTypeReference(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected Build to panic on a dangling type reference")
		}
	}()
	Build([]byte(`
unit: broken
consts:
  - name: x
    type: does_not_exist
    value: {kind: int, value: 1}
`))
}

func TestBuildPanicsOnInvalidYAML(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected Build to panic on malformed YAML")
		}
	}()
	Build([]byte("unit: [this is not a valid document"))
}
