// Package fixture decodes a small YAML schema into internal/ast design
// trees, standing in for "the front-end framework" of spec.md §6: it is
// not a VHDL lexer or parser, carries no source-recovery logic, and
// treats a malformed document as a programmer error rather than a
// diagnosable one, matching spec.md §7's stance on internal-consistency
// breaches. It exists for tests and cmd/vcore's demo subcommands.
package fixture

import (
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/hdlcore/vcore/internal/ast"
)

// doc is the top-level YAML shape. Field order in the source file matters
// for types and enums, since a later type may reference an earlier one by
// name; a map would lose that order.
type doc struct {
	Unit    string           `yaml:"unit"`
	Types   []map[string]any `yaml:"types"`
	Enums   []map[string]any `yaml:"enums"`
	Consts  []map[string]any `yaml:"consts"`
	Vars    []map[string]any `yaml:"vars"`
	Signals []map[string]any `yaml:"signals"`
	Funcs   []map[string]any `yaml:"funcs"`
	Procs   []map[string]any `yaml:"procs"`
}

// scope resolves identifiers while building a tree: the registries fed by
// top-level declarations, plus any locals/ports bound while building one
// function or procedure body.
type scope struct {
	types   map[string]ast.Type
	decls   map[string]ast.Decl
	locals  map[string]ast.Decl
	builtin map[string]*ast.FuncDecl
}

func newScope() *scope {
	return &scope{
		types:   make(map[string]ast.Type),
		decls:   make(map[string]ast.Decl),
		locals:  make(map[string]ast.Decl),
		builtin: make(map[string]*ast.FuncDecl),
	}
}

func fail(format string, args ...any) {
	panic(fmt.Sprintf("fixture: "+format, args...))
}

// Build decodes data into a full ast.Unit. It panics on any structural
// problem: an unknown type reference, a malformed node shape, or a
// dangling identifier, since a broken fixture is always a programmer
// error, never a diagnosable one.
func Build(data []byte) *ast.Unit {
	var d doc
	if err := yaml.Unmarshal(data, &d); err != nil {
		fail("invalid YAML: %v", err)
	}

	sc := newScope()
	pos := ast.Position{Line: 1, Column: 1}

	for _, e := range d.Enums {
		sc.types[str(e, "name")] = buildEnumType(e)
	}
	for _, t := range d.Types {
		name := str(t, "name")
		sc.types[name] = buildType(sc, t)
	}

	var decls []ast.Decl
	for _, c := range d.Consts {
		decl := buildConstDecl(sc, c)
		sc.decls[decl.Name] = decl
		decls = append(decls, decl)
	}
	for _, v := range d.Vars {
		decl := buildVarDecl(sc, v)
		sc.decls[decl.Name] = decl
		decls = append(decls, decl)
	}
	for _, s := range d.Signals {
		decl := buildSignalDecl(sc, s)
		sc.decls[decl.Name] = decl
		decls = append(decls, decl)
	}
	for _, f := range d.Funcs {
		decl := buildFuncDecl(sc, f)
		sc.decls[decl.Name] = decl
		decls = append(decls, decl)
	}
	for _, p := range d.Procs {
		decl := buildProcDecl(sc, p)
		sc.decls[decl.Name] = decl
		decls = append(decls, decl)
	}

	return &ast.Unit{NodePos: pos, Name: d.Unit, Decls: decls}
}

func str(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		fail("field %q is not a string", key)
	}
	return s
}

func strOpt(m map[string]any, key, def string) string {
	if _, ok := m[key]; !ok {
		return def
	}
	return str(m, key)
}

func mapField(m map[string]any, key string) map[string]any {
	v, ok := m[key]
	if !ok {
		fail("missing field %q", key)
	}
	sub, ok := v.(map[string]any)
	if !ok {
		fail("field %q is not a mapping", key)
	}
	return sub
}

func listField(m map[string]any, key string) []any {
	v, ok := m[key]
	if !ok {
		return nil
	}
	l, ok := v.([]any)
	if !ok {
		fail("field %q is not a list", key)
	}
	return l
}

func asMap(v any) map[string]any {
	m, ok := v.(map[string]any)
	if !ok {
		fail("expected a mapping node, got %T", v)
	}
	return m
}

func intField(m map[string]any, key string) int64 {
	v, ok := m[key]
	if !ok {
		fail("missing field %q", key)
	}
	switch n := v.(type) {
	case int:
		return int64(n)
	case int64:
		return n
	case uint64:
		return int64(n)
	case float64:
		return int64(n)
	default:
		fail("field %q is not a number", key)
		return 0
	}
}

func buildDirection(m map[string]any) ast.Direction {
	switch strOpt(m, "dir", "to") {
	case "downto":
		return ast.Downto
	default:
		return ast.To
	}
}

func buildRange(sc *scope, m map[string]any) *ast.Range {
	pos := ast.Position{Line: 1, Column: 1}
	return &ast.Range{
		NodePos: pos,
		Left:    buildIntBoundExpr(sc, m, "left"),
		Right:   buildIntBoundExpr(sc, m, "right"),
		Dir:     buildDirection(m),
	}
}

// buildIntBoundExpr accepts either a bare number (the common case for a
// type's own range) or a full expression node, for ranges that need to
// reference a constant.
func buildIntBoundExpr(sc *scope, m map[string]any, key string) ast.Expr {
	v, ok := m[key]
	if !ok {
		fail("missing field %q", key)
	}
	pos := ast.Position{Line: 1, Column: 1}
	switch n := v.(type) {
	case int:
		return &ast.IntLit{NodePos: pos, Value: int64(n)}
	case int64:
		return &ast.IntLit{NodePos: pos, Value: n}
	case uint64:
		return &ast.IntLit{NodePos: pos, Value: int64(n)}
	case float64:
		return &ast.IntLit{NodePos: pos, Value: int64(n)}
	case map[string]any:
		return buildExpr(sc, n)
	default:
		fail("field %q has unsupported shape %T", key, v)
		return nil
	}
}

func buildType(sc *scope, m map[string]any) ast.Type {
	pos := ast.Position{Line: 1, Column: 1}
	name := str(m, "name")
	switch str(m, "kind") {
	case "integer":
		return &ast.IntegerType{NodePos: pos, Name: name, Range: buildRange(sc, mapField(m, "range"))}
	case "real":
		return &ast.RealType{NodePos: pos, Name: name}
	case "array":
		elem := resolveType(sc, str(m, "elem"))
		var dims []*ast.Range
		for _, raw := range listField(m, "dims") {
			dims = append(dims, buildRange(sc, asMap(raw)))
		}
		if len(dims) == 0 {
			fail("array type %q needs at least one dimension", name)
		}
		return &ast.ConstrainedArrayType{NodePos: pos, Name: name, Dims: dims, Elem: elem}
	case "uarray":
		elem := resolveType(sc, str(m, "elem"))
		var indexTypes []ast.Type
		for _, raw := range listField(m, "index_types") {
			indexTypes = append(indexTypes, resolveType(sc, raw.(string)))
		}
		return &ast.UnconstrainedArrayType{NodePos: pos, Name: name, IndexTypes: indexTypes, Elem: elem}
	case "subtype":
		base := resolveType(sc, str(m, "base"))
		var constraint *ast.Range
		if _, ok := m["range"]; ok {
			constraint = buildRange(sc, mapField(m, "range"))
		}
		return &ast.SubtypeType{NodePos: pos, Name: name, Base: base, Constraint: constraint}
	case "record":
		var fields []*ast.RecordField
		for _, raw := range listField(m, "fields") {
			fm := asMap(raw)
			fields = append(fields, &ast.RecordField{NodePos: pos, Name: str(fm, "name"), Typ: resolveType(sc, str(fm, "type"))})
		}
		return &ast.RecordType{NodePos: pos, Name: name, Fields: fields}
	default:
		fail("unknown type kind %q for type %q", str(m, "kind"), name)
		return nil
	}
}

func buildEnumType(m map[string]any) *ast.EnumType {
	pos := ast.Position{Line: 1, Column: 1}
	et := &ast.EnumType{NodePos: pos, Name: str(m, "name")}
	for i, raw := range listField(m, "literals") {
		name, ok := raw.(string)
		if !ok {
			fail("enum literal %d is not a string", i)
		}
		et.Literals = append(et.Literals, &ast.EnumLit{NodePos: pos, Name: name, Index: i, Parent: et})
	}
	return et
}

func resolveType(sc *scope, name string) ast.Type {
	t, ok := sc.types[name]
	if !ok {
		fail("unknown type %q", name)
	}
	return t
}

func resolveDecl(sc *scope, name string) ast.Decl {
	if d, ok := sc.locals[name]; ok {
		return d
	}
	if d, ok := sc.decls[name]; ok {
		return d
	}
	fail("unknown identifier %q", name)
	return nil
}

func buildConstDecl(sc *scope, m map[string]any) *ast.ConstDecl {
	pos := ast.Position{Line: 1, Column: 1}
	return &ast.ConstDecl{
		NodePos: pos,
		Name:    str(m, "name"),
		Typ:     resolveType(sc, str(m, "type")),
		Value:   buildExpr(sc, mapField(m, "value")),
	}
}

func buildVarDecl(sc *scope, m map[string]any) *ast.VarDecl {
	pos := ast.Position{Line: 1, Column: 1}
	vd := &ast.VarDecl{NodePos: pos, Name: str(m, "name"), Typ: resolveType(sc, str(m, "type"))}
	if _, ok := m["value"]; ok {
		vd.Value = buildExpr(sc, mapField(m, "value"))
	}
	return vd
}

func buildSignalDecl(sc *scope, m map[string]any) *ast.SignalDecl {
	pos := ast.Position{Line: 1, Column: 1}
	sd := &ast.SignalDecl{NodePos: pos, Name: str(m, "name"), Typ: resolveType(sc, str(m, "type"))}
	if _, ok := m["value"]; ok {
		sd.Value = buildExpr(sc, mapField(m, "value"))
	}
	return sd
}

func buildMode(s string) ast.Mode {
	switch s {
	case "out":
		return ast.ModeOut
	case "inout":
		return ast.ModeInout
	default:
		return ast.ModeIn
	}
}

func buildPorts(sc *scope, m map[string]any) []*ast.Port {
	pos := ast.Position{Line: 1, Column: 1}
	var ports []*ast.Port
	for _, raw := range listField(m, "ports") {
		pm := asMap(raw)
		ports = append(ports, &ast.Port{
			NodePos: pos,
			Name:    str(pm, "name"),
			Typ:     resolveType(sc, str(pm, "type")),
			Mode:    buildMode(strOpt(pm, "mode", "in")),
		})
	}
	return ports
}

func buildFuncDecl(sc *scope, m map[string]any) *ast.FuncDecl {
	pos := ast.Position{Line: 1, Column: 1}
	fd := &ast.FuncDecl{NodePos: pos, Name: str(m, "name")}
	fd.Ports = buildPorts(sc, m)
	if rt, ok := m["return"]; ok {
		fd.ReturnType = resolveType(sc, rt.(string))
	}
	if b, ok := str(m, "builtin"), m["builtin"] != nil; ok {
		fd.Builtin = b
		return fd
	}
	fd.Body = buildFuncBody(sc, fd.Ports, m)
	return fd
}

func buildProcDecl(sc *scope, m map[string]any) *ast.ProcDecl {
	pos := ast.Position{Line: 1, Column: 1}
	pd := &ast.ProcDecl{NodePos: pos, Name: str(m, "name")}
	pd.Ports = buildPorts(sc, m)
	pd.Body = buildFuncBody(sc, pd.Ports, m)
	return pd
}

func buildFuncBody(sc *scope, ports []*ast.Port, m map[string]any) *ast.FuncBody {
	pos := ast.Position{Line: 1, Column: 1}

	saved := sc.locals
	sc.locals = make(map[string]ast.Decl, len(saved)+len(ports))
	for k, v := range saved {
		sc.locals[k] = v
	}
	for _, p := range ports {
		sc.locals[p.Name] = p
	}
	defer func() { sc.locals = saved }()

	var decls []ast.Decl
	for _, raw := range listField(m, "decls") {
		dm := asMap(raw)
		vd := buildVarDecl(sc, dm)
		sc.locals[vd.Name] = vd
		decls = append(decls, vd)
	}

	var stmts []ast.Stmt
	for _, raw := range listField(m, "stmts") {
		stmts = append(stmts, buildStmt(sc, asMap(raw)))
	}

	return &ast.FuncBody{NodePos: pos, Decls: decls, Stmts: stmts}
}

func buildExpr(sc *scope, m map[string]any) ast.Expr {
	pos := ast.Position{Line: 1, Column: 1}
	kind := str(m, "kind")
	switch kind {
	case "int":
		typ := ast.Type(nil)
		if t, ok := m["type"]; ok {
			typ = resolveType(sc, t.(string))
		}
		return &ast.IntLit{NodePos: pos, Typ: typ, Value: intField(m, "value")}
	case "real":
		typ := ast.Type(nil)
		if t, ok := m["type"]; ok {
			typ = resolveType(sc, t.(string))
		}
		v, _ := m["value"].(float64)
		return &ast.RealLit{NodePos: pos, Typ: typ, Value: v}
	case "string":
		typ := ast.Type(nil)
		if t, ok := m["type"]; ok {
			typ = resolveType(sc, t.(string))
		}
		return &ast.StringLit{NodePos: pos, Typ: typ, Value: str(m, "value")}
	case "enumlit":
		et, ok := resolveType(sc, str(m, "type")).(*ast.EnumType)
		if !ok {
			fail("type %q is not an enumeration", str(m, "type"))
		}
		name := str(m, "value")
		for _, lit := range et.Literals {
			if lit.Name == name {
				return &ast.EnumLitRef{NodePos: pos, Decl: lit}
			}
		}
		fail("unknown enum literal %q in type %q", name, et.Name)
		return nil
	case "ref":
		return &ast.Ref{NodePos: pos, Decl: resolveDecl(sc, str(m, "name"))}
	case "call":
		return buildCall(sc, m)
	case "proccall":
		decl, ok := resolveDecl(sc, str(m, "name")).(*ast.ProcDecl)
		if !ok {
			fail("%q is not a procedure", str(m, "name"))
		}
		var args []ast.Expr
		for _, raw := range listField(m, "args") {
			args = append(args, buildExpr(sc, asMap(raw)))
		}
		return &ast.ProcCall{NodePos: pos, Callee: decl, Args: args}
	case "typeconv":
		return &ast.TypeConv{NodePos: pos, Target: resolveType(sc, str(m, "target")), Arg: buildExpr(sc, mapField(m, "arg"))}
	case "arrayref":
		var indices []ast.Expr
		for _, raw := range listField(m, "indices") {
			indices = append(indices, buildExpr(sc, asMap(raw)))
		}
		value := buildExpr(sc, mapField(m, "value"))
		typ := ast.ElemType(value.ExprType())
		return &ast.ArrayRef{NodePos: pos, Typ: typ, Value: value, Indices: indices}
	case "arrayslice":
		value := buildExpr(sc, mapField(m, "value"))
		return &ast.ArraySlice{NodePos: pos, Typ: value.ExprType(), Value: value, Range: buildRange(sc, mapField(m, "range"))}
	case "aggregate":
		typ := resolveType(sc, str(m, "type"))
		agg := &ast.Aggregate{NodePos: pos, Typ: typ, Unconstrained: ast.IsUnconstrained(typ)}
		for _, raw := range listField(m, "assocs") {
			agg.Assocs = append(agg.Assocs, buildAggAssoc(sc, asMap(raw)))
		}
		return agg
	case "attrref":
		ar := &ast.AttrRef{NodePos: pos, Prefix: buildExpr(sc, mapField(m, "prefix")), Kind: buildAttrKind(str(m, "attr"))}
		if _, ok := m["dim"]; ok {
			ar.Dim = buildExpr(sc, mapField(m, "dim"))
		}
		ar.Typ = ar.Prefix.ExprType()
		return ar
	default:
		fail("unknown expression kind %q", kind)
		return nil
	}
}

func buildAttrKind(s string) ast.AttrKind {
	switch s {
	case "length":
		return ast.AttrLength
	case "low":
		return ast.AttrLow
	case "high":
		return ast.AttrHigh
	case "left":
		return ast.AttrLeft
	case "right":
		return ast.AttrRight
	default:
		return ast.AttrOther
	}
}

func buildAggAssoc(sc *scope, m map[string]any) *ast.AggAssoc {
	pos := ast.Position{Line: 1, Column: 1}
	a := &ast.AggAssoc{NodePos: pos, Value: buildExpr(sc, mapField(m, "value"))}
	switch str(m, "kind") {
	case "named":
		a.Kind = ast.Named
		a.Name = buildExpr(sc, mapField(m, "name"))
	case "range":
		a.Kind = ast.RangeAssoc
		a.Range = buildRange(sc, mapField(m, "range"))
	case "others":
		a.Kind = ast.Others
	default:
		a.Kind = ast.Positional
	}
	return a
}

// builtinFuncDecl returns a cached synthetic FuncDecl standing in for a
// builtin operator, so repeated calls to the same primitive within one
// fixture share a single *ast.FuncDecl the way a real front end's builtin
// table would.
func builtinFuncDecl(sc *scope, name string, resultType ast.Type) *ast.FuncDecl {
	if fd, ok := sc.builtin[name]; ok {
		return fd
	}
	fd := &ast.FuncDecl{Name: name, Builtin: name, ReturnType: resultType}
	sc.builtin[name] = fd
	return fd
}

func buildCall(sc *scope, m map[string]any) *ast.Call {
	pos := ast.Position{Line: 1, Column: 1}
	var args []ast.Expr
	for _, raw := range listField(m, "args") {
		args = append(args, buildExpr(sc, asMap(raw)))
	}

	var callee *ast.FuncDecl
	var typ ast.Type
	if bn, ok := m["builtin"]; ok {
		if t, ok := m["type"]; ok {
			typ = resolveType(sc, t.(string))
		}
		callee = builtinFuncDecl(sc, bn.(string), typ)
	} else {
		d, ok := resolveDecl(sc, str(m, "name")).(*ast.FuncDecl)
		if !ok {
			fail("%q is not a function", str(m, "name"))
		}
		callee = d
		typ = d.ReturnType
	}

	return &ast.Call{NodePos: pos, Typ: typ, Callee: callee, Args: args}
}

func buildStmt(sc *scope, m map[string]any) ast.Stmt {
	pos := ast.Position{Line: 1, Column: 1}
	kind := str(m, "kind")
	switch kind {
	case "assign":
		return &ast.VarAssign{NodePos: pos, Target: buildExpr(sc, mapField(m, "target")), Value: buildExpr(sc, mapField(m, "value"))}
	case "signalassign":
		sa := &ast.SignalAssign{NodePos: pos, Target: buildExpr(sc, mapField(m, "target"))}
		for _, raw := range listField(m, "waveforms") {
			wm := asMap(raw)
			sa.Waveforms = append(sa.Waveforms, &ast.Waveform{NodePos: pos, Value: buildExpr(sc, mapField(wm, "value"))})
		}
		return sa
	case "if":
		st := &ast.If{NodePos: pos, Cond: buildExpr(sc, mapField(m, "cond"))}
		for _, raw := range listField(m, "then") {
			st.Then = append(st.Then, buildStmt(sc, asMap(raw)))
		}
		for _, raw := range listField(m, "else") {
			st.Else = append(st.Else, buildStmt(sc, asMap(raw)))
		}
		return st
	case "case":
		st := &ast.Case{NodePos: pos, Value: buildExpr(sc, mapField(m, "value"))}
		for _, raw := range listField(m, "assocs") {
			st.Assocs = append(st.Assocs, buildCaseAssoc(sc, asMap(raw)))
		}
		return st
	case "while":
		st := &ast.While{NodePos: pos, Label: strOpt(m, "label", "")}
		if _, ok := m["cond"]; ok {
			st.Cond = buildExpr(sc, mapField(m, "cond"))
		}
		for _, raw := range listField(m, "stmts") {
			st.Stmts = append(st.Stmts, buildStmt(sc, asMap(raw)))
		}
		return st
	case "for":
		idxType := resolveType(sc, str(m, "type"))
		idx := &ast.VarDecl{NodePos: pos, Name: str(m, "index"), Typ: idxType}
		saved := sc.locals[idx.Name]
		sc.locals[idx.Name] = idx
		st := &ast.For{NodePos: pos, Label: strOpt(m, "label", ""), Index: idx, Range: buildRange(sc, mapField(m, "range"))}
		for _, raw := range listField(m, "stmts") {
			st.Stmts = append(st.Stmts, buildStmt(sc, asMap(raw)))
		}
		if saved != nil {
			sc.locals[idx.Name] = saved
		} else {
			delete(sc.locals, idx.Name)
		}
		return st
	case "return":
		return &ast.Return{NodePos: pos, Value: buildExpr(sc, mapField(m, "value"))}
	case "exit":
		st := &ast.Exit{NodePos: pos, Label: strOpt(m, "label", "")}
		if _, ok := m["cond"]; ok {
			st.Cond = buildExpr(sc, mapField(m, "cond"))
		}
		return st
	case "block":
		st := &ast.Block{NodePos: pos}
		for _, raw := range listField(m, "stmts") {
			st.Stmts = append(st.Stmts, buildStmt(sc, asMap(raw)))
		}
		return st
	case "exprstmt":
		call, ok := buildExpr(sc, mapField(m, "call")).(*ast.ProcCall)
		if !ok {
			fail("exprstmt call must be a procedure call")
		}
		return &ast.ExprStmt{NodePos: pos, Call: call}
	default:
		fail("unknown statement kind %q", kind)
		return nil
	}
}

func buildCaseAssoc(sc *scope, m map[string]any) *ast.CaseAssoc {
	pos := ast.Position{Line: 1, Column: 1}
	a := &ast.CaseAssoc{NodePos: pos}
	for _, raw := range listField(m, "stmts") {
		a.Body = append(a.Body, buildStmt(sc, asMap(raw)))
	}
	switch str(m, "kind") {
	case "named":
		for _, raw := range listField(m, "names") {
			a.Names = append(a.Names, buildExpr(sc, asMap(raw)))
		}
		a.Kind = ast.Named
	case "range":
		a.Kind = ast.RangeAssoc
		a.Range = buildRange(sc, mapField(m, "range"))
	case "others":
		a.Kind = ast.Others
	default:
		fail("unknown case association kind %q", str(m, "kind"))
	}
	return a
}
