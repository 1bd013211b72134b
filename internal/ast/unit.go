package ast

// Unit is the root of a design tree: the top-level declarations of one
// elaborated design unit (entity/architecture, package, or similar). It is
// the "top" argument bounds_check(top) expects in spec.md §6.
type Unit struct {
	NodePos Position
	Name    string
	Decls   []Decl
}

func (u *Unit) Pos() Position { return u.NodePos }
