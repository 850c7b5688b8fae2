package sddlexpr

import (
	"fmt"

	"github.com/kralicky/sddl/sddlvalue"
)

// Ref is a late-bound reference to another expression by name. The
// constant collector creates a Ref for every identifier atom, giving it a
// Resolve callback that returns the referenced constant's evaluated value
// from the collector's slot arena; this lets a constant reference another constant declared later in
// the same file (a forward reference) without requiring the tree to be
// revisited once the later constant's expression is parsed.
type Ref struct {
	base
	Name    string
	Resolve func(name string) (Expr, error)
}

// NewRef constructs a reference that resolves lazily via resolve.
func NewRef(name string, resolve func(name string) (Expr, error)) *Ref {
	r := &Ref{Name: name, Resolve: resolve}
	r.base = wrap(r)
	return r
}

func (r *Ref) target() (Expr, error) {
	if r.Resolve == nil {
		return nil, fmt.Errorf("variable %s could not be found", r.Name)
	}
	return r.Resolve(r.Name)
}

func (r *Ref) Typeof() (sddlvalue.Kind, error) {
	t, err := r.target()
	if err != nil {
		return 0, err
	}
	return t.Typeof()
}

func (r *Ref) Eval() (sddlvalue.Value, error) {
	t, err := r.target()
	if err != nil {
		return sddlvalue.Value{}, err
	}
	return t.Eval()
}
