package formgraph

import (
	"github.com/shopspring/decimal"
)

type declaration struct {
	id      FieldID
	group   string
	kind    Kind
	inputs  []FieldID
	compute func(Values) (decimal.Decimal, Signal)
}

// Builder collects field declarations. The first invalid declaration is
// remembered and reported by Build.
type Builder struct {
	decls []declaration
	err   error
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Leaf declares user-editable fields in a group.
func (b *Builder) Leaf(group string, ids ...FieldID) *Builder {
	for _, id := range ids {
		b.decls = append(b.decls, declaration{id: id, group: group, kind: Leaf})
	}
	return b
}

// Derive declares a computed field.
func (b *Builder) Derive(group string, id FieldID, r Rule) *Builder {
	if r.Compute == nil {
		b.fail(invalidf("derived field %q has no compute function", id))
		return b
	}
	compute := r.Compute
	b.decls = append(b.decls, declaration{
		id:     id,
		group:  group,
		kind:   Derived,
		inputs: r.Inputs,
		compute: func(v Values) (decimal.Decimal, Signal) {
			return compute(v), SignalNone
		},
	})
	return b
}

// DeriveSignal declares a computed field that also emits a Signal.
func (b *Builder) DeriveSignal(group string, id FieldID, r SignalRule) *Builder {
	if r.Compute == nil {
		b.fail(invalidf("derived field %q has no compute function", id))
		return b
	}
	b.decls = append(b.decls, declaration{
		id:      id,
		group:   group,
		kind:    Derived,
		inputs:  r.Inputs,
		compute: r.Compute,
	})
	return b
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Build validates the declarations and returns an immutable Graph.
//
// Validation rejects:
//   - an empty declaration set
//   - empty or duplicate field ids
//   - inputs naming undeclared fields, or repeated within one rule
//   - a field depending on itself
//   - any cycle (direct or indirect)
func (b *Builder) Build() (*Graph, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.decls) == 0 {
		return nil, invalidf("no fields")
	}

	index := make(map[FieldID]int, len(b.decls))
	for i, d := range b.decls {
		if d.id == "" {
			return nil, invalidf("field id is required")
		}
		if _, exists := index[d.id]; exists {
			return nil, invalidf("duplicate field: %q", d.id)
		}
		index[d.id] = i
	}

	nodes := make([]*node, len(b.decls))
	outgoing := make([][]int, len(b.decls))
	indeg := make([]int, len(b.decls))
	for i, d := range b.decls {
		n := &node{
			id:      d.id,
			group:   d.group,
			kind:    d.kind,
			inputs:  append([]FieldID(nil), d.inputs...),
			compute: d.compute,
			allowed: make(map[FieldID]struct{}, len(d.inputs)),
		}
		for _, in := range d.inputs {
			j, ok := index[in]
			if !ok {
				return nil, invalidf("field %q reads unknown field %q", d.id, in)
			}
			if j == i {
				return nil, invalidf("field %q depends on itself", d.id)
			}
			if _, dup := n.allowed[in]; dup {
				return nil, invalidf("field %q lists input %q twice", d.id, in)
			}
			n.allowed[in] = struct{}{}
			outgoing[j] = append(outgoing[j], i)
			indeg[i]++
		}
		nodes[i] = n
	}

	g := &Graph{
		nodes:    nodes,
		index:    index,
		outgoing: outgoing,
		indeg:    indeg,
	}
	if err := g.sortTopological(); err != nil {
		return nil, err
	}
	return g, nil
}
