// Package formgraph evaluates a network of named currency fields.
//
// A Graph is declared once with a Builder: leaf fields are user-editable
// inputs, derived fields are pure functions of the fields they declare as
// inputs. Build validates the declarations and fixes a deterministic
// topological order. A Form holds the values of one graph instance and
// recomputes, in that order, only the derived fields downstream of an edit.
//
// Some derivations also emit a tri-state Signal (surplus, deficit, exact)
// alongside their value. Presentation code uses it to choose between two
// mutually exclusive sections, such as a refund block and an amount-owed
// block.
//
// Graph is immutable and safe for concurrent reads. Form is owned by a
// single session and is not safe for concurrent use.
package formgraph
