package formgraph

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidGraph = errors.New("invalid form graph")
	ErrUnknownField = errors.New("unknown field")
	ErrDerivedField = errors.New("field is derived")
)

// GraphError describes why a set of declarations could not be built.
type GraphError struct {
	Msg   string
	Cycle []FieldID
}

func (e *GraphError) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return ErrInvalidGraph.Error()
	}
	return fmt.Sprintf("%s: %s", ErrInvalidGraph.Error(), e.Msg)
}

func (e *GraphError) Unwrap() error { return ErrInvalidGraph }

func invalidf(format string, args ...any) error {
	return &GraphError{Msg: fmt.Sprintf(format, args...)}
}

func cycleError(path []FieldID) error {
	parts := make([]string, len(path))
	for i, id := range path {
		parts[i] = string(id)
	}
	return &GraphError{Msg: "cycle: " + strings.Join(parts, " -> "), Cycle: path}
}
