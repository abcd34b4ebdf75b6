package graph

import "fmt"

// InvalidInput is returned whenever a caller asks for a graph of negative
// order or names a vertex outside [0,n). It mirrors the plain-error
// boundary BalancedGo's parser uses at the edge of the module: New and
// AddEdge return it rather than panicking. Neighbors and Degree do not
// range-check their argument.
type InvalidInput struct {
	Reason string
}

func (e *InvalidInput) Error() string {
	return fmt.Sprintf("mdtree: invalid input: %s", e.Reason)
}

func invalidf(format string, args ...interface{}) *InvalidInput {
	return &InvalidInput{Reason: fmt.Sprintf(format, args...)}
}
