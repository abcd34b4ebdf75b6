package decomp

import "fmt"

// InternalError signals a violated algorithmic invariant (§7): a
// programmer bug in the engine, never a consequence of bad input. The
// only way one of these is produced is via Compute's single recover()
// at its own boundary, mirroring BalancedGo's lib.Search.FindNext
// defer/recover shape.
type InternalError struct {
	Reason string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("mdtree: internal error: %s", e.Reason)
}

func internalf(format string, args ...interface{}) {
	panic(&InternalError{Reason: fmt.Sprintf(format, args...)})
}
