package checker

import "errors"

// Failure classes for a single listing check. Both are absorbed at the
// batch boundary; that listing keeps its default result and the batch
// continues.
var (
	ErrNavigation = errors.New("navigation failed")
	ErrTimeout    = errors.New("navigation timed out")
)
