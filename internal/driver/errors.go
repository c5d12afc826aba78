package driver

import (
	"fmt"
	"strings"
)

// QueryError wraps a store-level failure together with the query that
// caused it. The core never retries one; it propagates to the caller and
// aborts the extraction it belongs to.
type QueryError struct {
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("graph query failed: %v (query: %s)", e.Err, strings.Join(strings.Fields(e.Query), " "))
}

func (e *QueryError) Unwrap() error { return e.Err }
