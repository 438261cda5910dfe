package store

import "errors"

var (
	// ErrConnectivity marks failures to reach the store at all.
	ErrConnectivity = errors.New("store unreachable")
	// ErrQuery marks statement-level failures (bad statement, constraint
	// violation). Never retried here.
	ErrQuery = errors.New("query failed")
)
