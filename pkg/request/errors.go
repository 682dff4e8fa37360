package request

import "errors"

var (
	// ErrAuthorizationDenied is returned by Result.Err for Denied outcomes.
	// It carries no field detail.
	ErrAuthorizationDenied = errors.New("request: authorization denied")

	ErrNoRules  = errors.New("request: operation has no rule set builder")
	ErrNoDecode = errors.New("request: operation has no decoder")
	ErrRuleSet  = errors.New("request: failed to build rule set")
	ErrDecode   = errors.New("request: failed to decode validated record")
)
