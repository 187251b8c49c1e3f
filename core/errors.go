package core

import "fmt"

// ResolutionError: the wallet address could not be resolved. Fatal to the
// flow.
type ResolutionError struct {
	WalletURL string
	Cause     error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolve wallet address %s: %v", e.WalletURL, e.Cause)
}

func (e *ResolutionError) Unwrap() error { return e.Cause }

// UnexpectedGrantStateError: the authorization server finalized a scope
// defined as interactive, or left a non-interactive scope pending. Fatal;
// the upstream contract changed.
type UnexpectedGrantStateError struct {
	Scope AccessType
	State GrantState
}

func (e *UnexpectedGrantStateError) Error() string {
	return fmt.Sprintf("grant for %s scope came back %s", e.Scope, e.State)
}

// GrantNotAcceptedError: continuation was rejected because the user never
// completed consent or the continuation token is already spent. Recoverable
// by restarting the interactive flow from scratch.
type GrantNotAcceptedError struct {
	Cause error
}

func (e *GrantNotAcceptedError) Error() string {
	if e.Cause == nil {
		return "grant interaction not accepted"
	}
	return fmt.Sprintf("grant interaction not accepted: %v", e.Cause)
}

func (e *GrantNotAcceptedError) Unwrap() error { return e.Cause }

type QuoteError struct {
	Cause error
}

func (e *QuoteError) Error() string { return fmt.Sprintf("create quote: %v", e.Cause) }

func (e *QuoteError) Unwrap() error { return e.Cause }

type PaymentExecutionError struct {
	Op    string // "incoming" or "outgoing"
	Cause error
}

func (e *PaymentExecutionError) Error() string {
	return fmt.Sprintf("create %s payment: %v", e.Op, e.Cause)
}

func (e *PaymentExecutionError) Unwrap() error { return e.Cause }

// ValidationError: a required request field is missing or malformed.
// Reported before any network call is attempted.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }
