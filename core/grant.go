package core

import "context"

type GrantState uint8

const (
	_ GrantState = iota
	GrantStatePending
	GrantStateFinalized
)

func (s GrantState) String() string {
	switch s {
	case GrantStatePending:
		return "pending"
	case GrantStateFinalized:
		return "finalized"
	default:
		return "unknown"
	}
}

type AccessType string

const (
	AccessTypeIncomingPayment AccessType = "incoming-payment"
	AccessTypeQuote           AccessType = "quote"
	AccessTypeOutgoingPayment AccessType = "outgoing-payment"
)

// AccessLimits bounds an outgoing-payment grant. Interval is an ISO 8601
// repeating interval and is only set for recurring authorizations.
type AccessLimits struct {
	DebitAmount *Amount `json:"debitAmount,omitempty"`
	Interval    string  `json:"interval,omitempty"`
}

// AccessScope is a single requested capability inside a grant request.
type AccessScope struct {
	Type       AccessType    `json:"type"`
	Actions    []string      `json:"actions"`
	Identifier string        `json:"identifier,omitempty"`
	Limits     *AccessLimits `json:"limits,omitempty"`
}

// Interactive reports whether the authorization server is expected to
// require end-user consent before finalizing this scope. outgoing-payment is
// always interactive; incoming-payment and quote always finalize
// synchronously. A grant that comes back on the wrong side of this split is
// a protocol violation, not a state to handle.
func (s AccessScope) Interactive() bool {
	return s.Type == AccessTypeOutgoingPayment
}

// Grant is the outcome of one negotiation attempt. Exactly one of the two
// states holds: Finalized carries a usable access token, Pending carries the
// interaction redirect plus the continuation pair needed to finish the
// negotiation after consent.
type Grant struct {
	State GrantState `json:"state"`

	AccessToken string `json:"access_token,omitempty"`
	ManageURL   string `json:"manage_url,omitempty"`

	InteractRedirect    string `json:"interact_redirect,omitempty"`
	ContinueURI         string `json:"continue_uri,omitempty"`
	ContinueAccessToken string `json:"continue_access_token,omitempty"`
	Nonce               string `json:"nonce,omitempty"`
}

type GrantService interface {
	// Request negotiates a non-interactive grant. A pending result violates
	// the scope contract and fails with UnexpectedGrantStateError.
	Request(ctx context.Context, authServer string, scope AccessScope) (*Grant, error)

	// RequestInteractive negotiates a redirect-consent grant. It returns
	// immediately with a pending grant; a finalized result violates the
	// scope contract and fails with UnexpectedGrantStateError.
	RequestInteractive(ctx context.Context, authServer string, scope AccessScope, finishURI, nonce string) (*Grant, error)

	// Continue exchanges the continuation token and the interaction
	// reference for a finalized grant. An unauthorized response means the
	// consent was never given or the token is already spent; that surfaces
	// as GrantNotAcceptedError and the whole flow must be restarted.
	Continue(ctx context.Context, continueURI, continueAccessToken, interactRef string) (*Grant, error)
}
