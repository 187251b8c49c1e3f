package core

import (
	"context"
	"time"
)

type SessionKind uint8

const (
	_ SessionKind = iota
	SessionKindOneTime
	SessionKindRecurring
)

func (k SessionKind) String() string {
	switch k {
	case SessionKindOneTime:
		return "one_time"
	case SessionKindRecurring:
		return "recurring"
	default:
		return "unknown"
	}
}

// PaymentSession is the continuation state that has to outlive the redirect
// gap between the start and finish requests: the quote, the grant
// continuation pair and the per-flow interaction nonce. It is created when
// the interactive grant is issued and consumed exactly once when the grant
// is continued.
type PaymentSession struct {
	ID                  string      `json:"id"`
	CreatedAt           time.Time   `json:"created_at"`
	ExpiresAt           time.Time   `json:"expires_at"`
	Kind                SessionKind `json:"kind"`
	QuoteID             string      `json:"quote_id"`
	ContinueURI         string      `json:"continue_uri"`
	ContinueAccessToken string      `json:"continue_access_token"`
	Nonce               string      `json:"nonce"`
	SenderWalletURL     string      `json:"sender_wallet_url"`
	Consumed            bool        `json:"consumed"`
}

type SessionStore interface {
	Create(ctx context.Context, session *PaymentSession) error
	FindQuote(ctx context.Context, quoteID string) (*PaymentSession, error)
	// Consume marks the session spent. It fails if the session is already
	// consumed; callers rely on that for the consume-exactly-once guarantee.
	Consume(ctx context.Context, session *PaymentSession) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
