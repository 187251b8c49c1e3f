package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Amount is a wallet amount in minor units, as it travels on the wire.
type Amount struct {
	Value      string `json:"value"`
	AssetCode  string `json:"assetCode"`
	AssetScale int32  `json:"assetScale"`
}

// MinorUnits converts a major-unit contribution into minor units.
//
// The factor is fixed at 100, i.e. the conversion assumes the receiving
// asset has scale 2. Wallets with another scale get a wrong value here;
// known limitation carried over from the observed behavior.
func MinorUnits(contribution decimal.Decimal) string {
	return contribution.Mul(decimal.NewFromInt(100)).Truncate(0).String()
}

// Quote prices the transfer from a sending wallet into one incoming
// payment. Its debit amount bounds the outgoing-payment grant that follows,
// so a quote is a hard precondition for that grant, not display sugar.
type Quote struct {
	ID            string `json:"id"`
	WalletAddress string `json:"walletAddress"`
	Receiver      string `json:"receiver"`
	DebitAmount   Amount `json:"debitAmount"`
	ReceiveAmount Amount `json:"receiveAmount"`
}

type IncomingPayment struct {
	ID             string    `json:"id"`
	WalletAddress  string    `json:"walletAddress"`
	IncomingAmount Amount    `json:"incomingAmount"`
	Completed      bool      `json:"completed"`
	ExpiresAt      time.Time `json:"expiresAt"`
}

type OutgoingPayment struct {
	ID            string `json:"id"`
	WalletAddress string `json:"walletAddress"`
	QuoteID       string `json:"quoteId"`
	Failed        bool   `json:"failed"`
}

type QuoteService interface {
	Create(ctx context.Context, resourceServer, accessToken, walletID, receiver string) (*Quote, error)
}

type PaymentService interface {
	CreateIncoming(ctx context.Context, resourceServer, accessToken, walletID string, amount Amount, description string) (*IncomingPayment, error)
	CreateOutgoing(ctx context.Context, resourceServer, accessToken, walletID, quoteID string) (*OutgoingPayment, error)
}
