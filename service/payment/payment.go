package payment

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/tshepo-ncube/OpenPaymentHackathonServer/core"
	"github.com/tshepo-ncube/OpenPaymentHackathonServer/openpayments"
)

// incomingPaymentLifetime is the absolute expiry window of a fresh incoming
// payment.
const incomingPaymentLifetime = 600 * time.Second

func New(client *openpayments.Client) core.PaymentService {
	return &service{client: client}
}

type service struct {
	client *openpayments.Client
}

type paymentMetadata struct {
	Description string `json:"description"`
}

type incomingRequest struct {
	WalletAddress  string          `json:"walletAddress"`
	IncomingAmount core.Amount     `json:"incomingAmount"`
	Metadata       paymentMetadata `json:"metadata"`
	ExpiresAt      string          `json:"expiresAt"`
}

type outgoingRequest struct {
	WalletAddress string `json:"walletAddress"`
	QuoteID       string `json:"quoteId"`
}

func (s *service) CreateIncoming(ctx context.Context, resourceServer, accessToken, walletID string, amount core.Amount, description string) (*core.IncomingPayment, error) {
	body := incomingRequest{
		WalletAddress:  walletID,
		IncomingAmount: amount,
		Metadata:       paymentMetadata{Description: description},
		ExpiresAt:      time.Now().Add(incomingPaymentLifetime).UTC().Format(time.RFC3339),
	}

	url := strings.TrimSuffix(resourceServer, "/") + "/incoming-payments"

	var payment core.IncomingPayment
	if err := s.client.Do(ctx, http.MethodPost, url, accessToken, body, &payment); err != nil {
		return nil, &core.PaymentExecutionError{Op: "incoming", Cause: err}
	}

	return &payment, nil
}

func (s *service) CreateOutgoing(ctx context.Context, resourceServer, accessToken, walletID, quoteID string) (*core.OutgoingPayment, error) {
	body := outgoingRequest{
		WalletAddress: walletID,
		QuoteID:       quoteID,
	}

	url := strings.TrimSuffix(resourceServer, "/") + "/outgoing-payments"

	var payment core.OutgoingPayment
	if err := s.client.Do(ctx, http.MethodPost, url, accessToken, body, &payment); err != nil {
		return nil, &core.PaymentExecutionError{Op: "outgoing", Cause: err}
	}

	return &payment, nil
}
