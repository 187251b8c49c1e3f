package quote

import (
	"context"
	"net/http"
	"strings"

	"github.com/tshepo-ncube/OpenPaymentHackathonServer/core"
	"github.com/tshepo-ncube/OpenPaymentHackathonServer/openpayments"
)

// paymentMethod is the settlement rail every quote is priced over.
const paymentMethod = "ilp"

func New(client *openpayments.Client) core.QuoteService {
	return &service{client: client}
}

type service struct {
	client *openpayments.Client
}

type createRequest struct {
	Method        string `json:"method"`
	WalletAddress string `json:"walletAddress"`
	Receiver      string `json:"receiver"`
}

func (s *service) Create(ctx context.Context, resourceServer, accessToken, walletID, receiver string) (*core.Quote, error) {
	body := createRequest{
		Method:        paymentMethod,
		WalletAddress: walletID,
		Receiver:      receiver,
	}

	url := strings.TrimSuffix(resourceServer, "/") + "/quotes"

	var quote core.Quote
	if err := s.client.Do(ctx, http.MethodPost, url, accessToken, body, &quote); err != nil {
		return nil, &core.QuoteError{Cause: err}
	}

	return &quote, nil
}
