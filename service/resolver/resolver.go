package resolver

import (
	"context"
	"fmt"
	"net/http"

	"github.com/asaskevich/govalidator"
	"github.com/tshepo-ncube/OpenPaymentHackathonServer/core"
	"github.com/tshepo-ncube/OpenPaymentHackathonServer/openpayments"
)

func New(client *openpayments.Client) core.WalletResolver {
	return &service{client: client}
}

type service struct {
	client *openpayments.Client
}

func (s *service) Resolve(ctx context.Context, walletURL string) (*core.WalletAddress, error) {
	if !govalidator.IsURL(walletURL) {
		return nil, &core.ResolutionError{
			WalletURL: walletURL,
			Cause:     fmt.Errorf("malformed wallet address url"),
		}
	}

	var wallet core.WalletAddress
	if err := s.client.Do(ctx, http.MethodGet, walletURL, "", nil, &wallet); err != nil {
		return nil, &core.ResolutionError{WalletURL: walletURL, Cause: err}
	}

	if wallet.ID == "" || wallet.AuthServer == "" || wallet.ResourceServer == "" {
		return nil, &core.ResolutionError{
			WalletURL: walletURL,
			Cause:     fmt.Errorf("url does not identify a wallet address"),
		}
	}

	return &wallet, nil
}
