package grant

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tshepo-ncube/OpenPaymentHackathonServer/core"
	"github.com/tshepo-ncube/OpenPaymentHackathonServer/openpayments"
)

func New(client *openpayments.Client) core.GrantService {
	return &service{client: client}
}

type service struct {
	client *openpayments.Client
}

type accessTokenRequest struct {
	Access []core.AccessScope `json:"access"`
}

type interactFinish struct {
	Method string `json:"method"`
	URI    string `json:"uri"`
	Nonce  string `json:"nonce"`
}

type interactRequest struct {
	Start  []string        `json:"start"`
	Finish *interactFinish `json:"finish,omitempty"`
}

type grantRequest struct {
	AccessToken accessTokenRequest `json:"access_token"`
	Client      string             `json:"client"`
	Interact    *interactRequest   `json:"interact,omitempty"`
}

type tokenResponse struct {
	Value  string `json:"value"`
	Manage string `json:"manage,omitempty"`
}

type continueResponse struct {
	AccessToken tokenResponse `json:"access_token"`
	URI         string        `json:"uri"`
	Wait        int           `json:"wait,omitempty"`
}

type interactResponse struct {
	Redirect string `json:"redirect"`
	Finish   string `json:"finish,omitempty"`
}

type grantResponse struct {
	AccessToken *tokenResponse    `json:"access_token,omitempty"`
	Continue    *continueResponse `json:"continue,omitempty"`
	Interact    *interactResponse `json:"interact,omitempty"`
}

// classify maps a grant response onto the two legal states. A response that
// fits neither is malformed.
func (r *grantResponse) classify(nonce string) (*core.Grant, error) {
	if r.AccessToken != nil && r.AccessToken.Value != "" {
		return &core.Grant{
			State:       core.GrantStateFinalized,
			AccessToken: r.AccessToken.Value,
			ManageURL:   r.AccessToken.Manage,
		}, nil
	}

	if r.Interact != nil && r.Interact.Redirect != "" && r.Continue != nil {
		return &core.Grant{
			State:               core.GrantStatePending,
			InteractRedirect:    r.Interact.Redirect,
			ContinueURI:         r.Continue.URI,
			ContinueAccessToken: r.Continue.AccessToken.Value,
			Nonce:               nonce,
		}, nil
	}

	return nil, fmt.Errorf("grant response carries neither access token nor interaction")
}

func (s *service) Request(ctx context.Context, authServer string, scope core.AccessScope) (*core.Grant, error) {
	if scope.Interactive() {
		panic("interactive scope requires RequestInteractive")
	}

	body := grantRequest{
		AccessToken: accessTokenRequest{Access: []core.AccessScope{scope}},
		Client:      s.client.WalletAddressURL(),
	}

	grant, err := s.request(ctx, authServer, body, "")
	if err != nil {
		return nil, fmt.Errorf("request %s grant: %w", scope.Type, err)
	}

	if grant.State != core.GrantStateFinalized {
		return nil, &core.UnexpectedGrantStateError{Scope: scope.Type, State: grant.State}
	}

	return grant, nil
}

func (s *service) RequestInteractive(ctx context.Context, authServer string, scope core.AccessScope, finishURI, nonce string) (*core.Grant, error) {
	if !scope.Interactive() {
		panic("non-interactive scope requires Request")
	}

	body := grantRequest{
		AccessToken: accessTokenRequest{Access: []core.AccessScope{scope}},
		Client:      s.client.WalletAddressURL(),
		Interact: &interactRequest{
			Start: []string{"redirect"},
			Finish: &interactFinish{
				Method: "redirect",
				URI:    finishURI,
				Nonce:  nonce,
			},
		},
	}

	grant, err := s.request(ctx, authServer, body, nonce)
	if err != nil {
		return nil, fmt.Errorf("request %s grant: %w", scope.Type, err)
	}

	if grant.State != core.GrantStatePending {
		return nil, &core.UnexpectedGrantStateError{Scope: scope.Type, State: grant.State}
	}

	return grant, nil
}

func (s *service) Continue(ctx context.Context, continueURI, continueAccessToken, interactRef string) (*core.Grant, error) {
	body := struct {
		InteractRef string `json:"interact_ref"`
	}{InteractRef: interactRef}

	var resp grantResponse
	if err := s.client.Do(ctx, http.MethodPost, continueURI, continueAccessToken, body, &resp); err != nil {
		if openpayments.IsStatus(err, http.StatusUnauthorized) {
			return nil, &core.GrantNotAcceptedError{Cause: err}
		}

		return nil, fmt.Errorf("continue grant: %w", err)
	}

	grant, err := resp.classify("")
	if err != nil {
		return nil, fmt.Errorf("continue grant: %w", err)
	}

	if grant.State != core.GrantStateFinalized {
		return nil, &core.UnexpectedGrantStateError{
			Scope: core.AccessTypeOutgoingPayment,
			State: grant.State,
		}
	}

	return grant, nil
}

func (s *service) request(ctx context.Context, authServer string, body grantRequest, nonce string) (*core.Grant, error) {
	var resp grantResponse
	if err := s.client.Do(ctx, http.MethodPost, authServer, "", body, &resp); err != nil {
		return nil, err
	}

	return resp.classify(nonce)
}
