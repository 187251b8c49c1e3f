package grant

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tshepo-ncube/OpenPaymentHackathonServer/core"
	"github.com/tshepo-ncube/OpenPaymentHackathonServer/openpayments"
)

func newClient(t *testing.T) *openpayments.Client {
	t.Helper()

	return openpayments.NewClient(openpayments.Config{
		WalletAddressURL: "https://wallet.example/client",
	})
}

func pendingBody(base string) map[string]any {
	return map[string]any{
		"interact": map[string]any{
			"redirect": base + "/consent/1",
		},
		"continue": map[string]any{
			"uri":          base + "/continue/tok-1",
			"access_token": map[string]any{"value": "tok-1"},
			"wait":         30,
		},
	}
}

func finalizedBody() map[string]any {
	return map[string]any{
		"access_token": map[string]any{
			"value":  "access-1",
			"manage": "https://auth.example/token/access-1",
		},
	}
}

func TestRequestNonInteractive(t *testing.T) {
	tests := []struct {
		name        string
		scope       core.AccessScope
		respond     func(base string) map[string]any
		wantToken   string
		wantBadGrant bool
	}{
		{
			name:      "incoming payment scope finalizes",
			scope:     core.AccessScope{Type: core.AccessTypeIncomingPayment, Actions: []string{"read", "complete", "create"}},
			respond:   func(string) map[string]any { return finalizedBody() },
			wantToken: "access-1",
		},
		{
			name:      "quote scope finalizes",
			scope:     core.AccessScope{Type: core.AccessTypeQuote, Actions: []string{"read", "create"}},
			respond:   func(string) map[string]any { return finalizedBody() },
			wantToken: "access-1",
		},
		{
			name:         "pending result violates the scope contract",
			scope:        core.AccessScope{Type: core.AccessTypeQuote, Actions: []string{"read", "create"}},
			respond:      pendingBody,
			wantBadGrant: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var srv *httptest.Server
			srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(tt.respond(srv.URL))
			}))
			defer srv.Close()

			grant, err := New(newClient(t)).Request(context.Background(), srv.URL, tt.scope)

			if tt.wantBadGrant {
				var stateErr *core.UnexpectedGrantStateError
				if !errors.As(err, &stateErr) {
					t.Fatalf("err = %v, want UnexpectedGrantStateError", err)
				}

				if stateErr.State != core.GrantStatePending {
					t.Errorf("state = %s, want pending", stateErr.State)
				}

				return
			}

			if err != nil {
				t.Fatal(err)
			}

			if grant.State != core.GrantStateFinalized {
				t.Errorf("state = %s, want finalized", grant.State)
			}

			if grant.AccessToken != tt.wantToken {
				t.Errorf("access token = %q, want %q", grant.AccessToken, tt.wantToken)
			}
		})
	}
}

func TestRequestInteractive(t *testing.T) {
	scope := core.AccessScope{
		Type:       core.AccessTypeOutgoingPayment,
		Identifier: "https://wallet.example/alice",
		Actions:    []string{"read", "read-all", "create"},
		Limits: &core.AccessLimits{
			DebitAmount: &core.Amount{Value: "5010", AssetCode: "ZAR", AssetScale: 2},
		},
	}

	t.Run("pending with redirect and continuation", func(t *testing.T) {
		var captured grantRequest
		var srv *httptest.Server
		srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
				t.Error(err)
			}

			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(pendingBody(srv.URL))
		}))
		defer srv.Close()

		grant, err := New(newClient(t)).RequestInteractive(context.Background(), srv.URL, scope, "https://frontend.example/finish", "nonce-1")
		if err != nil {
			t.Fatal(err)
		}

		if grant.State != core.GrantStatePending {
			t.Fatalf("state = %s, want pending", grant.State)
		}

		if grant.InteractRedirect == "" || grant.ContinueURI == "" || grant.ContinueAccessToken == "" {
			t.Errorf("pending grant missing fields: %+v", grant)
		}

		if grant.Nonce != "nonce-1" {
			t.Errorf("nonce = %q, want nonce-1", grant.Nonce)
		}

		if captured.Interact == nil || captured.Interact.Finish == nil {
			t.Fatal("request carried no interact block")
		}

		if captured.Interact.Finish.Nonce != "nonce-1" || captured.Interact.Finish.URI != "https://frontend.example/finish" {
			t.Errorf("interact finish = %+v", captured.Interact.Finish)
		}

		if captured.Client != "https://wallet.example/client" {
			t.Errorf("client = %q", captured.Client)
		}
	})

	t.Run("finalized result violates the scope contract", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(finalizedBody())
		}))
		defer srv.Close()

		_, err := New(newClient(t)).RequestInteractive(context.Background(), srv.URL, scope, "https://frontend.example/finish", "nonce-1")

		var stateErr *core.UnexpectedGrantStateError
		if !errors.As(err, &stateErr) {
			t.Fatalf("err = %v, want UnexpectedGrantStateError", err)
		}

		if stateErr.State != core.GrantStateFinalized {
			t.Errorf("state = %s, want finalized", stateErr.State)
		}
	})
}

func TestContinue(t *testing.T) {
	t.Run("finalizes once and only once", func(t *testing.T) {
		spent := false
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "GNAP tok-1" || spent {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			var body struct {
				InteractRef string `json:"interact_ref"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.InteractRef != "ref-1" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			spent = true
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(finalizedBody())
		}))
		defer srv.Close()

		svc := New(newClient(t))

		grant, err := svc.Continue(context.Background(), srv.URL, "tok-1", "ref-1")
		if err != nil {
			t.Fatal(err)
		}

		if grant.State != core.GrantStateFinalized || grant.AccessToken != "access-1" {
			t.Errorf("grant = %+v", grant)
		}

		// the continuation token is consumed; a replay must be rejected
		_, err = svc.Continue(context.Background(), srv.URL, "tok-1", "ref-1")

		var notAccepted *core.GrantNotAcceptedError
		if !errors.As(err, &notAccepted) {
			t.Fatalf("replay err = %v, want GrantNotAcceptedError", err)
		}
	})

	t.Run("unauthorized means not accepted", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		_, err := New(newClient(t)).Continue(context.Background(), srv.URL, "tok-1", "ref-never-approved")

		var notAccepted *core.GrantNotAcceptedError
		if !errors.As(err, &notAccepted) {
			t.Fatalf("err = %v, want GrantNotAcceptedError", err)
		}
	})

	t.Run("other failures are not recoverable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := New(newClient(t)).Continue(context.Background(), srv.URL, "tok-1", "ref-1")
		if err == nil {
			t.Fatal("want error")
		}

		var notAccepted *core.GrantNotAcceptedError
		if errors.As(err, &notAccepted) {
			t.Fatalf("err = %v, must not be GrantNotAcceptedError", err)
		}
	})
}
