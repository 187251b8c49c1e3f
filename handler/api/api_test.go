package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/tshepo-ncube/OpenPaymentHackathonServer/core"
)

type stubFlows struct {
	startOneTime    func(ctx context.Context, input core.StartPaymentInput) (*core.StartPaymentOutput, error)
	finishOneTime   func(ctx context.Context, input core.FinishPaymentInput) (*core.FinishPaymentOutput, error)
	startRecurring  func(ctx context.Context, input core.StartPaymentInput) (*core.StartPaymentOutput, error)
	finishRecurring func(ctx context.Context, input core.FinishPaymentInput) error
}

func (s *stubFlows) StartOneTime(ctx context.Context, input core.StartPaymentInput) (*core.StartPaymentOutput, error) {
	return s.startOneTime(ctx, input)
}

func (s *stubFlows) FinishOneTime(ctx context.Context, input core.FinishPaymentInput) (*core.FinishPaymentOutput, error) {
	return s.finishOneTime(ctx, input)
}

func (s *stubFlows) StartRecurring(ctx context.Context, input core.StartPaymentInput) (*core.StartPaymentOutput, error) {
	return s.startRecurring(ctx, input)
}

func (s *stubFlows) FinishRecurring(ctx context.Context, input core.FinishPaymentInput) error {
	return s.finishRecurring(ctx, input)
}

func newHandler(flows core.FlowService) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(flows, logger).Handler()
}

func post(h http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestStartMissingSenderWallet(t *testing.T) {
	called := false
	h := newHandler(&stubFlows{
		startOneTime: func(context.Context, core.StartPaymentInput) (*core.StartPaymentOutput, error) {
			called = true
			return nil, nil
		},
	})

	rec := post(h, "/start_one_time_payment", `{"contribution":"50","studentURL":"https://frontend.example/finish"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	body := strings.TrimSpace(rec.Body.String())
	if body != `{"error":"sendingWalletAddress is required"}` {
		t.Errorf("body = %s", body)
	}

	if called {
		t.Error("flow called despite missing sender wallet")
	}
}

func TestStartOneTime(t *testing.T) {
	var gotInput core.StartPaymentInput
	h := newHandler(&stubFlows{
		startOneTime: func(_ context.Context, input core.StartPaymentInput) (*core.StartPaymentOutput, error) {
			gotInput = input
			return &core.StartPaymentOutput{
				InteractURL:         "https://auth.example/interact/1",
				QuoteID:             "https://resource.example/quotes/q1",
				ContinueURI:         "https://auth.example/continue/1",
				ContinueAccessToken: "cont-token",
			}, nil
		},
	})

	rec := post(h, "/start_one_time_payment", `{
		"senderWalletUrl": "https://wallet.example/alice",
		"contribution": "50",
		"studentURL": "https://frontend.example/finish",
		"studentID": "S1"
	}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	if gotInput.StudentID != "S1" || !gotInput.Contribution.Equal(decimal.NewFromInt(50)) {
		t.Errorf("input = %+v", gotInput)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}

	if body["INTERACT_URL"] != "https://auth.example/interact/1" {
		t.Errorf("INTERACT_URL = %q", body["INTERACT_URL"])
	}

	if body["QUOTE_URL"] == "" || body["CONTINUE_URI"] == "" || body["CONTINUE_ACCESS_TOKEN"] == "" {
		t.Errorf("body missing continuation fields: %v", body)
	}
}

func TestFinishOneTimeNotAccepted(t *testing.T) {
	h := newHandler(&stubFlows{
		finishOneTime: func(context.Context, core.FinishPaymentInput) (*core.FinishPaymentOutput, error) {
			return nil, &core.GrantNotAcceptedError{}
		},
	})

	rec := post(h, "/finish_one_time_payment", `{
		"quoteUrl": "https://resource.example/quotes/q1",
		"continueUri": "https://auth.example/continue/1",
		"continueAccessToken": "cont-token",
		"interactRef": "ref-1"
	}`)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}

	if body["error"] == "" {
		t.Errorf("body = %v, want structured error", body)
	}
}

func TestFinishOneTime(t *testing.T) {
	var gotInput core.FinishPaymentInput
	h := newHandler(&stubFlows{
		finishOneTime: func(_ context.Context, input core.FinishPaymentInput) (*core.FinishPaymentOutput, error) {
			gotInput = input
			return &core.FinishPaymentOutput{Message: "Payment Complete successfully"}, nil
		},
	})

	rec := post(h, "/finish_one_time_payment", `{
		"quoteUrl": "https://resource.example/quotes/q1",
		"continueUri": "https://auth.example/continue/1",
		"continueAccessToken": "cont-token",
		"interactRef": "ref-1",
		"msg": "Thank you!"
	}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	if gotInput.Message != "Thank you!" || gotInput.InteractRef != "ref-1" {
		t.Errorf("input = %+v", gotInput)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}

	if body["message"] != "Payment Complete successfully" {
		t.Errorf("message = %q", body["message"])
	}
}

func TestFinishRecurring(t *testing.T) {
	h := newHandler(&stubFlows{
		finishRecurring: func(context.Context, core.FinishPaymentInput) error {
			return nil
		},
	})

	rec := post(h, "/finish_recurring_payments", `{
		"quoteUrl": "https://resource.example/quotes/q1",
		"continueUri": "https://auth.example/continue/1",
		"continueAccessToken": "cont-token",
		"interactRef": "ref-1"
	}`)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}

	if rec.Body.Len() != 0 {
		t.Errorf("body = %s, want empty", rec.Body.String())
	}
}

func TestFinishRedirect(t *testing.T) {
	h := newHandler(&stubFlows{})

	req := httptest.NewRequest(http.MethodGet, "/finish?interact_ref=ref-1", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	if !strings.Contains(rec.Body.String(), "completed") {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestStartInvalidBody(t *testing.T) {
	h := newHandler(&stubFlows{})

	rec := post(h, "/start_one_time_payment", `{not json`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
