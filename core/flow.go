package core

import (
	"context"

	"github.com/shopspring/decimal"
)

type StartPaymentInput struct {
	SenderWalletURL string          `json:"senderWalletUrl" valid:"url,required"`
	Contribution    decimal.Decimal `json:"contribution"`
	FinishURL       string          `json:"studentURL" valid:"url,required"`
	StudentID       string          `json:"studentID"`
}

// StartPaymentOutput is handed back to the caller for safekeeping across
// the redirect gap. Field names are part of the frontend contract.
type StartPaymentOutput struct {
	InteractURL         string `json:"INTERACT_URL"`
	QuoteID             string `json:"QUOTE_URL"`
	ContinueURI         string `json:"CONTINUE_URI"`
	ContinueAccessToken string `json:"CONTINUE_ACCESS_TOKEN"`
}

type FinishPaymentInput struct {
	QuoteID             string `json:"quoteUrl" valid:"required"`
	ContinueURI         string `json:"continueUri" valid:"url,required"`
	ContinueAccessToken string `json:"continueAccessToken" valid:"required"`
	InteractRef         string `json:"interactRef" valid:"required"`
	Message             string `json:"msg"`
}

type FinishPaymentOutput struct {
	Message string `json:"message"`
}

// FlowService drives the grant orchestration state machines. Each flow is a
// linear sequence of network calls; every step's output is a precondition
// for the next.
type FlowService interface {
	StartOneTime(ctx context.Context, input StartPaymentInput) (*StartPaymentOutput, error)
	FinishOneTime(ctx context.Context, input FinishPaymentInput) (*FinishPaymentOutput, error)
	StartRecurring(ctx context.Context, input StartPaymentInput) (*StartPaymentOutput, error)
	FinishRecurring(ctx context.Context, input FinishPaymentInput) error
}
