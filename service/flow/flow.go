package flow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/google/uuid"
	"github.com/tshepo-ncube/OpenPaymentHackathonServer/core"
	"github.com/tshepo-ncube/OpenPaymentHackathonServer/store"
)

// sessionLifetime matches the incoming payment expiry: once the incoming
// payment lapses the continuation is worthless anyway.
const sessionLifetime = 10 * time.Minute

// recurringIncomingValue is the placeholder target amount (minor units) of
// the incoming payment backing a recurring authorization.
const recurringIncomingValue = "200"

type Config struct {
	// ReceivingWalletURL is the wallet every contribution lands on.
	ReceivingWalletURL string `valid:"url,required"`

	// SendingWalletURL is the fallback sender used when a finish request
	// arrives for a session this node no longer holds.
	SendingWalletURL string `valid:"url,optional"`
}

func New(
	wallets core.WalletResolver,
	grants core.GrantService,
	quotes core.QuoteService,
	payments core.PaymentService,
	sessions core.SessionStore,
	notifier core.Notifier,
	logger *slog.Logger,
	cfg Config,
) core.FlowService {
	if _, err := govalidator.ValidateStruct(cfg); err != nil {
		panic(err)
	}

	return &service{
		wallets:  wallets,
		grants:   grants,
		quotes:   quotes,
		payments: payments,
		sessions: sessions,
		notifier: notifier,
		logger:   logger.With("service", "flow"),
		cfg:      cfg,
	}
}

type service struct {
	wallets  core.WalletResolver
	grants   core.GrantService
	quotes   core.QuoteService
	payments core.PaymentService
	sessions core.SessionStore
	notifier core.Notifier
	logger   *slog.Logger
	cfg      Config
}

func (s *service) StartOneTime(ctx context.Context, input core.StartPaymentInput) (*core.StartPaymentOutput, error) {
	return s.start(ctx, input, core.SessionKindOneTime)
}

func (s *service) StartRecurring(ctx context.Context, input core.StartPaymentInput) (*core.StartPaymentOutput, error) {
	return s.start(ctx, input, core.SessionKindRecurring)
}

func (s *service) FinishOneTime(ctx context.Context, input core.FinishPaymentInput) (*core.FinishPaymentOutput, error) {
	if err := s.finish(ctx, input, core.SessionKindOneTime); err != nil {
		return nil, err
	}

	return &core.FinishPaymentOutput{Message: "Payment Complete successfully"}, nil
}

func (s *service) FinishRecurring(ctx context.Context, input core.FinishPaymentInput) error {
	return s.finish(ctx, input, core.SessionKindRecurring)
}

// start runs the first half of the payment state machine, up to the point
// where only the end user can move it forward: resolve both wallets, create
// the incoming payment, price it, then park a pending outgoing-payment
// grant behind the consent redirect.
func (s *service) start(ctx context.Context, input core.StartPaymentInput, kind core.SessionKind) (*core.StartPaymentOutput, error) {
	logger := s.logger.With("flow", kind.String())

	if err := validateStart(input); err != nil {
		return nil, err
	}

	receiving, err := s.wallets.Resolve(ctx, s.cfg.ReceivingWalletURL)
	if err != nil {
		return nil, err
	}

	sending, err := s.wallets.Resolve(ctx, input.SenderWalletURL)
	if err != nil {
		return nil, err
	}

	logger.Debug("wallet addresses resolved", "receiving", receiving.ID, "sending", sending.ID)

	incomingGrant, err := s.grants.Request(ctx, receiving.AuthServer, incomingPaymentScope())
	if err != nil {
		return nil, err
	}

	logger.Debug("incoming payment grant finalized")

	incoming, err := s.payments.CreateIncoming(
		ctx,
		receiving.ResourceServer,
		incomingGrant.AccessToken,
		receiving.ID,
		incomingAmount(input, kind, receiving),
		paymentDescription(input, kind),
	)

	if err != nil {
		return nil, err
	}

	logger.Debug("incoming payment created", "incoming_payment", incoming.ID)

	quoteGrant, err := s.grants.Request(ctx, sending.AuthServer, quoteScope(kind))
	if err != nil {
		return nil, err
	}

	logger.Debug("quote grant finalized")

	quote, err := s.quotes.Create(ctx, sending.ResourceServer, quoteGrant.AccessToken, sending.ID, incoming.ID)
	if err != nil {
		return nil, err
	}

	logger.Debug("quote created", "quote", quote.ID, "debit_amount", quote.DebitAmount.Value)

	// A fresh nonce per flow: the consent redirect of one session must not
	// validate against another.
	nonce := uuid.NewString()

	outgoingGrant, err := s.grants.RequestInteractive(
		ctx,
		sending.AuthServer,
		outgoingPaymentScope(sending.ID, quote.DebitAmount, kind),
		input.FinishURL,
		nonce,
	)

	if err != nil {
		return nil, err
	}

	logger.Debug("outgoing payment grant pending", "interact", outgoingGrant.InteractRedirect)

	now := time.Now()
	session := &core.PaymentSession{
		ID:                  uuid.NewString(),
		CreatedAt:           now,
		ExpiresAt:           now.Add(sessionLifetime),
		Kind:                kind,
		QuoteID:             quote.ID,
		ContinueURI:         outgoingGrant.ContinueURI,
		ContinueAccessToken: outgoingGrant.ContinueAccessToken,
		Nonce:               nonce,
		SenderWalletURL:     input.SenderWalletURL,
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("save payment session: %w", err)
	}

	logger.Info("payment flow started", "session", session.ID, "quote", quote.ID)

	return &core.StartPaymentOutput{
		InteractURL:         outgoingGrant.InteractRedirect,
		QuoteID:             quote.ID,
		ContinueURI:         outgoingGrant.ContinueURI,
		ContinueAccessToken: outgoingGrant.ContinueAccessToken,
	}, nil
}

// finish resumes the state machine after the consent redirect: continue the
// pending grant, spend the stored session, create the outgoing payment and
// notify the recipient.
func (s *service) finish(ctx context.Context, input core.FinishPaymentInput, kind core.SessionKind) error {
	logger := s.logger.With("flow", kind.String())

	if err := validateFinish(input); err != nil {
		return err
	}

	session, err := s.sessions.FindQuote(ctx, input.QuoteID)
	switch {
	case err == nil:
		if session.Consumed {
			return &core.GrantNotAcceptedError{Cause: store.ErrConsumed}
		}
	case store.IsErrNotFound(err):
		// The caller still holds a valid continuation quartet; proceed on
		// that alone and let the authorization server arbitrate.
		logger.Warn("no session for quote, continuing without one", "quote", input.QuoteID)
		session = nil
	default:
		return fmt.Errorf("load payment session: %w", err)
	}

	finalized, err := s.grants.Continue(ctx, input.ContinueURI, input.ContinueAccessToken, input.InteractRef)
	if err != nil {
		return err
	}

	logger.Debug("outgoing payment grant finalized")

	senderWalletURL := s.cfg.SendingWalletURL
	if session != nil {
		senderWalletURL = session.SenderWalletURL
	}

	sending, err := s.wallets.Resolve(ctx, senderWalletURL)
	if err != nil {
		return err
	}

	if session != nil {
		if err := s.sessions.Consume(ctx, session); err != nil {
			return &core.GrantNotAcceptedError{Cause: err}
		}
	}

	outgoing, err := s.payments.CreateOutgoing(ctx, sending.ResourceServer, finalized.AccessToken, sending.ID, input.QuoteID)
	if err != nil {
		return err
	}

	logger.Info("payment flow finished", "outgoing_payment", outgoing.ID)

	if err := s.notifier.Send(ctx, input.Message); err != nil {
		// Funds already moved; the flow result must not flip on a failed
		// notification.
		logger.Error("notifier.Send", "err", err)
	}

	return nil
}

func validateStart(input core.StartPaymentInput) error {
	if input.SenderWalletURL == "" {
		return &core.ValidationError{Message: "sendingWalletAddress is required"}
	}

	if _, err := govalidator.ValidateStruct(input); err != nil {
		return &core.ValidationError{Message: err.Error()}
	}

	if !input.Contribution.IsPositive() {
		return &core.ValidationError{Message: "contribution must be positive"}
	}

	return nil
}

func validateFinish(input core.FinishPaymentInput) error {
	if _, err := govalidator.ValidateStruct(input); err != nil {
		return &core.ValidationError{Message: err.Error()}
	}

	return nil
}
