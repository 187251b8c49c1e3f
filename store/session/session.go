package session

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/tsenart/nap"
	"github.com/tshepo-ncube/OpenPaymentHackathonServer/core"
	"github.com/tshepo-ncube/OpenPaymentHackathonServer/store"
)

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func New(db *nap.DB) core.SessionStore {
	return &sessionStore{db: db}
}

type sessionStore struct {
	db *nap.DB
}

var columns = []string{
	"id",
	"created_at",
	"expires_at",
	"kind",
	"quote_id",
	"continue_uri",
	"continue_access_token",
	"nonce",
	"sender_wallet_url",
	"consumed",
}

func (s *sessionStore) Create(ctx context.Context, session *core.PaymentSession) error {
	b := builder.Insert("sessions").
		Columns(columns...).
		Values(
			session.ID,
			session.CreatedAt,
			session.ExpiresAt,
			session.Kind,
			session.QuoteID,
			session.ContinueURI,
			session.ContinueAccessToken,
			session.Nonce,
			session.SenderWalletURL,
			session.Consumed,
		)

	_, err := b.RunWith(s.db).ExecContext(ctx)
	return err
}

func (s *sessionStore) FindQuote(ctx context.Context, quoteID string) (*core.PaymentSession, error) {
	b := builder.Select(columns...).
		From("sessions").
		Where(sq.Eq{"quote_id": quoteID})

	row := b.RunWith(s.db).QueryRowContext(ctx)

	var session core.PaymentSession
	if err := scanSession(row, &session); err != nil {
		return nil, err
	}

	return &session, nil
}

func (s *sessionStore) Consume(ctx context.Context, session *core.PaymentSession) error {
	b := builder.Update("sessions").
		Set("consumed", true).
		Where(sq.Eq{"id": session.ID, "consumed": false})

	result, err := b.RunWith(s.db).ExecContext(ctx)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if n == 0 {
		return store.ErrConsumed
	}

	session.Consumed = true
	return nil
}

func (s *sessionStore) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	b := builder.Delete("sessions").
		Where(sq.Or{
			sq.Lt{"expires_at": before},
			sq.Eq{"consumed": true},
		})

	result, err := b.RunWith(s.db).ExecContext(ctx)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
