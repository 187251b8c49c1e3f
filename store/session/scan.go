package session

import (
	"github.com/tshepo-ncube/OpenPaymentHackathonServer/core"
)

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSession(scanner scanner, session *core.PaymentSession) error {
	return scanner.Scan(
		&session.ID,
		&session.CreatedAt,
		&session.ExpiresAt,
		&session.Kind,
		&session.QuoteID,
		&session.ContinueURI,
		&session.ContinueAccessToken,
		&session.Nonce,
		&session.SenderWalletURL,
		&session.Consumed,
	)
}
