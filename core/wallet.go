package core

import "context"

// WalletAddress is the resolved metadata of a payment account. Wallet
// configuration is authoritative at request time: resolve once per payment
// attempt, never cache across attempts.
type WalletAddress struct {
	ID             string `json:"id"`
	PublicName     string `json:"publicName,omitempty"`
	AssetCode      string `json:"assetCode"`
	AssetScale     int32  `json:"assetScale"`
	AuthServer     string `json:"authServer"`
	ResourceServer string `json:"resourceServer"`
}

type WalletResolver interface {
	Resolve(ctx context.Context, walletURL string) (*WalletAddress, error)
}
