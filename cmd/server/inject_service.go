package main

import (
	"os"

	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/tshepo-ncube/OpenPaymentHackathonServer/openpayments"
	"github.com/tshepo-ncube/OpenPaymentHackathonServer/service/flow"
	"github.com/tshepo-ncube/OpenPaymentHackathonServer/service/grant"
	"github.com/tshepo-ncube/OpenPaymentHackathonServer/service/notify"
	"github.com/tshepo-ncube/OpenPaymentHackathonServer/service/payment"
	"github.com/tshepo-ncube/OpenPaymentHackathonServer/service/quote"
	"github.com/tshepo-ncube/OpenPaymentHackathonServer/service/resolver"
	"github.com/tshepo-ncube/OpenPaymentHackathonServer/worker/cleaner"
)

var serviceSet = wire.NewSet(
	provideSigner,
	provideClient,
	provideNotifyConfig,
	provideFlowConfig,
	provideCleanerConfig,
	resolver.New,
	grant.New,
	quote.New,
	payment.New,
	notify.New,
	flow.New,
)

func provideSigner(v *viper.Viper) (openpayments.Signer, error) {
	raw, err := os.ReadFile(v.GetString("client.private_key_path"))
	if err != nil {
		return nil, err
	}

	key, err := openpayments.ParsePrivateKey(raw)
	if err != nil {
		return nil, err
	}

	return openpayments.NewSigner(v.GetString("client.key_id"), key), nil
}

func provideClient(v *viper.Viper, signer openpayments.Signer) *openpayments.Client {
	return openpayments.NewClient(openpayments.Config{
		WalletAddressURL: v.GetString("client.wallet_address_url"),
		Signer:           signer,
	})
}

func provideNotifyConfig(v *viper.Viper) notify.Config {
	return notify.Config{
		AccountSID: v.GetString("notify.account_sid"),
		AuthToken:  v.GetString("notify.auth_token"),
		From:       v.GetString("notify.from"),
		To:         v.GetString("notify.to"),
	}
}

func provideFlowConfig(v *viper.Viper) flow.Config {
	return flow.Config{
		ReceivingWalletURL: v.GetString("wallet.receiving_address_url"),
		SendingWalletURL:   v.GetString("wallet.sending_address_url"),
	}
}

func provideCleanerConfig(v *viper.Viper) cleaner.Config {
	return cleaner.Config{
		Interval: v.GetDuration("cleaner.interval"),
	}
}
