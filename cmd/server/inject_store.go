package main

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/tsenart/nap"
	"github.com/tshepo-ncube/OpenPaymentHackathonServer/core"
	"github.com/tshepo-ncube/OpenPaymentHackathonServer/store/db"
	"github.com/tshepo-ncube/OpenPaymentHackathonServer/store/session"

	_ "github.com/lib/pq"
)

var storeSet = wire.NewSet(provideSessionStore)

func provideSessionStore(v *viper.Viper) (core.SessionStore, func(), error) {
	v.SetDefault("db.driver", "postgres")

	if v.GetString("db.driver") == "memory" {
		return session.NewMemory(), func() {}, nil
	}

	dsn := v.GetString("db.dsn")
	for _, replica := range v.GetStringSlice("db.replicas") {
		dsn += ";" + replica
	}

	conn, err := nap.Open("postgres", dsn)
	if err != nil {
		return nil, nil, err
	}

	if err := db.Migrate(conn.Master()); err != nil {
		_ = conn.Close()
		return nil, nil, err
	}

	return session.New(conn), func() { _ = conn.Close() }, nil
}
