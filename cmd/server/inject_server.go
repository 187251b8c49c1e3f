package main

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/wire"
	"github.com/rs/cors"
	"github.com/spf13/viper"
	"github.com/tshepo-ncube/OpenPaymentHackathonServer/handler/api"
	"github.com/tshepo-ncube/OpenPaymentHackathonServer/handler/hc"
)

var serverSet = wire.NewSet(
	api.New,
	provideServer,
)

func provideServer(apiHandler *api.Server, v *viper.Viper) *http.Server {
	v.SetDefault("cors.origins", []string{"http://localhost:3000"})

	m := chi.NewMux()
	m.Use(middleware.RealIP)
	m.Use(middleware.Logger)
	m.Use(middleware.Recoverer)
	m.Use(cors.New(cors.Options{
		AllowedOrigins: v.GetStringSlice("cors.origins"),
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler)

	m.Mount("/", apiHandler.Handler())
	m.Mount("/hc", hc.Handler(version))

	return &http.Server{
		Addr:    fmt.Sprintf(":%d", opt.port),
		Handler: m,
	}
}
