package hc

import (
	"net/http"
	"time"

	"github.com/tshepo-ncube/OpenPaymentHackathonServer/handler/render"
)

func Handler(version string) http.Handler {
	t := time.Now()
	fn := func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, http.StatusOK, map[string]any{
			"version": version,
			"uptime":  time.Since(t).String(),
		})
	}

	return http.HandlerFunc(fn)
}
