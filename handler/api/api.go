package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tshepo-ncube/OpenPaymentHackathonServer/core"
	"github.com/tshepo-ncube/OpenPaymentHackathonServer/handler/render"
	"golang.org/x/sync/singleflight"
)

func New(flows core.FlowService, logger *slog.Logger) *Server {
	return &Server{
		flows:  flows,
		logger: logger.With("server", "api"),
		sf:     &singleflight.Group{},
	}
}

type Server struct {
	flows  core.FlowService
	logger *slog.Logger

	// sf collapses concurrent finish calls for the same continuation token;
	// a continuation is spendable exactly once.
	sf *singleflight.Group
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Get("/finish", s.finishRedirect)
	r.Post("/start_one_time_payment", s.startOneTime)
	r.Post("/finish_one_time_payment", s.finishOneTime)
	r.Post("/start_recurring_payments", s.startRecurring)
	r.Post("/finish_recurring_payments", s.finishRecurring)

	return r
}

// finishRedirect is where the wallet's consent page sends the user's
// browser. The frontend reads the interaction reference from the query and
// calls the finish endpoint itself; here we only acknowledge.
func (s *Server) finishRedirect(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Payment interaction completed successfully."))
}

func (s *Server) startOneTime(w http.ResponseWriter, r *http.Request) {
	input, ok := s.decodeStart(w, r)
	if !ok {
		return
	}

	output, err := s.flows.StartOneTime(r.Context(), input)
	if err != nil {
		s.logger.Error("flows.StartOneTime", "err", err)
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusOK, output)
}

func (s *Server) startRecurring(w http.ResponseWriter, r *http.Request) {
	input, ok := s.decodeStart(w, r)
	if !ok {
		return
	}

	output, err := s.flows.StartRecurring(r.Context(), input)
	if err != nil {
		s.logger.Error("flows.StartRecurring", "err", err)
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusOK, output)
}

func (s *Server) finishOneTime(w http.ResponseWriter, r *http.Request) {
	var input core.FinishPaymentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		render.Error(w, &core.ValidationError{Message: "invalid request body"})
		return
	}

	v, err, _ := s.sf.Do(input.ContinueAccessToken, func() (interface{}, error) {
		return s.flows.FinishOneTime(r.Context(), input)
	})

	if err != nil {
		s.logger.Error("flows.FinishOneTime", "err", err)
		render.Error(w, err)
		return
	}

	render.JSON(w, http.StatusOK, v.(*core.FinishPaymentOutput))
}

func (s *Server) finishRecurring(w http.ResponseWriter, r *http.Request) {
	var input core.FinishPaymentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		render.Error(w, &core.ValidationError{Message: "invalid request body"})
		return
	}

	_, err, _ := s.sf.Do(input.ContinueAccessToken, func() (interface{}, error) {
		return nil, s.flows.FinishRecurring(r.Context(), input)
	})

	if err != nil {
		s.logger.Error("flows.FinishRecurring", "err", err)
		render.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) decodeStart(w http.ResponseWriter, r *http.Request) (core.StartPaymentInput, bool) {
	var input core.StartPaymentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		render.Error(w, &core.ValidationError{Message: "invalid request body"})
		return input, false
	}

	if input.SenderWalletURL == "" {
		render.JSON(w, http.StatusBadRequest, map[string]string{"error": "sendingWalletAddress is required"})
		return input, false
	}

	return input, true
}
