package render

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/oxtoacart/bpool"
	"github.com/tshepo-ncube/OpenPaymentHackathonServer/core"
)

var buffers = bpool.NewBufferPool(64)

// JSON encodes v through a pooled buffer so a marshal failure never leaves
// a half-written body behind the status line.
func JSON(w http.ResponseWriter, status int, v any) {
	buf := buffers.Get()
	defer buffers.Put(buf)

	if err := json.NewEncoder(buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// Error writes the structured error body for err. Every failure of a flow
// maps to an explicit response; nothing is allowed to die silently.
func Error(w http.ResponseWriter, err error) {
	JSON(w, statusCode(err), map[string]string{"error": err.Error()})
}

func statusCode(err error) int {
	var (
		validation  *core.ValidationError
		notAccepted *core.GrantNotAcceptedError
		resolution  *core.ResolutionError
		grantState  *core.UnexpectedGrantStateError
		quote       *core.QuoteError
		execution   *core.PaymentExecutionError
	)

	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &notAccepted):
		return http.StatusConflict
	case errors.As(err, &resolution),
		errors.As(err, &grantState),
		errors.As(err, &quote),
		errors.As(err, &execution):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
