package api

import (
	"encoding/json"
	"net/http"

	"github.com/konstantinfoerster/deck-diff-go/internal/web"
	"github.com/rs/zerolog/hlog"
)

// ErrorResponse The body of every non 2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set(web.HeaderContentType, web.MimeTypeJSON)
	w.WriteHeader(status)
	if data == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("failed to encode response")
	}
}

// writeError answers with the status of err, see web.StatusOf. Server errors are logged.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := web.StatusOf(err)
	if status >= http.StatusInternalServerError {
		hlog.FromRequest(r).Error().Err(err).Int("status", status).Msg("request failed")
	}

	writeJSON(w, r, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: web.MessageOf(err),
		Code:    status,
	})
}

func newErr(r *http.Request, status int, msg string) error {
	return web.NewErr(r.URL.Path, status, msg)
}
