package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
	"nmai/sunrise-service/internal/providers"
)

const contentTypeJSON = "application/json; charset=UTF-8"

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Message: message})
}

// respondWithUpstreamError logs a failed provider call and answers 504 when it
// ran out of time, 502 otherwise.
func respondWithUpstreamError(w http.ResponseWriter, r *http.Request, err error) {
	hlog.FromRequest(r).Error().Err(err).Str("path", r.URL.Path).Msg("upstream request failed")

	if errors.Is(err, providers.ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
		respondWithError(w, http.StatusGatewayTimeout, msgUpstreamTimeout)
		return
	}

	respondWithError(w, http.StatusBadGateway, msgUpstreamFailed)
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(payload); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
		respondWithRawJSON(w, http.StatusInternalServerError, []byte(`{"message":"`+msgInternalError+`"}`))
		return
	}

	respondWithRawJSON(w, code, bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
}

// respondWithRawJSON writes body untouched; callers guarantee it is valid JSON.
func respondWithRawJSON(w http.ResponseWriter, code int, body []byte) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(code)
	if _, err := w.Write(body); err != nil {
		log.Debug().Err(err).Msg("failed to write response")
	}
}

// queryParam returns the first non-blank value of name. Blank values count as absent.
func queryParam(r *http.Request, name string) string {
	for _, value := range r.URL.Query()[name] {
		if value != "" {
			return value
		}
	}
	return ""
}
