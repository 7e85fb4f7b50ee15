package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/bhujal/registry/internal/api/middleware"
	"github.com/bhujal/registry/internal/api/types"
	"github.com/bhujal/registry/pkg/logger"
	"github.com/bhujal/registry/pkg/utils"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	types.WriteJSON(w, status, v)
}

// writeError maps err onto the envelope. Server faults are logged with the
// request ID and reach the client only as a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, apiErr := types.FromError(err)
	if status == http.StatusInternalServerError {
		logger.L().Error("request failed",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	types.WriteFailure(w, status, apiErr)
}

// writeListing writes v with a strong ETag and answers a matching
// If-None-Match with 304.
func writeListing(w http.ResponseWriter, r *http.Request, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		writeError(w, r, err)
		return
	}
	etag := utils.StrongETag(body)
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(append(body, '\n'))
}
