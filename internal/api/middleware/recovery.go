package middleware

import (
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"

	"github.com/bhujal/registry/internal/api/types"
	appErr "github.com/bhujal/registry/pkg/errors"
	"github.com/bhujal/registry/pkg/logger"
)

// Recovery logs panics and returns 500 with a generic message.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logger.L().Error("panic recovered",
				zap.String("request_id", GetRequestID(r.Context())),
				zap.Any("panic", rec),
				zap.ByteString("stack", debug.Stack()),
			)
			types.WriteFailure(w, http.StatusInternalServerError, &types.APIError{
				Code:    string(appErr.CodeInternal),
				Message: types.ServerErrorMessage,
			})
		}()
		next.ServeHTTP(w, r)
	})
}
