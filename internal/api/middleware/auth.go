package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bhujal/registry/internal/api/types"
	"github.com/bhujal/registry/internal/models"
	appErr "github.com/bhujal/registry/pkg/errors"
	"github.com/bhujal/registry/pkg/logger"
)

// Rejection messages returned by the auth gate.
const (
	MsgNoToken       = "No token, authorization denied"
	MsgBadFormat     = "Invalid token format"
	MsgTokenNotValid = "Token is not valid"
)

const bearerPrefix = "Bearer "

// TokenVerifier checks a session token and returns its subject.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// CustomerResolver loads the customer a token subject refers to. It returns
// an error with appErr.CodeNotFound when no such customer exists.
type CustomerResolver interface {
	GetCustomer(ctx context.Context, id string) (*models.Customer, error)
}

// Identity is the authenticated caller. It is read-only once attached.
type Identity struct {
	CustomerID uuid.UUID
	customer   models.Customer
}

// Customer returns a copy of the resolved customer record.
func (i Identity) Customer() *models.Customer {
	c := i.customer
	return &c
}

type identityKeyType struct{}

var identityKey identityKeyType

// WithIdentity attaches the caller's identity to ctx.
func WithIdentity(ctx context.Context, c *models.Customer) context.Context {
	return context.WithValue(ctx, identityKey, Identity{CustomerID: c.ID, customer: *c})
}

// IdentityFrom returns the identity attached by Auth.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// GetCustomerID returns the authenticated customer's ID, or "" when the
// request did not pass through Auth.
func GetCustomerID(ctx context.Context) string {
	if id, ok := IdentityFrom(ctx); ok {
		return id.CustomerID.String()
	}
	return ""
}

// Auth admits only requests carrying a valid bearer token for an existing
// customer. Any other request ends here with 401, or 500 if the customer
// lookup itself fails.
func Auth(tokens TokenVerifier, customers CustomerResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				reject(w, MsgNoToken)
				return
			}
			if !strings.HasPrefix(header, bearerPrefix) {
				reject(w, MsgBadFormat)
				return
			}
			token := strings.TrimSpace(header[len(bearerPrefix):])
			if token == "" {
				reject(w, MsgNoToken)
				return
			}

			subject, err := tokens.Verify(token)
			if err != nil {
				reject(w, MsgTokenNotValid)
				return
			}

			customer, err := customers.GetCustomer(r.Context(), subject)
			if err != nil {
				if appErr.IsCode(err, appErr.CodeNotFound) {
					reject(w, MsgTokenNotValid)
					return
				}
				logger.L().Error("auth gate: resolve customer failed",
					zap.String("request_id", GetRequestID(r.Context())),
					zap.Error(err),
				)
				types.WriteFailure(w, http.StatusInternalServerError, &types.APIError{
					Code:    string(appErr.CodeInternal),
					Message: types.ServerErrorMessage,
				})
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), customer)))
		})
	}
}

func reject(w http.ResponseWriter, msg string) {
	types.WriteFailure(w, http.StatusUnauthorized, &types.APIError{
		Code:    string(appErr.CodeUnauthorized),
		Message: msg,
	})
}
