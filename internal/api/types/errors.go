package types

import (
	"net/http"

	"github.com/bhujal/registry/internal/validation"
	appErr "github.com/bhujal/registry/pkg/errors"
)

// ServerErrorMessage is the only text a client sees for an unexpected fault.
const ServerErrorMessage = "Server Error"

// StatusFor maps an error code to its HTTP status.
func StatusFor(code appErr.Code) int {
	switch code {
	case appErr.CodeInvalid:
		return http.StatusBadRequest
	case appErr.CodeUnauthorized:
		return http.StatusUnauthorized
	case appErr.CodeForbidden:
		return http.StatusForbidden
	case appErr.CodeNotFound:
		return http.StatusNotFound
	case appErr.CodeConflict, appErr.CodeAlreadyExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// FromError converts err into a status and a client-safe APIError.
// Anything that maps to 500 loses its detail.
func FromError(err error) (int, *APIError) {
	if err == nil {
		return http.StatusOK, nil
	}
	code := appErr.CodeOf(err)
	status := StatusFor(code)
	if status == http.StatusInternalServerError {
		return status, &APIError{Code: string(appErr.CodeInternal), Message: ServerErrorMessage}
	}
	return status, &APIError{
		Code:    string(code),
		Message: appErr.MessageOf(err),
		Fields:  validation.FieldsOf(err),
	}
}
