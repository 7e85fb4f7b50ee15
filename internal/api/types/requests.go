package types

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	appErr "github.com/bhujal/registry/pkg/errors"
)

// MaxBodyBytes bounds every JSON request body.
const MaxBodyBytes = 1 << 20

// DecodeJSON reads a single JSON value from the request body into v. An
// empty body leaves v untouched.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return appErr.Wrap(err, appErr.CodeInvalid, "Invalid request body")
	}
	return nil
}
