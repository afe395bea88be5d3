package api

import (
	"encoding/json/v2"
	"net/http"

	apperrors "github.com/pagekeep/pagekeep-server/internal/errors"
)

// decodeBody decodes a JSON request body into dest.
// Returns a VALIDATION domain error for bodies that fail to parse.
func decodeBody(r *http.Request, dest any) error {
	if r.Body == nil {
		return apperrors.Validation("request body is required")
	}
	if err := json.UnmarshalRead(r.Body, dest); err != nil {
		return apperrors.Validation("invalid request body").WithCause(err)
	}
	return nil
}
