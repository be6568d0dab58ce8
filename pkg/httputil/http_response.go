package httputil

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
)

// Request bodies above this size are rejected.
const MaxBodyBytes = 1 << 20

var ErrBadBody = errors.New("invalid request body")

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func WriteErrorResponse(w http.ResponseWriter, statusCode int, message string, details error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	resp := ErrorResponse{
		Code:    statusCode,
		Message: message,
	}

	if details != nil {
		resp.Details = details.Error()
	}

	sonic.ConfigFastest.NewEncoder(w).Encode(resp)
}

// WriteJSONResponse encodes body with the given status. A nil body writes
// headers only, which is what 204 responses want.
func WriteJSONResponse(w http.ResponseWriter, statusCode int, body any) {
	if body == nil {
		w.WriteHeader(statusCode)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	sonic.ConfigDefault.NewEncoder(w).Encode(body)
}

// DecodeJSON reads a single JSON value from the request body into dst.
// Every failure wraps ErrBadBody.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	defer r.Body.Close()
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrBadBody, err.Error())
	}
	if len(data) == 0 {
		return fmt.Errorf("%w: empty body", ErrBadBody)
	}
	if err := sonic.ConfigDefault.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%w: %s", ErrBadBody, err.Error())
	}
	return nil
}
