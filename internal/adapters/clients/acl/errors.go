package acl

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/nishantarora/portfolio/internal/adapters/clients"
	"github.com/nishantarora/portfolio/internal/domain"
)

// errorBodyLimit bounds how much of an error body is inspected.
const errorBodyLimit = 4 << 10

// ErrorResponse is a JSON error body, in nested {"error":{...}} or flat form.
// Static hosts usually send HTML instead, in which case nothing is parsed.
type ErrorResponse struct {
	Error   ErrorDetail `json:"error"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ErrorDetail is the nested part of ErrorResponse.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// GetMessage returns the message from either format.
func (e *ErrorResponse) GetMessage() string {
	if e.Error.Message != "" {
		return e.Error.Message
	}

	return e.Message
}

// ParseErrorResponse parses a JSON error body. It returns nil when the
// body is not JSON or carries no message.
func ParseErrorResponse(body io.Reader) *ErrorResponse {
	if body == nil {
		return nil
	}

	var errResp ErrorResponse
	if err := json.NewDecoder(io.LimitReader(body, errorBodyLimit)).Decode(&errResp); err != nil {
		return nil
	}

	if errResp.GetMessage() == "" {
		return nil
	}

	return &errResp
}

// MapHTTPError maps a failed request for resource to a domain fetch error.
// clientErr covers transport failures, the open circuit and exhausted
// retries; otherwise resp is a non-2xx response.
func MapHTTPError(resp *http.Response, clientErr error, resource string) error {
	if clientErr != nil {
		return mapClientError(clientErr, resource)
	}

	if resp == nil {
		return domain.NewFetchError(resource, "no response received")
	}

	reason := fmt.Sprintf("status %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	if errResp := ParseErrorResponse(resp.Body); errResp != nil {
		reason += ": " + errResp.GetMessage()
	}

	return domain.NewFetchError(resource, reason)
}

func mapClientError(err error, resource string) error {
	switch {
	case errors.Is(err, clients.ErrCircuitOpen):
		return &domain.FetchError{Resource: resource, Reason: "content host circuit open", Err: err}
	case errors.Is(err, clients.ErrMaxRetriesExceeded):
		return &domain.FetchError{Resource: resource, Reason: "retries exhausted", Err: err}
	default:
		return domain.WrapFetchError(resource, err)
	}
}
