package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/me/backoffice/pkg/model"
)

// FetchError is a failure to get any HTTP response from the upstream API:
// connection errors, timeouts and cancelled requests.
type FetchError struct {
	Endpoint string
	URL      string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Endpoint, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether err is worth retrying as is: transport
// failures (other than cancellation by the caller), request timeouts, rate
// limiting and server errors.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var fe *FetchError
	if errors.As(err, &fe) {
		return !errors.Is(fe.Err, context.Canceled)
	}
	var ae *model.APIError
	if errors.As(err, &ae) {
		return ae.StatusCode == http.StatusRequestTimeout ||
			ae.StatusCode == http.StatusTooManyRequests ||
			ae.StatusCode >= 500
	}
	return false
}

// Messages returns the user-facing messages carried by err. Upstream
// validation errors yield their messages verbatim; anything else yields a
// single generic line.
func Messages(err error) []string {
	var ae *model.APIError
	if errors.As(err, &ae) && len(ae.Message) > 0 && ae.StatusCode < 500 {
		return ae.Message
	}
	return []string{"Ошибка загрузки данных"}
}

const maxErrorBody = 512

// decodeAPIError builds the error for a non-2xx response. Bodies that are
// not in the upstream error format are kept as a truncated message.
func decodeAPIError(status int, body []byte) *model.APIError {
	ae := &model.APIError{}
	if err := json.Unmarshal(body, ae); err == nil && (ae.StatusCode != 0 || len(ae.Message) > 0) {
		if ae.StatusCode == 0 {
			ae.StatusCode = status
		}
		return ae
	}

	ae = &model.APIError{StatusCode: status, Kind: http.StatusText(status)}
	if msg := strings.TrimSpace(string(body)); msg != "" {
		if len(msg) > maxErrorBody {
			msg = msg[:maxErrorBody] + "..."
		}
		ae.Message = model.Messages{msg}
	}
	return ae
}
