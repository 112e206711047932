package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
)

const maxErrorMsgLengthBytes int64 = 2048

// NewErr creates an error for a response with the given status. Used for upstream responses
// as well as for the responses of the deck api.
func NewErr(url string, code int, msg string) error {
	return &StatusError{URL: url, StatusCode: code, Message: msg}
}

// NewHTTPErr reads at most 2 KiB of the response body as error message.
func NewHTTPErr(url string, resp *http.Response) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorMsgLengthBytes))
	if err != nil {
		return NewErr(url, resp.StatusCode, fmt.Sprintf("failed to read response body due to %v", err))
	}

	return NewErr(url, resp.StatusCode, string(body))
}

type StatusError struct {
	URL        string
	Message    string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%d: %s (URL: %s)", e.StatusCode, strings.TrimSpace(e.Message), e.URL)
}

// Is matches any StatusError with the same status code.
func (e *StatusError) Is(target error) bool {
	t, ok := target.(*StatusError)
	if !ok {
		return false
	}

	return e.StatusCode == t.StatusCode
}

func IsStatusCode(err error, statusCode ...int) bool {
	if len(statusCode) == 0 {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return slices.Contains(statusCode, statusErr.StatusCode)
	}

	return false
}

// IsNotFound reports whether err is a StatusError with status 404.
func IsNotFound(err error) bool {
	return IsStatusCode(err, http.StatusNotFound)
}

// StatusOf returns the status code of a wrapped StatusError, 500 for any other error.
func StatusOf(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}

	return http.StatusInternalServerError
}

// MessageOf returns the trimmed message of a wrapped StatusError or the error text otherwise.
func MessageOf(err error) string {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return strings.TrimSpace(statusErr.Message)
	}

	return err.Error()
}
