package summarizer

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// Status tells the caller whether a failed call is worth repeating.
type Status int

const (
	StatusSuccess Status = iota
	StatusTransient
	StatusPermanent
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusTransient:
		return "transient"
	case StatusPermanent:
		return "permanent"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result is the outcome of one Generate call. Err is nil only on success.
type Result struct {
	Text   string
	Status Status
	Err    error
}

// OK reports whether the call produced a summary.
func (r Result) OK() bool {
	return r.Status == StatusSuccess
}

func Success(text string) Result {
	return Result{Text: text, Status: StatusSuccess}
}

func Transient(err error) Result {
	return Result{Status: StatusTransient, Err: err}
}

func Permanent(err error) Result {
	return Result{Status: StatusPermanent, Err: err}
}

// Failure wraps err as a transient or permanent result.
func Failure(err error) Result {
	if IsTransient(err) {
		return Transient(err)
	}
	return Permanent(err)
}

var (
	errEmptyResponse = errors.New("empty response from model")
	errRateLimited   = errors.New("rate limited")
)

// StatusError is a non-2xx HTTP reply from a model server.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("model server: %d %s", e.Code, http.StatusText(e.Code))
	}
	return fmt.Sprintf("model server: %d %s: %s", e.Code, http.StatusText(e.Code), e.Body)
}

// IsTransient reports whether err is a timeout, a dropped connection, a rate
// limit or a server-side error.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, errRateLimited) || errors.Is(err, errEmptyResponse) {
		return true
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return isRetryableStatus(statusErr.Code)
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	// Gemini reports quota and overload conditions only in the message.
	msg := err.Error()
	for _, marker := range []string{"429", "500", "502", "503", "504", "quota", "RESOURCE_EXHAUSTED", "UNAVAILABLE", "DEADLINE_EXCEEDED", "INTERNAL"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

func isRetryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}
