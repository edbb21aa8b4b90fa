package authsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ============================================================================
// Provider Error Codes
// ============================================================================

const (
	// Codes the SDK produces itself
	ErrorCodeNetwork           = "network_error"
	ErrorCodeMalformedResponse = "malformed_response"
	ErrorCodeUnexpected        = "unexpected_error"

	// Codes returned by the provider that callers commonly branch on
	ErrorCodePasswordIncorrect     = "form_password_incorrect"
	ErrorCodeIdentifierNotFound    = "form_identifier_not_found"
	ErrorCodeIdentifierExists      = "form_identifier_exists"
	ErrorCodeCodeIncorrect         = "form_code_incorrect"
	ErrorCodeParamMissing          = "form_param_missing"
	ErrorCodeVerificationExpired   = "verification_expired"
	ErrorCodeTooManyRequests       = "too_many_requests"
	ErrorCodeAuthenticationInvalid = "authentication_invalid"
	ErrorCodeSignedOut             = "signed_out"
	ErrorCodeResourceNotFound      = "resource_not_found"
	ErrorCodeSessionExists         = "session_exists"
)

const genericErrorMessage = "Something went wrong. Please try again."

// ============================================================================
// ProviderError - an HTTP >= 400 response from the provider
// ============================================================================

// APIError is one entry of the provider's "errors" array.
type APIError struct {
	Code        string        `json:"code"`
	Message     string        `json:"message"`
	LongMessage string        `json:"long_message,omitempty"`
	Meta        *APIErrorMeta `json:"meta,omitempty"`
}

// APIErrorMeta points field-level errors at the offending parameter.
type APIErrorMeta struct {
	ParamName string `json:"param_name,omitempty"`
}

// ProviderError is returned when the provider answers with a status >= 400.
type ProviderError struct {
	// StatusCode is the HTTP status code of the response
	StatusCode int

	// Code is the machine-readable code of the first error entry
	Code string

	// Message prefers the first entry's long message, then its short one
	Message string

	// Errors holds every entry, for callers that need secondary (field) errors
	Errors []APIError

	// TraceID is the provider's trace id, useful in support requests
	TraceID string

	// client is the client record some error bodies carry under meta.client
	client json.RawMessage
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// ParamName returns the parameter the first error refers to, if any.
func (e *ProviderError) ParamName() string {
	if len(e.Errors) == 0 || e.Errors[0].Meta == nil {
		return ""
	}
	return e.Errors[0].Meta.ParamName
}

// ============================================================================
// NetworkError - no HTTP response at all
// ============================================================================

// NetworkError is returned when the request never produced an HTTP response.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", ErrorCodeNetwork, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// StatusCode is always 0 for network errors.
func (e *NetworkError) StatusCode() int { return 0 }

// ============================================================================
// MalformedResponseError - a response we could not make sense of
// ============================================================================

// MalformedResponseError is returned when a response arrived but its body is
// not valid JSON, or lacks fields every resource must carry.
type MalformedResponseError struct {
	StatusCode int
	Err        error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s (status %d): %v", ErrorCodeMalformedResponse, e.StatusCode, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// ============================================================================
// PreconditionError - caller misuse caught before any network call
// ============================================================================

var (
	ErrAttemptNotCreated       = errors.New("attempt has not been created")
	ErrStrategyNotSupported    = errors.New("strategy not supported for this identifier")
	ErrVerificationNotPrepared = errors.New("verification has not been prepared")
	ErrNoActiveSession         = errors.New("no active session")
	ErrDisposed                = errors.New("sdk client disposed")
)

// PreconditionError reports a flow step or operation invoked out of order.
// It never reaches the network. Err is one of the sentinels above.
type PreconditionError struct {
	Op     string
	Err    error
	Detail string
}

func (e *PreconditionError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %v: %s", e.Op, e.Err, e.Detail)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PreconditionError) Unwrap() error { return e.Err }

func precondition(op string, err error, detail string) error {
	return &PreconditionError{Op: op, Err: err, Detail: detail}
}

// ============================================================================
// Error Helpers
// ============================================================================

// ErrorCode returns the machine-readable code carried by err, or "".
func ErrorCode(err error) string {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Code
	}
	var ne *NetworkError
	if errors.As(err, &ne) {
		return ErrorCodeNetwork
	}
	var me *MalformedResponseError
	if errors.As(err, &me) {
		return ErrorCodeMalformedResponse
	}
	return ""
}

// IsSessionInvalid reports whether err means the provider no longer
// recognises the session the request was made for.
func IsSessionInvalid(err error) bool {
	var pe *ProviderError
	if !errors.As(err, &pe) {
		return errors.Is(err, ErrNoActiveSession)
	}
	if pe.StatusCode == http.StatusUnauthorized {
		return true
	}
	switch pe.Code {
	case ErrorCodeAuthenticationInvalid, ErrorCodeSignedOut, ErrorCodeResourceNotFound:
		return true
	}
	return false
}

// IsUnavailable reports whether err means the provider could not be reached
// or could not answer, as opposed to answering "no".
func IsUnavailable(err error) bool {
	var ne *NetworkError
	if errors.As(err, &ne) {
		return true
	}
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.StatusCode >= http.StatusInternalServerError
	}
	return false
}

// parseErrorResponse turns a >= 400 response body into a *ProviderError.
// Bodies that are not the provider's error shape still yield a structured
// error built from the status code.
func parseErrorResponse(status int, body []byte) *ProviderError {
	perr := &ProviderError{
		StatusCode: status,
		Code:       ErrorCodeUnexpected,
		Message:    genericErrorMessage,
	}

	var errResp struct {
		Errors []APIError `json:"errors"`
		Meta   struct {
			Client json.RawMessage `json:"client"`
		} `json:"meta"`
		TraceID string `json:"clerk_trace_id"`
	}
	if err := json.Unmarshal(body, &errResp); err != nil {
		if text := http.StatusText(status); text != "" {
			perr.Message = fmt.Sprintf("HTTP %d: %s", status, text)
		}
		return perr
	}

	perr.Errors = errResp.Errors
	perr.TraceID = errResp.TraceID
	perr.client = errResp.Meta.Client

	if len(errResp.Errors) > 0 {
		first := errResp.Errors[0]
		if first.Code != "" {
			perr.Code = first.Code
		}
		switch {
		case first.LongMessage != "":
			perr.Message = first.LongMessage
		case first.Message != "":
			perr.Message = first.Message
		}
	}

	return perr
}
