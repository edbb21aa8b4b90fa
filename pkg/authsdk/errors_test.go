package authsdk

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorResponse(t *testing.T) {
	t.Parallel()

	t.Run("first entry wins and long message preferred", func(t *testing.T) {
		body := []byte(`{
			"errors": [
				{"code": "form_password_incorrect", "message": "is incorrect", "long_message": "Password is incorrect. Try again.", "meta": {"param_name": "password"}},
				{"code": "form_param_missing", "message": "missing"}
			],
			"clerk_trace_id": "trace_1"
		}`)
		pe := parseErrorResponse(http.StatusUnprocessableEntity, body)

		require.Equal(t, 422, pe.StatusCode)
		require.Equal(t, ErrorCodePasswordIncorrect, pe.Code)
		require.Equal(t, "Password is incorrect. Try again.", pe.Message)
		require.Equal(t, "password", pe.ParamName())
		require.Len(t, pe.Errors, 2)
		require.Equal(t, "trace_1", pe.TraceID)
	})

	t.Run("short message fallback", func(t *testing.T) {
		pe := parseErrorResponse(http.StatusBadRequest, []byte(`{"errors":[{"code":"x","message":"short"}]}`))
		require.Equal(t, "short", pe.Message)
	})

	t.Run("empty error list keeps fallbacks", func(t *testing.T) {
		pe := parseErrorResponse(http.StatusBadRequest, []byte(`{"errors":[]}`))
		require.Equal(t, ErrorCodeUnexpected, pe.Code)
		require.Equal(t, genericErrorMessage, pe.Message)
		require.Empty(t, pe.ParamName())
	})

	t.Run("non JSON body", func(t *testing.T) {
		pe := parseErrorResponse(http.StatusBadGateway, []byte("<html>bad gateway</html>"))
		require.Equal(t, http.StatusBadGateway, pe.StatusCode)
		require.Equal(t, ErrorCodeUnexpected, pe.Code)
		require.Contains(t, pe.Message, "Bad Gateway")
	})

	t.Run("meta client is kept", func(t *testing.T) {
		pe := parseErrorResponse(http.StatusUnprocessableEntity, []byte(`{"errors":[{"code":"c"}],"meta":{"client":{"id":"client_1"}}}`))
		require.JSONEq(t, `{"id":"client_1"}`, string(pe.client))
	})
}

func TestErrorClassification(t *testing.T) {
	t.Parallel()

	unauthorized := &ProviderError{StatusCode: http.StatusUnauthorized, Code: ErrorCodeAuthenticationInvalid}
	notFound := &ProviderError{StatusCode: http.StatusNotFound, Code: ErrorCodeResourceNotFound}
	unprocessable := &ProviderError{StatusCode: http.StatusUnprocessableEntity, Code: ErrorCodePasswordIncorrect}
	unavailable := &ProviderError{StatusCode: http.StatusServiceUnavailable, Code: ErrorCodeUnexpected}
	network := &NetworkError{Err: errors.New("connection refused")}
	malformed := &MalformedResponseError{StatusCode: 200, Err: errors.New("eof")}

	t.Run("IsSessionInvalid", func(t *testing.T) {
		require.True(t, IsSessionInvalid(unauthorized))
		require.True(t, IsSessionInvalid(notFound))
		require.True(t, IsSessionInvalid(fmt.Errorf("wrapped: %w", unauthorized)))
		require.True(t, IsSessionInvalid(precondition("op", ErrNoActiveSession, "")))
		require.False(t, IsSessionInvalid(unprocessable))
		require.False(t, IsSessionInvalid(unavailable))
		require.False(t, IsSessionInvalid(network))
	})

	t.Run("IsUnavailable", func(t *testing.T) {
		require.True(t, IsUnavailable(network))
		require.True(t, IsUnavailable(unavailable))
		require.False(t, IsUnavailable(unauthorized))
		require.False(t, IsUnavailable(malformed))
		require.False(t, IsUnavailable(nil))
	})

	t.Run("ErrorCode", func(t *testing.T) {
		require.Equal(t, ErrorCodePasswordIncorrect, ErrorCode(unprocessable))
		require.Equal(t, ErrorCodeNetwork, ErrorCode(network))
		require.Equal(t, ErrorCodeMalformedResponse, ErrorCode(malformed))
		require.Empty(t, ErrorCode(errors.New("plain")))
	})

	t.Run("network error has status zero", func(t *testing.T) {
		require.Equal(t, 0, network.StatusCode())
		require.ErrorContains(t, network, "connection refused")
	})

	t.Run("precondition unwraps to sentinel", func(t *testing.T) {
		err := precondition("attempt_first_factor", ErrVerificationNotPrepared, "email_code")
		require.ErrorIs(t, err, ErrVerificationNotPrepared)

		var pe *PreconditionError
		require.ErrorAs(t, err, &pe)
		require.Equal(t, "attempt_first_factor", pe.Op)
		require.Contains(t, err.Error(), "email_code")
	})
}
