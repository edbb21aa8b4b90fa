package service

import (
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/frontauth/pkg/authsdk"
)

// Error codes the stub returns beyond the ones authsdk names.
const (
	CodeParamFormatInvalid     = "form_param_format_invalid"
	CodePasswordTooShort       = "form_password_length_too_short"
	CodeStrategyInvalid        = "strategy_for_user_invalid"
	CodeVerificationMissing    = "verification_missing"
	CodeStatusInvalid          = "verification_status_invalid"
	CodeNotOrganizationMember  = "not_a_member_in_organization"
	CodeOrganizationSlugExists = "organization_slug_already_exists"
)

// Error is a rejection the HTTP layer renders as a frontend API error body.
// When ClientID is set the caller's client record is attached as meta.client.
type Error struct {
	Status      int
	Code        string
	Message     string
	LongMessage string
	Param       string
	ClientID    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.Message)
}

func (e *Error) withClient(clientID string) *Error {
	e.ClientID = clientID
	return e
}

func paramMissing(param string) *Error {
	return &Error{
		Status:      http.StatusUnprocessableEntity,
		Code:        authsdk.ErrorCodeParamMissing,
		Message:     "is missing",
		LongMessage: param + " must be included.",
		Param:       param,
	}
}

func paramInvalid(param, long string) *Error {
	return &Error{
		Status:      http.StatusUnprocessableEntity,
		Code:        CodeParamFormatInvalid,
		Message:     "is invalid",
		LongMessage: long,
		Param:       param,
	}
}

func identifierNotFound() *Error {
	return &Error{
		Status:      http.StatusUnprocessableEntity,
		Code:        authsdk.ErrorCodeIdentifierNotFound,
		Message:     "Couldn't find your account.",
		LongMessage: "Couldn't find your account.",
		Param:       "identifier",
	}
}

func identifierExists(param string) *Error {
	return &Error{
		Status:      http.StatusUnprocessableEntity,
		Code:        authsdk.ErrorCodeIdentifierExists,
		Message:     "That " + param + " is taken. Please try another.",
		LongMessage: "That " + param + " is taken. Please try another.",
		Param:       param,
	}
}

func passwordIncorrect() *Error {
	return &Error{
		Status:      http.StatusUnprocessableEntity,
		Code:        authsdk.ErrorCodePasswordIncorrect,
		Message:     "Password is incorrect. Try again, or use another method.",
		LongMessage: "Password is incorrect. Try again, or use another method.",
		Param:       "password",
	}
}

func passwordTooShort() *Error {
	return &Error{
		Status:      http.StatusUnprocessableEntity,
		Code:        CodePasswordTooShort,
		Message:     "Passwords must be 8 characters or more.",
		LongMessage: "Passwords must be 8 characters or more.",
		Param:       "password",
	}
}

func codeIncorrect() *Error {
	return &Error{
		Status:      http.StatusUnprocessableEntity,
		Code:        authsdk.ErrorCodeCodeIncorrect,
		Message:     "Incorrect code",
		LongMessage: "Incorrect code",
		Param:       "code",
	}
}

func verificationExpired() *Error {
	return &Error{
		Status:      http.StatusUnprocessableEntity,
		Code:        authsdk.ErrorCodeVerificationExpired,
		Message:     "Verification expired",
		LongMessage: "This verification has expired. Please request a new code.",
		Param:       "code",
	}
}

func verificationMissing() *Error {
	return &Error{
		Status:      http.StatusBadRequest,
		Code:        CodeVerificationMissing,
		Message:     "Verification not prepared",
		LongMessage: "Prepare this verification before attempting it.",
		Param:       "strategy",
	}
}

func strategyInvalid() *Error {
	return &Error{
		Status:      http.StatusUnprocessableEntity,
		Code:        CodeStrategyInvalid,
		Message:     "is invalid",
		LongMessage: "The verification strategy is not valid for this account.",
		Param:       "strategy",
	}
}

func statusInvalid(long string) *Error {
	return &Error{
		Status:      http.StatusBadRequest,
		Code:        CodeStatusInvalid,
		Message:     "Invalid status",
		LongMessage: long,
	}
}

func sessionExists() *Error {
	return &Error{
		Status:      http.StatusBadRequest,
		Code:        authsdk.ErrorCodeSessionExists,
		Message:     "Session already exists",
		LongMessage: "You're already signed in.",
	}
}

func notFound(kind string) *Error {
	return &Error{
		Status:      http.StatusNotFound,
		Code:        authsdk.ErrorCodeResourceNotFound,
		Message:     "not found",
		LongMessage: kind + " not found",
	}
}

func authenticationInvalid() *Error {
	return &Error{
		Status:      http.StatusUnauthorized,
		Code:        authsdk.ErrorCodeAuthenticationInvalid,
		Message:     "Authentication is invalid",
		LongMessage: "The session is no longer active.",
	}
}

func signedOut() *Error {
	return &Error{
		Status:      http.StatusUnauthorized,
		Code:        authsdk.ErrorCodeSignedOut,
		Message:     "Signed out",
		LongMessage: "You are signed out.",
	}
}

func notMember() *Error {
	return &Error{
		Status:      http.StatusForbidden,
		Code:        CodeNotOrganizationMember,
		Message:     "Not a member",
		LongMessage: "You are not a member of this organization.",
		Param:       "organization_id",
	}
}
