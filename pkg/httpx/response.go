package httpx

import (
	"encoding/json"
	"net/http"
)

// WriteJSON writes a JSON response with the given status code.
// It automatically sets the Content-Type header and Cache-Control headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
// This is commonly required for sensitive responses like tokens.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

// Envelope is the frontend API's success body: the primary resource plus
// the caller's client record.
type Envelope struct {
	Response any `json:"response"`
	Client   any `json:"client,omitempty"`
}

// WriteEnvelope writes v wrapped in an Envelope.
func WriteEnvelope(w http.ResponseWriter, code int, response, client any) {
	WriteJSON(w, code, Envelope{Response: response, Client: client})
}

// APIError is one entry of an error body.
type APIError struct {
	Code        string     `json:"code"`
	Message     string     `json:"message"`
	LongMessage string     `json:"long_message,omitempty"`
	Meta        *ErrorMeta `json:"meta,omitempty"`
}

// ErrorMeta names the parameter an error refers to.
type ErrorMeta struct {
	ParamName string `json:"param_name,omitempty"`
}

// ErrorBody is the frontend API's error body.
type ErrorBody struct {
	Errors []APIError `json:"errors"`
	Meta   *BodyMeta  `json:"meta,omitempty"`
}

// BodyMeta carries the client record alongside an error.
type BodyMeta struct {
	Client any `json:"client,omitempty"`
}

// WriteError writes a single-entry error body. param may be empty.
func WriteError(w http.ResponseWriter, code int, errCode, message, longMessage, param string) {
	WriteErrorBody(w, code, ErrorBody{Errors: []APIError{NewAPIError(errCode, message, longMessage, param)}})
}

// WriteErrorBody writes body as-is.
func WriteErrorBody(w http.ResponseWriter, code int, body ErrorBody) {
	WriteJSON(w, code, body)
}

// NewAPIError builds an APIError, attaching meta only when param is set.
func NewAPIError(errCode, message, longMessage, param string) APIError {
	e := APIError{Code: errCode, Message: message, LongMessage: longMessage}
	if param != "" {
		e.Meta = &ErrorMeta{ParamName: param}
	}
	return e
}
