package authsdk

import (
	"net/http"
	"net/url"
	"strings"
)

const (
	// DefaultAPIVersion is sent on every request as __clerk_api_version.
	DefaultAPIVersion = "2025-04-10"

	// DefaultClientVersion is sent on every request as _clerk_js_version.
	DefaultClientVersion = "5.63.0"

	ParamAPIVersion      = "__clerk_api_version"
	ParamClientVersion   = "_clerk_js_version"
	ParamMethodOverride  = "_method"
	ParamDevBrowserToken = "__clerk_db_jwt"

	contentTypeForm = "application/x-www-form-urlencoded"
)

// developmentSuffixes mark frontend API hosts of development instances.
// Those hosts expect the dev-browser token on every request.
var developmentSuffixes = []string{
	".lcl.dev",
	".lclstage.dev",
	".stg.dev",
	".stgstage.dev",
	".accounts.dev",
	".accountsstage.dev",
	".accounts.lclclerk.com",
}

// Request is a logical call against the frontend API.
type Request struct {
	// Method is any HTTP verb; non GET/POST verbs are tunnelled over POST
	Method string

	// Path is relative to the API root, e.g. "/client/sign_ins"
	Path string

	// Query holds extra query parameters
	Query url.Values

	// Body holds form fields; it is sent form-urlencoded
	Body url.Values
}

// ShapeOptions carries the per-instance inputs to ShapeRequest.
type ShapeOptions struct {
	// BaseURL is the scheme and host of the frontend API
	BaseURL string

	// Development marks a development instance
	Development bool

	// DevBrowserToken is appended on development instances when non-empty
	DevBrowserToken string

	APIVersion    string
	ClientVersion string
}

// ShapedRequest is what actually goes on the wire.
type ShapedRequest struct {
	Method      string
	URL         string
	Body        string
	ContentType string
}

// ShapeRequest rewrites a logical request into its wire form. It is pure:
// the same inputs always produce the same output.
func ShapeRequest(req Request, opts ShapeOptions) ShapedRequest {
	method := strings.ToUpper(req.Method)
	if method == "" {
		method = http.MethodGet
	}

	query := url.Values{}
	for k, vs := range req.Query {
		query[k] = append([]string(nil), vs...)
	}

	apiVersion := opts.APIVersion
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
	}
	clientVersion := opts.ClientVersion
	if clientVersion == "" {
		clientVersion = DefaultClientVersion
	}
	query.Set(ParamAPIVersion, apiVersion)
	query.Set(ParamClientVersion, clientVersion)

	if method != http.MethodGet && method != http.MethodPost {
		query.Set(ParamMethodOverride, method)
		method = http.MethodPost
	}

	if opts.Development && opts.DevBrowserToken != "" {
		query.Set(ParamDevBrowserToken, opts.DevBrowserToken)
	}

	shaped := ShapedRequest{
		Method: method,
		URL:    strings.TrimRight(opts.BaseURL, "/") + "/v1" + ensureLeadingSlash(req.Path) + "?" + query.Encode(),
	}
	if method == http.MethodPost {
		shaped.ContentType = contentTypeForm
		if len(req.Body) > 0 {
			shaped.Body = req.Body.Encode()
		}
	}
	return shaped
}

// IsDevelopmentDomain reports whether host belongs to a development instance.
func IsDevelopmentDomain(host string) bool {
	host = strings.ToLower(hostOnly(host))
	for _, suffix := range developmentSuffixes {
		if strings.HasSuffix(host, suffix) {
			return true
		}
	}
	return false
}

// BaseURL turns a bare frontend API host into an https base URL. Values that
// already carry a scheme are returned unchanged.
func BaseURL(domain string) string {
	domain = strings.TrimRight(domain, "/")
	if strings.Contains(domain, "://") {
		return domain
	}
	return "https://" + domain
}

func hostOnly(domain string) string {
	if i := strings.Index(domain, "://"); i >= 0 {
		domain = domain[i+3:]
	}
	if i := strings.IndexAny(domain, "/:"); i >= 0 {
		domain = domain[:i]
	}
	return domain
}

func ensureLeadingSlash(p string) string {
	if strings.HasPrefix(p, "/") {
		return p
	}
	return "/" + p
}
