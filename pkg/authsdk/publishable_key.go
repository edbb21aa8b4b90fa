package authsdk

import (
	"encoding/base64"
	"errors"
	"strings"
)

const (
	publishableKeyTestPrefix = "pk_test_"
	publishableKeyLivePrefix = "pk_live_"
)

var ErrInvalidPublishableKey = errors.New("invalid publishable key")

// PublishableKey is the decoded form of a pk_test_/pk_live_ key.
type PublishableKey struct {
	// FrontendAPI is the host of the instance's frontend API
	FrontendAPI string

	// Development is true for pk_test_ keys
	Development bool
}

// ParsePublishableKey decodes key. The part after the prefix is the base64
// encoding of the frontend API host followed by a "$" terminator.
func ParsePublishableKey(key string) (PublishableKey, error) {
	var pk PublishableKey
	var encoded string
	switch {
	case strings.HasPrefix(key, publishableKeyTestPrefix):
		pk.Development = true
		encoded = strings.TrimPrefix(key, publishableKeyTestPrefix)
	case strings.HasPrefix(key, publishableKeyLivePrefix):
		encoded = strings.TrimPrefix(key, publishableKeyLivePrefix)
	default:
		return pk, ErrInvalidPublishableKey
	}

	decoded, err := base64.RawStdEncoding.DecodeString(strings.TrimRight(encoded, "="))
	if err != nil {
		return pk, ErrInvalidPublishableKey
	}
	host, ok := strings.CutSuffix(string(decoded), "$")
	if !ok || host == "" {
		return pk, ErrInvalidPublishableKey
	}
	pk.FrontendAPI = host
	return pk, nil
}

// EncodePublishableKey builds a publishable key for host.
func EncodePublishableKey(host string, development bool) string {
	prefix := publishableKeyLivePrefix
	if development {
		prefix = publishableKeyTestPrefix
	}
	return prefix + base64.StdEncoding.EncodeToString([]byte(host+"$"))
}
