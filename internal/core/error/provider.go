package errx

import (
	"context"
	"errors"
	"net"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// WrapProvider maps text-generation provider errors to the unified Error type
// with the appropriate kind.
func WrapProvider(err error) *Error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return New(err, KindTimeout, ProviderErrorMessage)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return New(err, KindTimeout, ProviderErrorMessage)
	}

	if status, ok := providerStatus(err); ok {
		switch status {
		case http.StatusUnauthorized, http.StatusForbidden:
			return New(err, KindAuth, ProviderErrorMessage)
		}
	}

	return New(err, KindUnknown, ProviderErrorMessage)
}

// providerStatus extracts the HTTP status from go-openai error types.
func providerStatus(err error) (int, bool) {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode, true
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode, true
	}
	return 0, false
}
