package summarizer

import (
	"errors"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/sashabaranov/go-openai"

	"textsum/internal/resilience/retry"
)

// asHTTPError maps SDK API errors onto retry.HTTPError so status-based retry rules apply.
// Other errors are returned unchanged.
func asHTTPError(err error) error {
	var oaErr *openai.APIError
	if errors.As(err, &oaErr) {
		return &retry.HTTPError{StatusCode: oaErr.HTTPStatusCode, Message: oaErr.Message, Err: err}
	}
	var oaReqErr *openai.RequestError
	if errors.As(err, &oaReqErr) {
		return &retry.HTTPError{StatusCode: oaReqErr.HTTPStatusCode, Message: oaReqErr.HTTPStatus, Err: err}
	}
	var anErr *anthropic.Error
	if errors.As(err, &anErr) {
		return &retry.HTTPError{StatusCode: anErr.StatusCode, Message: anErr.Error(), Err: err}
	}
	return err
}
