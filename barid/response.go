package barid

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// apiError is the error object carried by failed responses.
type apiError struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// domainsNote is attached to failures caused by an unsupported email domain.
type domainsNote struct {
	SupportedDomains []string `json:"supportedDomains"`
}

// envelope is the common response shape. Success is absent on some
// endpoints (domains, health); a bare result then counts as success.
type envelope struct {
	Success *bool           `json:"success"`
	Result  json.RawMessage `json:"result"`
	Error   *apiError       `json:"error"`
	Note    *domainsNote    `json:"note"`
}

func (e *envelope) succeeded() bool {
	if e.Success != nil {
		return *e.Success
	}
	return e.Error == nil && present(e.Result)
}

func present(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
}

// classifier maps a failed response to one of the domain error types.
type classifier func(apiErr *apiError, note *domainsNote) error

// classifyEmailKeyed is used by endpoints addressed by the inbox email.
// An unsupported domain is reported through the note, so it is checked first.
func classifyEmailKeyed(apiErr *apiError, note *domainsNote) error {
	if note != nil && note.SupportedDomains != nil {
		return &DomainError{
			Name:             apiErr.Name,
			Message:          apiErr.Message,
			SupportedDomains: note.SupportedDomains,
		}
	}
	return classifyIDKeyed(apiErr, nil)
}

// classifyIDKeyed is used by endpoints addressed by a message or attachment ID.
// The note is never consulted.
func classifyIDKeyed(apiErr *apiError, _ *domainsNote) error {
	if apiErr.Name == notFoundName {
		return &NotFoundError{Name: apiErr.Name, Message: apiErr.Message}
	}
	return &ValidationError{Name: apiErr.Name, Message: apiErr.Message}
}

// call issues one request, decodes the envelope and either stores the result
// into out or returns the classified error. A nil out discards the result.
func (c *Client) call(ctx context.Context, method, path string, params url.Values, classify classifier, out any) error {
	_, body, err := c.doRequest(ctx, method, path, params)
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return c.decodeError(method, path, err)
	}

	if !env.succeeded() {
		return c.failure(method, path, env.Error, env.Note, classify)
	}

	if out == nil {
		return nil
	}
	if !present(env.Result) {
		return fmt.Errorf("%s %s: %w: success without result", method, path, ErrMalformedResponse)
	}
	if err := json.Unmarshal(env.Result, out); err != nil {
		return c.decodeError(method, path, err)
	}
	return nil
}

// failure converts the error object of a failed response
func (c *Client) failure(method, path string, apiErr *apiError, note *domainsNote, classify classifier) error {
	if apiErr == nil {
		return fmt.Errorf("%s %s: %w: failure without error", method, path, ErrMalformedResponse)
	}

	err := classify(apiErr, note)

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Str("error_name", apiErr.Name).
		Msg("barid API returned error")

	return err
}

func (c *Client) decodeError(method, path string, err error) error {
	return &TransportError{
		Op:  method,
		URL: c.baseURL + path,
		Err: fmt.Errorf("failed to decode response: %w", err),
	}
}
