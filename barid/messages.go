package barid

import (
	"context"
	"net/http"
	"net/url"
)

type countResult struct {
	Count uint32 `json:"count"`
}

type deleteResult struct {
	DeletedCount uint32 `json:"deleted_count"`
}

// ListMessages retrieves the messages received by the client's inbox.
// The service accepts a limit between 1 and 100 and an offset of 0 or more.
func (c *Client) ListMessages(ctx context.Context, limit, offset int) ([]Email, error) {
	var emails []Email
	path := c.inboxPath("/emails/", "")
	if err := c.call(ctx, http.MethodGet, path, pageParams(limit, offset), classifyEmailKeyed, &emails); err != nil {
		return nil, err
	}

	c.logger.Debug().
		Int("limit", limit).
		Int("offset", offset).
		Int("count", len(emails)).
		Msg("Retrieved messages")

	return emails, nil
}

// GetMessage retrieves a specific message by its ID
func (c *Client) GetMessage(ctx context.Context, id string) (*Email, error) {
	if id == "" {
		return nil, messageNotFound()
	}

	var email Email
	if err := c.call(ctx, http.MethodGet, "/inbox/"+url.PathEscape(id), nil, classifyIDKeyed, &email); err != nil {
		return nil, err
	}
	return &email, nil
}

// DeleteMessages deletes every message in the client's inbox and returns
// how many were removed.
func (c *Client) DeleteMessages(ctx context.Context) (uint32, error) {
	var result deleteResult
	if err := c.call(ctx, http.MethodDelete, c.inboxPath("/emails/", ""), nil, classifyEmailKeyed, &result); err != nil {
		return 0, err
	}

	c.logger.Info().Uint32("deleted", result.DeletedCount).Msg("Deleted all messages")
	return result.DeletedCount, nil
}

// DeleteMessage deletes a specific message by its ID
func (c *Client) DeleteMessage(ctx context.Context, id string) error {
	if id == "" {
		return messageNotFound()
	}

	if err := c.call(ctx, http.MethodDelete, "/inbox/"+url.PathEscape(id), nil, classifyIDKeyed, nil); err != nil {
		return err
	}

	c.logger.Info().Str("message_id", id).Msg("Deleted message")
	return nil
}

// CountMessages returns the number of messages in the client's inbox
func (c *Client) CountMessages(ctx context.Context) (uint32, error) {
	var result countResult
	if err := c.call(ctx, http.MethodGet, c.inboxPath("/emails/count/", ""), nil, classifyEmailKeyed, &result); err != nil {
		return 0, err
	}
	return result.Count, nil
}
