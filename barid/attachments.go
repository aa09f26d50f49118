package barid

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

// MessageAttachments lists the attachments of a specific message
func (c *Client) MessageAttachments(ctx context.Context, messageID string) ([]Attachment, error) {
	if messageID == "" {
		return nil, attachmentNotFound()
	}

	var attachments []Attachment
	path := "/inbox/" + url.PathEscape(messageID) + "/attachments"
	if err := c.call(ctx, http.MethodGet, path, nil, classifyIDKeyed, &attachments); err != nil {
		return nil, err
	}
	return attachments, nil
}

// InboxAttachments lists the attachments across every message in the
// client's inbox. Limit and offset follow the same bounds as ListMessages.
func (c *Client) InboxAttachments(ctx context.Context, limit, offset int) ([]Attachment, error) {
	var attachments []Attachment
	path := c.inboxPath("/emails/", "/attachments")
	if err := c.call(ctx, http.MethodGet, path, pageParams(limit, offset), classifyEmailKeyed, &attachments); err != nil {
		return nil, err
	}
	return attachments, nil
}

// DownloadAttachment returns the raw content of an attachment.
// The whole body is buffered in memory.
func (c *Client) DownloadAttachment(ctx context.Context, id string) ([]byte, error) {
	if id == "" {
		return nil, attachmentNotFound()
	}

	path := "/attachments/" + url.PathEscape(id)
	status, body, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	if status >= 200 && status < 300 {
		c.logger.Debug().Str("attachment_id", id).Int("bytes", len(body)).Msg("Downloaded attachment")
		return body, nil
	}

	// Non-2xx bodies carry the usual error object
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, c.decodeError(http.MethodGet, path, err)
	}
	return nil, c.failure(http.MethodGet, path, env.Error, nil, classifyIDKeyed)
}

// DeleteAttachment deletes a specific attachment by its ID
func (c *Client) DeleteAttachment(ctx context.Context, id string) error {
	if id == "" {
		return attachmentNotFound()
	}

	if err := c.call(ctx, http.MethodDelete, "/attachments/"+url.PathEscape(id), nil, classifyIDKeyed, nil); err != nil {
		return err
	}

	c.logger.Info().Str("attachment_id", id).Msg("Deleted attachment")
	return nil
}
