package barid

import (
	"context"
)

// API defines the interface for barid.site operations
type API interface {
	// ListMessages retrieves a page of messages for the inbox
	ListMessages(ctx context.Context, limit, offset int) ([]Email, error)

	// GetMessage retrieves a message by ID
	GetMessage(ctx context.Context, id string) (*Email, error)

	// DeleteMessages deletes every message for the inbox
	DeleteMessages(ctx context.Context) (uint32, error)

	// DeleteMessage deletes a message by ID
	DeleteMessage(ctx context.Context, id string) error

	// CountMessages counts the messages for the inbox
	CountMessages(ctx context.Context) (uint32, error)

	// Domains lists the supported email domains
	Domains(ctx context.Context) ([]string, error)

	// MessageAttachments lists the attachments of a message
	MessageAttachments(ctx context.Context, messageID string) ([]Attachment, error)

	// InboxAttachments lists a page of attachments for the inbox
	InboxAttachments(ctx context.Context, limit, offset int) ([]Attachment, error)

	// DownloadAttachment fetches the content of an attachment
	DownloadAttachment(ctx context.Context, id string) ([]byte, error)

	// DeleteAttachment deletes an attachment by ID
	DeleteAttachment(ctx context.Context, id string) error

	// Health checks the service subsystems
	Health(ctx context.Context) (*ServerHealth, error)
}

var _ API = (*Client)(nil)
