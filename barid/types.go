package barid

import (
	"encoding/json"
	"fmt"
	"time"
)

// Email is a single message received by an inbox.
type Email struct {
	ID              string  `json:"id"`
	FromAddress     string  `json:"from_address"`
	ToAddress       string  `json:"to_address"`
	Subject         string  `json:"subject"`
	ReceivedAt      int64   `json:"received_at"`
	HTMLContent     *string `json:"html_content,omitempty"`
	TextContent     *string `json:"text_content,omitempty"`
	HasAttachments  bool    `json:"has_attachments"`
	AttachmentCount uint32  `json:"attachment_count"`
}

// ReceivedTime returns the time the message was received
func (e *Email) ReceivedTime() time.Time {
	if e.ReceivedAt > 0 {
		return time.Unix(e.ReceivedAt, 0)
	}
	return time.Time{}
}

// Body returns the plain text content, falling back to the HTML content.
func (e *Email) Body() string {
	if e.TextContent != nil && *e.TextContent != "" {
		return *e.TextContent
	}
	if e.HTMLContent != nil {
		return *e.HTMLContent
	}
	return ""
}

// Attachment is a file attached to a message.
type Attachment struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	CreatedAt   int64  `json:"created_at"`
	Size        uint64 `json:"size"`
}

// CreatedTime returns the time the attachment was stored
func (a *Attachment) CreatedTime() time.Time {
	if a.CreatedAt > 0 {
		return time.Unix(a.CreatedAt, 0)
	}
	return time.Time{}
}

// ServerHealthStatus represents the state of one service subsystem
type ServerHealthStatus string

const (
	// StatusConnected indicates the subsystem is reachable
	StatusConnected ServerHealthStatus = "connected"
	// StatusDisconnected indicates the subsystem is unreachable
	StatusDisconnected ServerHealthStatus = "disconnected"
)

// UnmarshalJSON rejects statuses other than connected and disconnected.
func (s *ServerHealthStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch status := ServerHealthStatus(raw); status {
	case StatusConnected, StatusDisconnected:
		*s = status
		return nil
	default:
		return fmt.Errorf("unknown server health status %q", raw)
	}
}

// ServerHealth reports the status of each service subsystem independently.
type ServerHealth struct {
	Worker   ServerHealthStatus `json:"worker"`
	Database ServerHealthStatus `json:"database"`
	KV       ServerHealthStatus `json:"kv"`
}

// Healthy checks if every subsystem is connected
func (h ServerHealth) Healthy() bool {
	return h.Worker == StatusConnected && h.Database == StatusConnected && h.KV == StatusConnected
}
