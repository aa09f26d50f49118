package barid

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func TestEmailJSON(t *testing.T) {
	t.Run("decodes wire names", func(t *testing.T) {
		body := `{
			"id": "usm2sw0qfv9a5ku9z4xmh8og",
			"from_address": "noreply@example.com",
			"to_address": "y@iusearch.lol",
			"subject": "Your code",
			"received_at": 1718000000,
			"html_content": "<p>123456</p>",
			"text_content": null,
			"has_attachments": true,
			"attachment_count": 2
		}`

		var email Email
		require.NoError(t, json.Unmarshal([]byte(body), &email))

		assert.Equal(t, Email{
			ID:              "usm2sw0qfv9a5ku9z4xmh8og",
			FromAddress:     "noreply@example.com",
			ToAddress:       "y@iusearch.lol",
			Subject:         "Your code",
			ReceivedAt:      1718000000,
			HTMLContent:     strPtr("<p>123456</p>"),
			HasAttachments:  true,
			AttachmentCount: 2,
		}, email)
	})

	t.Run("round trip", func(t *testing.T) {
		tests := []struct {
			name  string
			email Email
		}{
			{
				name: "both bodies",
				email: Email{
					ID: "a", FromAddress: "f@x.y", ToAddress: testEmail, Subject: "s",
					ReceivedAt: 1, HTMLContent: strPtr("<b>hi</b>"), TextContent: strPtr("hi"),
				},
			},
			{
				name: "no bodies",
				email: Email{
					ID: "b", FromAddress: "f@x.y", ToAddress: testEmail, Subject: "",
					ReceivedAt: 2, HasAttachments: true, AttachmentCount: 4294967295,
				},
			},
			{
				name: "empty text body is kept",
				email: Email{
					ID: "c", FromAddress: "f@x.y", ToAddress: testEmail, TextContent: strPtr(""),
				},
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				data, err := json.Marshal(tt.email)
				require.NoError(t, err)

				if tt.email.HTMLContent == nil {
					assert.NotContains(t, string(data), "html_content")
				}

				var decoded Email
				require.NoError(t, json.Unmarshal(data, &decoded))
				assert.Equal(t, tt.email, decoded)
			})
		}
	})
}

func TestAttachmentJSON(t *testing.T) {
	body := `{"content_type":"application/pdf","created_at":1718000001,"filename":"invoice.pdf","id":"att1","size":18446744073709551615}`

	var attachment Attachment
	require.NoError(t, json.Unmarshal([]byte(body), &attachment))

	expected := Attachment{
		ID:          "att1",
		Filename:    "invoice.pdf",
		ContentType: "application/pdf",
		CreatedAt:   1718000001,
		Size:        18446744073709551615,
	}
	assert.Equal(t, expected, attachment)

	data, err := json.Marshal(attachment)
	require.NoError(t, err)

	var decoded Attachment
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, expected, decoded)
}

func TestEmailHelpers(t *testing.T) {
	t.Run("ReceivedTime", func(t *testing.T) {
		email := Email{ReceivedAt: 1718000000}
		assert.Equal(t, time.Unix(1718000000, 0), email.ReceivedTime())

		email.ReceivedAt = 0
		assert.True(t, email.ReceivedTime().IsZero())
	})

	t.Run("Body", func(t *testing.T) {
		tests := []struct {
			name     string
			email    Email
			expected string
		}{
			{name: "text preferred", email: Email{TextContent: strPtr("text"), HTMLContent: strPtr("<p>html</p>")}, expected: "text"},
			{name: "empty text falls back", email: Email{TextContent: strPtr(""), HTMLContent: strPtr("<p>html</p>")}, expected: "<p>html</p>"},
			{name: "html only", email: Email{HTMLContent: strPtr("<p>html</p>")}, expected: "<p>html</p>"},
			{name: "neither", email: Email{}, expected: ""},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				assert.Equal(t, tt.expected, tt.email.Body())
			})
		}
	})

	t.Run("CreatedTime", func(t *testing.T) {
		attachment := Attachment{CreatedAt: 1718000001}
		assert.Equal(t, time.Unix(1718000001, 0), attachment.CreatedTime())
	})
}

func TestServerHealth(t *testing.T) {
	t.Run("decodes statuses", func(t *testing.T) {
		var health ServerHealth
		require.NoError(t, json.Unmarshal([]byte(`{"worker":"connected","database":"disconnected","kv":"connected"}`), &health))

		assert.Equal(t, ServerHealth{
			Worker:   StatusConnected,
			Database: StatusDisconnected,
			KV:       StatusConnected,
		}, health)
		assert.False(t, health.Healthy())
	})

	t.Run("all connected is healthy", func(t *testing.T) {
		health := ServerHealth{Worker: StatusConnected, Database: StatusConnected, KV: StatusConnected}
		assert.True(t, health.Healthy())
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		var health ServerHealth
		err := json.Unmarshal([]byte(`{"worker":"ok","database":"connected","kv":"connected"}`), &health)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown server health status "ok"`)
	})
}
