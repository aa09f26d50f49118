package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/s0up4200/tmail/barid"
)

const (
	ruleWidth  = 85
	timeLayout = "2006-01-02 15:04"
)

func formatMessageList(emails []barid.Email) string {
	if len(emails) == 0 {
		return "No messages.\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d %s:\n\n", len(emails), plural(len(emails), "message", "messages"))
	b.WriteString(strings.Repeat("━", ruleWidth) + "\n")
	fmt.Fprintf(&b, "%-18s %-28s %-30s %s\n", "RECEIVED", "FROM", "SUBJECT", "ID")
	b.WriteString(strings.Repeat("━", ruleWidth) + "\n")

	for _, email := range emails {
		subject := email.Subject
		if email.HasAttachments {
			subject = "📎 " + subject
		}
		fmt.Fprintf(&b, "%-18s %-28s %-30s %s\n",
			email.ReceivedTime().Local().Format(timeLayout),
			truncate(email.FromAddress, 28),
			truncate(subject, 30),
			email.ID,
		)
	}
	b.WriteString(strings.Repeat("━", ruleWidth) + "\n")
	return b.String()
}

func formatMessage(email *barid.Email, html bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ID:       %s\n", email.ID)
	fmt.Fprintf(&b, "From:     %s\n", email.FromAddress)
	fmt.Fprintf(&b, "To:       %s\n", email.ToAddress)
	fmt.Fprintf(&b, "Subject:  %s\n", email.Subject)
	fmt.Fprintf(&b, "Received: %s\n", email.ReceivedTime().Local().Format(time.RFC1123))
	if email.HasAttachments {
		fmt.Fprintf(&b, "Files:    %d %s\n", email.AttachmentCount, plural(int(email.AttachmentCount), "attachment", "attachments"))
	}
	b.WriteString(strings.Repeat("─", ruleWidth) + "\n")

	body := email.Body()
	if html && email.HTMLContent != nil {
		body = *email.HTMLContent
	}
	if body == "" {
		body = "(no content)"
	}
	b.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		b.WriteString("\n")
	}
	return b.String()
}

func formatAttachmentList(attachments []barid.Attachment) string {
	if len(attachments) == 0 {
		return "No attachments.\n"
	}

	var b strings.Builder
	b.WriteString(strings.Repeat("━", ruleWidth) + "\n")
	fmt.Fprintf(&b, "%-30s %-24s %10s  %s\n", "FILENAME", "TYPE", "SIZE", "ID")
	b.WriteString(strings.Repeat("━", ruleWidth) + "\n")
	for _, att := range attachments {
		fmt.Fprintf(&b, "%-30s %-24s %10s  %s\n",
			truncate(att.Filename, 30),
			truncate(att.ContentType, 24),
			formatSize(att.Size),
			att.ID,
		)
	}
	b.WriteString(strings.Repeat("━", ruleWidth) + "\n")
	return b.String()
}

func formatHealth(health *barid.ServerHealth) string {
	var b strings.Builder
	for _, part := range []struct {
		name   string
		status barid.ServerHealthStatus
	}{
		{"Worker", health.Worker},
		{"Database", health.Database},
		{"KV", health.KV},
	} {
		mark := "✓"
		if part.status != barid.StatusConnected {
			mark = "✗"
		}
		fmt.Fprintf(&b, "%s %-9s %s\n", mark, part.name, part.status)
	}
	return b.String()
}

// formatSize renders a byte count in binary units
func formatSize(size uint64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := uint64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// describeError renders a command error for the terminal
func describeError(err error) string {
	var domainErr *barid.DomainError
	if errors.As(err, &domainErr) {
		msg := fmt.Sprintf("Error: %s: %s", domainErr.Name, domainErr.Message)
		if len(domainErr.SupportedDomains) > 0 {
			msg += "\n\nSupported domains:\n  " + strings.Join(domainErr.SupportedDomains, "\n  ")
		}
		return msg
	}

	if errors.Is(err, barid.ErrInvalidEmail) {
		return fmt.Sprintf("Error: %v\nRun 'tmail domains' to see which domains are accepted.", err)
	}

	return fmt.Sprintf("Error: %v", err)
}
