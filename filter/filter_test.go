package filter

import (
	"errors"
	"strings"
	"testing"

	"github.com/s0up4200/tmail/barid"
)

func strPtr(s string) *string {
	return &s
}

func sampleMessage() barid.Email {
	return barid.Email{
		ID:              "m1",
		FromAddress:     "noreply@github.com",
		ToAddress:       "y@iusearch.lol",
		Subject:         "Please verify your email",
		ReceivedAt:      1718000000, // 2024-06-10
		TextContent:     strPtr("Your code is 123456"),
		HasAttachments:  true,
		AttachmentCount: 2,
	}
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name        string
		expression  string
		wantErr     bool
		errContains string
	}{
		{
			name:       "valid expression",
			expression: `HasAttachments`,
		},
		{
			name:        "empty expression",
			expression:  "   ",
			wantErr:     true,
			errContains: "empty expression",
		},
		{
			name:       "invalid syntax",
			expression: `Subject ==`,
			wantErr:    true,
		},
		{
			name:       "unknown variable",
			expression: `Title == "x"`,
			wantErr:    true,
		},
		{
			name:       "non boolean result",
			expression: `AttachmentCount + 1`,
			wantErr:    true,
		},
		{
			name:       "complex expression",
			expression: `fromDomain("github.com") and icontains(Subject, "verify") and Received > daysAgo(30)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := Compile(tt.expression)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error but got none")
				}
				var compErr *CompilationError
				if !errors.As(err, &compErr) {
					t.Errorf("expected *CompilationError, got %T", err)
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errContains)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if filter.String() != strings.TrimSpace(tt.expression) {
				t.Errorf("String() = %q, want %q", filter.String(), tt.expression)
			}
		})
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		want       bool
	}{
		{name: "attachments", expression: `HasAttachments and AttachmentCount >= 2`, want: true},
		{name: "attachment count mismatch", expression: `AttachmentCount > 2`, want: false},
		{name: "sender domain is case insensitive", expression: `fromDomain("GitHub.com")`, want: true},
		{name: "other sender domain", expression: `fromDomain("example.com")`, want: false},
		{name: "case insensitive subject", expression: `icontains(Subject, "VERIFY")`, want: true},
		{name: "contains operator", expression: `Subject contains "verify"`, want: true},
		{name: "regex on text", expression: `Text matches "[0-9]{6}"`, want: true},
		{name: "body falls back to text", expression: `Body == Text`, want: true},
		{name: "absent html is empty", expression: `HTML == ""`, want: true},
		{name: "received after date", expression: `Received > parseDate("2024-01-01")`, want: true},
		{name: "received recently", expression: `Received > daysAgo(1)`, want: false},
		{name: "recipient", expression: `To == "y@iusearch.lol" and ID == "m1"`, want: true},
	}

	message := sampleMessage()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := Compile(tt.expression)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got := filter.Match(message); got != tt.want {
				t.Errorf("Match() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluateRuntimeError(t *testing.T) {
	filter, err := Compile(`Text matches Subject`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	message := sampleMessage()
	message.Subject = "(" // invalid pattern

	matched, err := filter.Evaluate(message)
	if err == nil {
		t.Fatal("expected evaluation error")
	}
	if matched {
		t.Error("expected no match on error")
	}

	var evalErr *EvaluationError
	if !errors.As(err, &evalErr) {
		t.Fatalf("expected *EvaluationError, got %T", err)
	}
	if evalErr.MessageID != "m1" {
		t.Errorf("MessageID = %q, want %q", evalErr.MessageID, "m1")
	}

	if filter.Match(message) {
		t.Error("Match() should be false when evaluation fails")
	}
}

func TestApply(t *testing.T) {
	filter, err := Compile(`HasAttachments`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	messages := []barid.Email{
		{ID: "a", HasAttachments: true},
		{ID: "b"},
		{ID: "c", HasAttachments: true},
	}

	got := filter.Apply(messages)
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Errorf("Apply() = %+v, want messages a and c", got)
	}

	if got := filter.Apply(nil); len(got) != 0 {
		t.Errorf("Apply(nil) = %+v, want empty", got)
	}
}
