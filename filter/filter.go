// Package filter evaluates expr-lang expressions against inbox messages.
//
// An expression sees the message fields as variables (From, To, Subject,
// Text, HTML, Received, HasAttachments, AttachmentCount, ID) plus a few
// helpers:
//
//	HasAttachments and Received > hoursAgo(2)
//	fromDomain("github.com") and icontains(Subject, "verification")
//	lower(Text) matches "code: [0-9]{6}"
//
// The expr builtins (lower, upper, now, contains, startsWith, ...) are
// available as usual.
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/tmail/barid"
)

// MessageFilter is a compiled filter expression. It is safe for concurrent use.
type MessageFilter struct {
	program    *vm.Program
	expression string
}

// Compile compiles a filter expression
func Compile(expression string) (*MessageFilter, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
		}
	}

	// Type-check against a zero message so field types are known
	program, err := expr.Compile(expression,
		expr.Env(environment(barid.Email{})),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Err:        err,
		}
	}

	return &MessageFilter{
		program:    program,
		expression: expression,
	}, nil
}

// Evaluate runs the filter against a message
func (f *MessageFilter) Evaluate(email barid.Email) (bool, error) {
	result, err := expr.Run(f.program, environment(email))
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expression,
			MessageID:  email.ID,
			Reason:     "failed to run expression",
			Err:        err,
		}
	}

	matched, ok := result.(bool)
	if !ok {
		return false, &EvaluationError{
			Expression: f.expression,
			MessageID:  email.ID,
			Reason:     fmt.Sprintf("expression returned %T, not bool", result),
		}
	}
	return matched, nil
}

// Match reports whether the message matches. Evaluation errors count as no match.
func (f *MessageFilter) Match(email barid.Email) bool {
	matched, err := f.Evaluate(email)
	return err == nil && matched
}

// Apply returns the messages that match, in their original order
func (f *MessageFilter) Apply(emails []barid.Email) []barid.Email {
	matched := make([]barid.Email, 0, len(emails))
	for _, email := range emails {
		if f.Match(email) {
			matched = append(matched, email)
		}
	}
	return matched
}

// String returns the original expression
func (f *MessageFilter) String() string {
	return f.expression
}

// environment builds the variables and helpers visible to an expression
func environment(email barid.Email) map[string]any {
	var text, html string
	if email.TextContent != nil {
		text = *email.TextContent
	}
	if email.HTMLContent != nil {
		html = *email.HTMLContent
	}

	return map[string]any{
		// Message data
		"ID":              email.ID,
		"From":            email.FromAddress,
		"To":              email.ToAddress,
		"Subject":         email.Subject,
		"Text":            text,
		"HTML":            html,
		"Body":            email.Body(),
		"Received":        email.ReceivedTime(),
		"HasAttachments":  email.HasAttachments,
		"AttachmentCount": int(email.AttachmentCount),

		// Message helpers
		"fromDomain": func(domain string) bool {
			at := strings.LastIndex(email.FromAddress, "@")
			return at >= 0 && strings.EqualFold(email.FromAddress[at+1:], domain)
		},

		// Date helpers
		"daysAgo": func(days int) time.Time {
			return time.Now().AddDate(0, 0, -days)
		},
		"hoursAgo": func(hours int) time.Time {
			return time.Now().Add(-time.Duration(hours) * time.Hour)
		},
		"parseDate": func(dateStr string) time.Time {
			t, _ := time.Parse("2006-01-02", dateStr)
			return t
		},

		// String helpers
		"icontains": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
	}
}
